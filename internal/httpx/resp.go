package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// OK sends a 200 response with the given entity fields, e.g.
// OK(c, gin.H{"user": user}).
func OK(c *gin.Context, fields gin.H) {
	c.JSON(http.StatusOK, fields)
}

// OKMsg sends a 200 response with a message plus entity fields
func OKMsg(c *gin.Context, message string, fields gin.H) {
	c.JSON(http.StatusOK, withMessage(message, fields))
}

// Created sends a 201 response with a message plus entity fields
func Created(c *gin.Context, message string, fields gin.H) {
	c.JSON(http.StatusCreated, withMessage(message, fields))
}

// FailErr sends an error response from an AppError. A wrapped internal
// error is logged but never returned to the client.
func FailErr(c *gin.Context, err *AppError) {
	if err.Err != nil {
		logrus.WithField("component", "http").WithError(err.Err).Error(err.Message)
	}

	c.JSON(err.HTTPStatus, gin.H{"error": err.Message})
}

func withMessage(message string, fields gin.H) gin.H {
	body := gin.H{"message": message}
	for k, v := range fields {
		body[k] = v
	}
	return body
}
