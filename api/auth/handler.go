package auth

import (
	"errors"

	"fleetdash/api/middleware"
	"fleetdash/internal/auth"
	"fleetdash/internal/httpx"
	"fleetdash/internal/model"
	"fleetdash/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles the authentication and self-service profile API
type Handler struct {
	db       *gorm.DB
	sessions *session.Store
}

// NewHandler creates a new auth handler
func NewHandler(db *gorm.DB, sessions *session.Store) *Handler {
	return &Handler{db: db, sessions: sessions}
}

// Register handles POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing("Username, email, and password are required"))
		return
	}

	if appErr := h.checkUnique(req.Username, req.Email, 0); appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("Failed to hash password", err))
		return
	}

	user := model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := h.db.Create(&user).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("Failed to create user", err))
		return
	}

	httpx.Created(c, "User registered successfully", gin.H{"user": user})
}

// Login handles POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing("Username and password are required"))
		return
	}

	var user model.User
	if err := h.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same response as a wrong password so account existence
			// is not leaked.
			httpx.FailErr(c, httpx.ErrUnauthorized("Invalid credentials"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("Failed to load user", err))
		return
	}

	// An inactive account is indistinguishable from bad credentials.
	if !user.IsActive || auth.ComparePassword(user.PasswordHash, req.Password) != nil {
		httpx.FailErr(c, httpx.ErrUnauthorized("Invalid credentials"))
		return
	}

	if err := h.sessions.Create(c, session.Data{UserID: user.ID, Username: user.Username}); err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("Failed to establish session", err))
		return
	}

	httpx.OKMsg(c, "Login successful", gin.H{"user": user})
}

// Logout handles POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c); err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("Failed to destroy session", err))
		return
	}
	httpx.OKMsg(c, "Logout successful", nil)
}

// Me handles GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	var user model.User
	if err := h.db.First(&user, c.GetInt(middleware.CtxUserID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("User not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("Failed to load user", err))
		return
	}
	httpx.OK(c, gin.H{"user": user})
}

// UpdateProfile handles PUT /api/auth/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var user model.User
	if err := h.db.First(&user, c.GetInt(middleware.CtxUserID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("User not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("Failed to load user", err))
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("Invalid request body"))
		return
	}

	// Changing your own password requires proving the current one.
	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			httpx.FailErr(c, httpx.ErrParamMissing("Current password is required to change password"))
			return
		}
		if auth.ComparePassword(user.PasswordHash, req.CurrentPassword) != nil {
			httpx.FailErr(c, httpx.ErrParamInvalid("Current password is incorrect"))
			return
		}
	}

	usernameChanged := false
	if req.Username != nil && *req.Username != "" && *req.Username != user.Username {
		if appErr := h.checkUsernameUnique(*req.Username, user.ID); appErr != nil {
			httpx.FailErr(c, appErr)
			return
		}
		user.Username = *req.Username
		usernameChanged = true
	}

	if req.Email != nil && *req.Email != "" && *req.Email != user.Email {
		if appErr := h.checkEmailUnique(*req.Email, user.ID); appErr != nil {
			httpx.FailErr(c, appErr)
			return
		}
		user.Email = *req.Email
	}

	// Only admins may change the admin flag, including on their own account.
	if req.IsAdmin != nil && *req.IsAdmin != user.IsAdmin {
		if !user.IsAdmin {
			httpx.FailErr(c, httpx.ErrForbidden("Admin access required to change admin status"))
			return
		}
		user.IsAdmin = *req.IsAdmin
	}

	if req.NewPassword != "" {
		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			httpx.FailErr(c, httpx.ErrInternalError("Failed to hash password", err))
			return
		}
		user.PasswordHash = hash
	}

	if err := h.db.Save(&user).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("Failed to update profile", err))
		return
	}

	if usernameChanged {
		if err := h.sessions.Update(c, session.Data{UserID: user.ID, Username: user.Username}); err != nil {
			httpx.FailErr(c, httpx.ErrInternalError("Failed to refresh session", err))
			return
		}
	}

	httpx.OKMsg(c, "Profile updated successfully", gin.H{"user": user})
}

// checkUnique verifies username and email are unused by any user other than
// excludeID (0 for new users).
func (h *Handler) checkUnique(username, email string, excludeID int) *httpx.AppError {
	if appErr := h.checkUsernameUnique(username, excludeID); appErr != nil {
		return appErr
	}
	return h.checkEmailUnique(email, excludeID)
}

func (h *Handler) checkUsernameUnique(username string, excludeID int) *httpx.AppError {
	var count int64
	if err := h.db.Model(&model.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error; err != nil {
		return httpx.ErrDatabaseError("Failed to check username", err)
	}
	if count > 0 {
		return httpx.ErrAlreadyExists("Username already exists")
	}
	return nil
}

func (h *Handler) checkEmailUnique(email string, excludeID int) *httpx.AppError {
	var count int64
	if err := h.db.Model(&model.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error; err != nil {
		return httpx.ErrDatabaseError("Failed to check email", err)
	}
	if count > 0 {
		return httpx.ErrAlreadyExists("Email already exists")
	}
	return nil
}
