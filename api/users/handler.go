package users

import (
	"errors"
	"strconv"

	"fleetdash/internal/auth"
	"fleetdash/internal/httpx"
	"fleetdash/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles the admin user management API
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new users handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// List handles GET /api/users
func (h *Handler) List(c *gin.Context) {
	var users []model.User
	if err := h.db.Order("id").Find(&users).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("Failed to fetch users", err))
		return
	}
	httpx.OK(c, gin.H{"users": users})
}

// Create handles POST /api/users
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing("Username, email, and password are required"))
		return
	}

	if appErr := h.checkUsernameUnique(req.Username, 0); appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}
	if appErr := h.checkEmailUnique(req.Email, 0); appErr != nil {
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
		IsAdmin:      req.IsAdmin,
		IsActive:     true,
	}
	if err := h.db.Create(&user).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("Failed to create user", err))
		return
	}

	httpx.Created(c, "User created successfully", gin.H{"user": user})
}

// Get handles GET /api/users/:id
func (h *Handler) Get(c *gin.Context) {
	user, appErr := h.load(c)
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}
	httpx.OK(c, gin.H{"user": user})
}

// Update handles PUT /api/users/:id
func (h *Handler) Update(c *gin.Context) {
	user, appErr := h.load(c)
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("Invalid request body"))
		return
	}

	if req.Username != nil && *req.Username != "" {
		if appErr := h.checkUsernameUnique(*req.Username, user.ID); appErr != nil {
			httpx.FailErr(c, appErr)
			return
		}
		user.Username = *req.Username
	}

	if req.Email != nil && *req.Email != "" {
		if appErr := h.checkEmailUnique(*req.Email, user.ID); appErr != nil {
			httpx.FailErr(c, appErr)
			return
		}
		user.Email = *req.Email
	}

	// Admin-initiated password resets do not require the target's current
	// password.
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			httpx.FailErr(c, httpx.ErrInternalError("Failed to hash password", err))
			return
		}
		user.PasswordHash = hash
	}

	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := h.db.Save(user).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("Failed to update user", err))
		return
	}

	httpx.OKMsg(c, "User updated successfully", gin.H{"user": user})
}

// Delete handles DELETE /api/users/:id
func (h *Handler) Delete(c *gin.Context) {
	user, appErr := h.load(c)
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	if err := h.db.Delete(user).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("Failed to delete user", err))
		return
	}

	httpx.OKMsg(c, "User deleted successfully", nil)
}

// load fetches the user addressed by the :id route parameter
func (h *Handler) load(c *gin.Context) (*model.User, *httpx.AppError) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, httpx.ErrNotFound("User not found")
	}

	var user model.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpx.ErrNotFound("User not found")
		}
		return nil, httpx.ErrDatabaseError("Failed to load user", err)
	}
	return &user, nil
}

// checkUsernameUnique verifies the username is unused by any user other
// than excludeID, so renaming a user to its current name does not conflict.
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
