package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"dept-portal/models"
	"dept-portal/services"
)

type UserHandler struct {
	store *services.Store
}

func NewUserHandler(store *services.Store) *UserHandler {
	return &UserHandler{store: store}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and returns the account with its capability set.
// Passwords are stored and compared as plain text; this mirrors the legacy
// portal and is only meant for an internal departmental network.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "username and password are required",
		})
		return
	}

	user, err := h.store.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err == services.ErrNotFound {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "login failed",
			Message: err.Error(),
		})
		return
	}

	user.Password = ""
	h.store.Audit("LOGIN", user.Username, "")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// GetUsers lists all accounts, passwords stripped.
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list users",
			Message: err.Error(),
		})
		return
	}
	for i := range users {
		users[i].Password = ""
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

type userRequest struct {
	Username string             `json:"username" binding:"required"`
	Password string             `json:"password" binding:"required"`
	Name     string             `json:"name"`
	Role     string             `json:"role" binding:"omitempty,oneof=admin editor"`
	Perms    models.Permissions `json:"permissions"`
}

// CreateUser adds an account. Non-admin accounts start with whatever
// capability set the request carries, default none.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid user",
			Message: err.Error(),
		})
		return
	}

	if _, err := h.store.GetUserByUsername(c.Request.Context(), req.Username); err == nil {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "username already taken"})
		return
	} else if err != services.ErrNotFound {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to check username",
			Message: err.Error(),
		})
		return
	}

	user := models.User{
		Username:    req.Username,
		Password:    req.Password,
		Name:        req.Name,
		Role:        req.Role,
		Permissions: req.Perms,
	}
	if user.Role == "" {
		user.Role = "editor"
	}
	if err := h.store.InsertUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create user",
			Message: err.Error(),
		})
		return
	}
	h.store.Audit("CREATE_USER", actor(c), user.Username)

	c.JSON(http.StatusCreated, gin.H{"message": "user created"})
}

type userUpdateRequest struct {
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role" binding:"omitempty,oneof=admin editor"`
}

// UpdateUser changes an account's password, display name or role. Empty
// fields are left untouched.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid update",
			Message: err.Error(),
		})
		return
	}

	fields := bson.M{}
	if req.Password != "" {
		fields["password"] = req.Password
	}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Role != "" {
		fields["role"] = req.Role
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "nothing to update"})
		return
	}

	err := h.store.UpdateUser(c.Request.Context(), id, fields)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update user",
			Message: err.Error(),
		})
		return
	}
	h.store.Audit("UPDATE_USER", actor(c), id)

	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

// DeleteUser removes an account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	err := h.store.DeleteUser(c.Request.Context(), id)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete user",
			Message: err.Error(),
		})
		return
	}
	h.store.Audit("DELETE_USER", actor(c), id)

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

type permissionsRequest struct {
	Permissions models.Permissions `json:"permissions" binding:"required"`
}

// UpdatePermissions merges capability changes into a user's existing set.
// Keys absent from the request keep their current value.
func (h *UserHandler) UpdatePermissions(c *gin.Context) {
	id := c.Param("id")
	var req permissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "permissions are required",
			Message: err.Error(),
		})
		return
	}

	err := h.store.MergeUserPermissions(c.Request.Context(), id, req.Permissions)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update permissions",
			Message: err.Error(),
		})
		return
	}
	h.store.Audit("UPDATE_PERMISSIONS", actor(c), id)

	c.JSON(http.StatusOK, gin.H{"message": "permissions updated"})
}
