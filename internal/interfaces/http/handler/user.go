package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/supplychain/backend/internal/application/identity"
	"github.com/supplychain/backend/internal/interfaces/http/middleware"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user routes on an authenticated group
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.POST("", h.Create)
	users.GET("", h.List)
	users.GET("/me", h.Me)
	users.PUT("/me/password", h.ChangePassword)
	users.GET("/:id", h.GetByID)
	users.PUT("/:id", h.Update)
	users.DELETE("/:id", h.Delete)
}

// actor builds the acting user's identity from the request context
func (h *UserHandler) actor(c *gin.Context) (identityapp.Actor, bool) {
	userID, ok := middleware.AuthUserID(c)
	if !ok {
		return identityapp.Actor{}, false
	}
	return identityapp.Actor{UserID: userID, Role: middleware.AuthRole(c)}, true
}

// Create creates a new user account
func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		h.BadRequest(c, "Missing authenticated user")
		return
	}

	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// List returns users matching the filter
func (h *UserHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		h.BadRequest(c, "Missing authenticated user")
		return
	}

	var filter identityapp.UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.userService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Me returns the authenticated user's own account
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.AuthUserID(c)
	if !ok {
		h.BadRequest(c, "Missing authenticated user")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// GetByID returns a user by ID
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Update updates a user's profile, role, or active flag
func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		h.BadRequest(c, "Missing authenticated user")
		return
	}

	id, idOK := parseIDParam(c, "id")
	if !idOK {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req identityapp.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// ChangePassword changes the authenticated user's own password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		h.BadRequest(c, "Missing authenticated user")
		return
	}

	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), actor, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete deletes a user account
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		h.BadRequest(c, "Missing authenticated user")
		return
	}

	id, idOK := parseIDParam(c, "id")
	if !idOK {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
