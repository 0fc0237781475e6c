package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userService UserServiceInterface
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// Profile handles GET /user.
func (h *UserHandler) Profile(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	user, err := h.userService.Profile(c.Request.Context(), id.UserID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{User: user})
}

// Directory handles GET /user-directory.
func (h *UserHandler) Directory(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	includeTeamed := c.Query("includeTeamed") == "true"

	users, err := h.userService.Directory(c.Request.Context(), id.UserID, includeTeamed)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, DirectoryResponse{Users: users})
}
