package controllers

import (
	"net/http"

	"github.com/Kariqs/ezelectronics-api/models"
	"github.com/Kariqs/ezelectronics-api/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

type updateUserRequest struct {
	Name      string `json:"name" binding:"required"`
	Surname   string `json:"surname" binding:"required"`
	Address   string `json:"address" binding:"required"`
	Birthdate string `json:"birthdate" binding:"required"`
}

func (c *UserController) GetUsers(ctx *gin.Context) {
	users, err := c.users.GetUsers(ctx.Request.Context())
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch users")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, users)
}

func (c *UserController) GetUsersByRole(ctx *gin.Context) {
	users, err := c.users.GetUsersByRole(ctx.Request.Context(), ctx.Param("role"))
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch users")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, users)
}

func (c *UserController) GetUser(ctx *gin.Context) {
	caller, ok := currentUser(ctx)
	if !ok {
		return
	}

	user, err := c.users.GetUserByUsername(ctx.Request.Context(), caller, ctx.Param("username"))
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch user")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user)
}

func (c *UserController) UpdateUser(ctx *gin.Context) {
	caller, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithError(ctx, http.StatusUnprocessableEntity, msgInvalidInput, err)
		return
	}

	user, err := c.users.UpdateUserInfo(ctx.Request.Context(), caller, ctx.Param("username"), models.User{
		Name:      req.Name,
		Surname:   req.Surname,
		Address:   req.Address,
		Birthdate: req.Birthdate,
	})
	if err != nil {
		handleServiceError(ctx, err, "Failed to update user")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user)
}

func (c *UserController) DeleteUser(ctx *gin.Context) {
	caller, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.users.DeleteUser(ctx.Request.Context(), caller, ctx.Param("username")); err != nil {
		handleServiceError(ctx, err, "Failed to delete user")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted"})
}

func (c *UserController) DeleteAllUsers(ctx *gin.Context) {
	if err := c.users.DeleteAllUsers(ctx.Request.Context()); err != nil {
		handleServiceError(ctx, err, "Failed to delete users")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "All non-admin users deleted"})
}
