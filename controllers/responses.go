package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Kariqs/ezelectronics-api/middlewares"
	"github.com/Kariqs/ezelectronics-api/models"
	"github.com/Kariqs/ezelectronics-api/services"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidInput        = "Invalid input"
	msgInternalServerError = "Internal server error"
	msgUnauthenticated     = "Unauthenticated user"
)

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

var errorStatus = []struct {
	err    error
	status int
}{
	{services.ErrWrongUserCart, http.StatusUnauthorized},
	{services.ErrUnauthorizedUser, http.StatusUnauthorized},
	{services.ErrUserNotAdmin, http.StatusUnauthorized},
	{services.ErrUserIsAdmin, http.StatusUnauthorized},
	{services.ErrUserNotFound, http.StatusNotFound},
	{services.ErrInvalidBirthdate, http.StatusBadRequest},
	{services.ErrProductNotFound, http.StatusNotFound},
	{services.ErrCartNotFound, http.StatusNotFound},
	{services.ErrProductNotInCart, http.StatusNotFound},
	{services.ErrNoReview, http.StatusNotFound},
	{services.ErrEmptyCart, http.StatusBadRequest},
	{services.ErrEmptyProductStock, http.StatusConflict},
	{services.ErrLowProductStock, http.StatusConflict},
	{services.ErrExistingReview, http.StatusConflict},
	{models.ErrInvalidFilter, http.StatusUnprocessableEntity},
	{services.ErrInvalidRole, http.StatusUnprocessableEntity},
}

// handleServiceError answers with the status of a known domain error, or logs
// err and answers 500 with message.
func handleServiceError(ctx *gin.Context, err error, message string) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			respondWithError(ctx, e.status, e.err.Error(), err)
			return
		}
	}

	log.Printf("%s: %v", message, err)
	respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, errors.New(message))
}

func currentUser(ctx *gin.Context) (models.User, bool) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgUnauthenticated)
	}
	return user, ok
}
