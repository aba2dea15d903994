package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"libtrack/internal/database/entries"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 response. The
// actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondRepositoryError maps repository errors onto HTTP statuses:
// rejected input is the client's fault, a missing entry is 404,
// anything else is internal.
func respondRepositoryError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, entries.ErrInvalid):
		respondBadRequest(c, err.Error())
	case errors.Is(err, entries.ErrNotFound):
		respondNotFound(c, "entry")
	default:
		respondInternalError(c, err, context)
	}
}
