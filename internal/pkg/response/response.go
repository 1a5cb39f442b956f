package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope: a success flag plus either
// data, a human message, or an error string. Legacy API consumers parse it.

// Pagination metadata returned with paginated responses.
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	TotalPage   int   `json:"total_page"`
	Size        int   `json:"size"`
	HasNextPage bool  `json:"has_next_page"`
}

// OK sends a 200 success response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// OKMessage sends a 200 success response carrying only a message.
func OKMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// Paged sends a paginated success response.
func Paged(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "pagination": pagination})
}

// Created sends a 201 success response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

// BadRequestCode sends a 400 error response with a machine-readable code
// (e.g. FILE_TOO_LARGE, INVALID_FILE_TYPE).
func BadRequestCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "code": code, "message": message})
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Not authenticated"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": message})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Not found"
	}
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": message})
}

// Conflict sends a 409 error response. The error field names what conflicted.
func Conflict(c *gin.Context, errMsg string) {
	c.AbortWithStatusJSON(http.StatusConflict, gin.H{"success": false, "error": errMsg})
}

// InternalError sends a 500 error response carrying the underlying error
// text, matching what legacy clients already parse.
func InternalError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}
