package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"vagas-rmc/internal/api/middleware"
	"vagas-rmc/internal/models"
	"vagas-rmc/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.Response{Success: true, Data: data})
}

func respondPage(c *gin.Context, data interface{}, page models.Pagination) {
	c.JSON(http.StatusOK, dto.Response{Success: true, Data: data, Pagination: &page})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: message})
}

// bindJSON decodes and validates the request body. It writes the 400 itself
// and returns false on failure.
func bindJSON(c *gin.Context, validate *validator.Validate, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondValidation(c, err)
		return false
	}
	return validateStruct(c, validate, req)
}

// bindOptionalJSON is bindJSON for endpoints whose body may be empty.
func bindOptionalJSON(c *gin.Context, validate *validator.Validate, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		respondValidation(c, err)
		return false
	}
	return validateStruct(c, validate, req)
}

func bindQuery(c *gin.Context, validate *validator.Validate, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		respondValidation(c, err)
		return false
	}
	return validateStruct(c, validate, req)
}

func validateStruct(c *gin.Context, validate *validator.Validate, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		respondValidation(c, err)
		return false
	}
	return true
}

// requireUser returns the session user's ID or writes a 401.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context on %s: %v", c.FullPath(), err)
		c.JSON(http.StatusUnauthorized, dto.Response{Error: "Authentication required", Code: CodeUnauthenticated})
		return uuid.Nil, false
	}
	return userID, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{
			Error:   "Invalid " + name + " format",
			Code:    CodeValidation,
			Details: map[string]string{name: "must be a valid UUID"},
		})
		return uuid.Nil, false
	}
	return id, true
}
