package handler

import (
	"errors"
	"net/http"
	"strings"

	"carshare/internal/httpapi/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.Response{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Response{Success: false, Message: message})
}

// respondBindError maps a ShouldBindJSON failure: validation rule failures
// become a 422 with per-field messages, anything else (malformed JSON,
// wrong types) is a 400.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = validationMessage(fe)
		}
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse{
			Success: false,
			Message: "validation failed",
			Errors:  fields,
		})
		return
	}
	respondError(c, http.StatusBadRequest, "malformed request body")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return "invalid value"
	}
}
