package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ProcessRequest represents the job details submitted to start a rewrite.
type ProcessRequest struct {
	Title       string `json:"title" validate:"required,min=1"`
	Company     string `json:"company" validate:"required,min=1"`
	Description string `json:"description" validate:"required,min=10"`
}

// CreateTemplateRequest represents the request to create or replace a template.
type CreateTemplateRequest struct {
	Name         string `json:"name" validate:"required,min=1"`
	Description  string `json:"description"`
	DocumentType string `json:"documentType" validate:"required,oneof=cv cover"`
	Content      string `json:"content" validate:"required,min=1"`
	IsDefault    bool   `json:"isDefault"`
}

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate validates the ProcessRequest using the validator.
func (r *ProcessRequest) Validate() []FieldError {
	validate := validator.New()
	return extractFieldErrors(validate.Struct(r))
}

// Validate validates the CreateTemplateRequest using the validator.
func (r *CreateTemplateRequest) Validate() []FieldError {
	validate := validator.New()
	return extractFieldErrors(validate.Struct(r))
}

// extractFieldErrors converts validator errors into field-level messages.
func extractFieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: "invalid request"}}
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, ve := range validationErrors {
		var msg string
		switch ve.Tag() {
		case "required":
			msg = "is required"
		case "min":
			msg = fmt.Sprintf("must be at least %s characters", ve.Param())
		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", ve.Param())
		default:
			msg = fmt.Sprintf("failed %s validation", ve.Tag())
		}
		fields = append(fields, FieldError{Field: ve.Field(), Message: msg})
	}
	return fields
}
