// Package contact validates the contact form and forwards submissions to a
// form relay or mailbox.
package contact

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Form is what the visitor fills in.
type Form struct {
	Name    string `form:"name" json:"name" binding:"required,min=2"`
	Email   string `form:"email" json:"email" binding:"required,email"`
	Message string `form:"message" json:"message" binding:"required,min=10"`
}

// Normalize trims surrounding whitespace so padding cannot satisfy the
// length rules.
func (f *Form) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)
}

// FieldErrors maps a form field to the message shown under it.
type FieldErrors map[string]string

var messages = map[string]string{
	"name":    "Name must be at least 2 characters.",
	"email":   "Please enter a valid email.",
	"message": "Message must be at least 10 characters.",
}

// Validate runs the binding rules on f.
func Validate(f Form) FieldErrors {
	return FieldErrorsFrom(binding.Validator.ValidateStruct(&f))
}

// FieldErrorsFrom converts a binding error into per-field messages. Errors
// that are not validation errors are reported against "form".
func FieldErrorsFrom(err error) FieldErrors {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": "The form could not be read."}
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if msg, ok := messages[field]; ok {
			out[field] = msg
		} else {
			out[field] = fe.Error()
		}
	}
	return out
}

// Submission is an accepted form with its identity.
type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSubmission(f Form, now time.Time) Submission {
	return Submission{
		ID:        uuid.New().String(),
		Name:      f.Name,
		Email:     f.Email,
		Message:   f.Message,
		CreatedAt: now.UTC(),
	}
}
