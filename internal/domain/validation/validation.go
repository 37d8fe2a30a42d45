// Package validation holds the invariants shared by every write path of users and tasks.
// Normalization always runs before the rules are checked.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

const (
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 7
	// forbiddenPasswordWord may not appear in a password, in any letter case.
	forbiddenPasswordWord = "password"
)

type userRules struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=7,nopassword"`
	Age      int    `json:"age" validate:"gte=0"`
}

type taskRules struct {
	Description string `json:"description" validate:"required"`
}

// Validator checks users and tasks before they are persisted.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the custom password rule registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})
	_ = v.RegisterValidation("nopassword", func(fl validator.FieldLevel) bool {
		return !ContainsForbiddenWord(fl.Field().String())
	})

	return &Validator{validate: v}
}

// ContainsForbiddenWord reports whether the password contains "password" in any case.
func ContainsForbiddenWord(password string) bool {
	return strings.Contains(strings.ToLower(password), forbiddenPasswordWord)
}

// NormalizeUser trims name, email and a pending password, and lower-cases the email.
func NormalizeUser(user *entity.User) {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Password = strings.TrimSpace(user.Password)
}

// NormalizeTask trims the description.
func NormalizeTask(task *entity.Task) {
	task.Description = strings.TrimSpace(task.Description)
}

// User normalizes and validates the whole user. A user without a stored hash
// must carry a new password.
func (v *Validator) User(user *entity.User) error {
	NormalizeUser(user)

	if user.PasswordHash == "" && user.Password == "" {
		return domainerrors.ErrValidationFailed.WithDetails("password: is required")
	}

	return v.check(userRules{
		Name:     user.Name,
		Email:    user.Email,
		Password: user.Password,
		Age:      user.Age,
	})
}

// Task normalizes and validates the task.
func (v *Validator) Task(task *entity.Task) error {
	NormalizeTask(task)

	return v.check(taskRules{Description: task.Description})
}

func (v *Validator) check(rules any) error {
	err := v.validate.Struct(rules)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	details := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details = append(details, fieldErr.Field()+": "+describe(fieldErr))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, "; "))
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fieldErr.Param())
	case "nopassword":
		return fmt.Sprintf("must not contain %q", forbiddenPasswordWord)
	default:
		return "is invalid"
	}
}
