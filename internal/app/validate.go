package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/alexanderramin/outing/internal/domain"
	"github.com/alexanderramin/outing/internal/planner"
	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		// Registration only fails on an empty tag or nil func.
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			_, err := planner.ParseClock(fl.Field().String())
			return err == nil
		})
		validate = v
	})
	return validate
}

// ValidateRequest checks the request before any planning work starts.
// Failures come back as a *PlanError with code INVALID_REQUEST.
func ValidateRequest(req domain.OutingRequest) error {
	err := requestValidator().Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &PlanError{Code: ErrInvalidRequest, Message: "invalid request", Err: err}
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, describeFieldError(e))
	}
	return &PlanError{Code: ErrInvalidRequest, Message: strings.Join(msgs, "; "), Err: err}
}

// ValidateDraft checks the fields a draft does carry. Unknown fields are
// allowed; they are filled from flags or defaults later.
func ValidateDraft(d OutingDraft) error {
	err := requestValidator().Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, describeFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describeFieldError(e validator.FieldError) string {
	field := fieldPath(e.Namespace())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "hhmm":
		return fmt.Sprintf("%s must be HH:MM (got %q)", field, e.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s (got %v)", field, e.Param(), e.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s (got %v)", field, e.Param(), e.Value())
	case "lte":
		return fmt.Sprintf("%s must be at most %s (got %v)", field, e.Param(), e.Value())
	case "len", "alpha":
		return fmt.Sprintf("%s must be a three-letter code (got %q)", field, e.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %v)", field, e.Param(), e.Value())
	default:
		return fmt.Sprintf("%s failed %s (got %v)", field, e.Tag(), e.Value())
	}
}

// fieldPath drops the root struct name: "OutingRequest.budget.amount" -> "budget.amount".
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return rest
}
