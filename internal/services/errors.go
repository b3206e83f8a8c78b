package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/taskflow-api/internal/errors"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmailTaken           = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrForbidden            = errors.New("you do not have permission to perform this action")
	ErrProjectNotFound      = errors.New("project not found")
	ErrAlreadyProjectMember = errors.New("user is already a member of this project")
	ErrTaskNotFound         = errors.New("task not found")
	ErrTimeEntryNotFound    = errors.New("time entry not found")
	ErrTimerAlreadyRunning  = errors.New("a timer is already running for this user")
)

// ValidationError is returned when input fails a business rule that binding
// tags cannot express. Handlers render Fields as the error detail.
type ValidationError struct {
	Fields []apierrors.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// fieldChecks accumulates field errors.
type fieldChecks struct {
	fields []apierrors.FieldError
}

func (v *fieldChecks) check(ok bool, field, tag, message string) {
	if !ok {
		v.fields = append(v.fields, apierrors.FieldError{Field: field, Tag: tag, Message: message})
	}
}

func (v *fieldChecks) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

// validate is shared so struct and tag caches are built once.
var validate = validator.New()

// validEmail applies the same email rule as the request binding tags.
func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

func validPercent(p *int) bool {
	return p == nil || (*p >= 0 && *p <= 100)
}
