package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	maxPasswordLength = 128
	minPasswordLength = 8
	maxEmailLength    = 254
	maxNameLength     = 100

	// Post field limits. Title fits a headline; content is capped
	// pre-transform so rendered HTML stays bounded.
	MaxTitleLength   = 200
	MaxContentLength = 65536
)

func init() {
	validate = validator.New()
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func (r ValidationResult) Message() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, " ")
}

func Validate(s any) error {
	return validate.Struct(s)
}

// PostInput is what the add/edit forms submit, before the content
// transform runs.
type PostInput struct {
	Title   string `validate:"required,max=200"`
	Content string `validate:"required,max=65536"`
}

// ValidatePost enumerates the post validation policy: both fields are
// required after trimming surrounding whitespace, title is capped at
// MaxTitleLength characters and content at MaxContentLength characters.
func ValidatePost(title, content string) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []ValidationError{}}

	input := PostInput{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}

	err := validate.Struct(input)
	if err == nil {
		return result
	}

	result.Valid = false
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		result.Errors = append(result.Errors, ValidationError{Field: "post", Message: err.Error()})
		return result
	}

	for _, fe := range errs {
		switch fe.Field() {
		case "Title":
			if fe.Tag() == "required" {
				result.Errors = append(result.Errors, ValidationError{Field: "title", Message: "title is required"})
			} else {
				result.Errors = append(result.Errors, ValidationError{Field: "title", Message: fmt.Sprintf("title too long (maximum %d characters)", MaxTitleLength)})
			}
		case "Content":
			if fe.Tag() == "required" {
				result.Errors = append(result.Errors, ValidationError{Field: "content", Message: "content is required"})
			} else {
				result.Errors = append(result.Errors, ValidationError{Field: "content", Message: fmt.Sprintf("content too long (maximum %d characters)", MaxContentLength)})
			}
		}
	}

	return result
}

func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > maxEmailLength {
		return fmt.Errorf("email too long (maximum %d characters)", maxEmailLength)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must have at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("password too long (maximum %d characters)", maxPasswordLength)
	}
	return nil
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("name too long (maximum %d characters)", maxNameLength)
	}
	return nil
}

func ValidateRegistration(name, email, password string) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []ValidationError{}}

	if err := ValidateName(name); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Field: "name", Message: err.Error()})
	}

	if err := ValidateEmail(email); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Field: "email", Message: err.Error()})
	}

	if err := ValidatePassword(password); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Field: "password", Message: err.Error()})
	}

	return result
}
