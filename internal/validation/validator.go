package validation

import (
	"regexp"
	"strings"

	"github.com/Lanziify/seps-web-server/internal/domain"
	"github.com/Lanziify/seps-web-server/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRegisterRequest validates the registration payload
func (v *Validator) ValidateRegisterRequest(req dto.RegisterRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Username) == "" {
		errors = append(errors, domain.NewMissingFieldError("username"))
	} else if len(req.Username) > 50 {
		errors = append(errors, domain.NewOutOfRangeError("username", len(req.Username), 1, 50))
	}

	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	} else if !isValidEmail(req.Email) {
		errors = append(errors, domain.NewInvalidFormatError("email", req.Email))
	}

	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	} else if len(req.Password) < 8 || len(req.Password) > 72 {
		errors = append(errors, domain.NewOutOfRangeError("password", len(req.Password), 8, 72))
	}

	return errors
}

// ValidateLoginRequest validates the login payload
func (v *Validator) ValidateLoginRequest(req dto.LoginRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	} else if !isValidEmail(req.Email) {
		errors = append(errors, domain.NewInvalidFormatError("email", req.Email))
	}

	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	}

	return errors
}

// ValidateUploadRequest validates an evaluation upload. The feature slice
// must carry exactly one score per evaluated trait, in the fixed order.
func (v *Validator) ValidateUploadRequest(req dto.UploadRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.StudentID <= 0 {
		errors = append(errors, domain.NewInvalidFormatError("studentId", req.StudentID))
	}

	if len(req.Features) != domain.FeatureCount {
		errors = append(errors, domain.NewOutOfRangeError("features", len(req.Features), domain.FeatureCount, domain.FeatureCount))
		return errors
	}
	for i, score := range req.Features {
		if score < 0 {
			errors = append(errors, domain.NewInvalidFormatError(domain.FeatureNames[i], score))
		}
	}

	return errors
}

// isValidEmail checks if the string looks like an email address
func isValidEmail(s string) bool {
	if len(s) > 254 {
		return false
	}
	validEmail := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return validEmail.MatchString(s)
}
