package facade

import (
	"strings"
	"unicode/utf8"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/domain"
)

const (
	minNameLength     = 3
	maxNameLength     = 100
	minPasswordLength = 6
	maxPasswordLength = 100
)

func validateName(name string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(name)); n < minNameLength || n > maxNameLength {
		return domain.NewValidationError("Name must be between 3 and 100 characters.")
	}
	return nil
}

func validateEmail(email string) error {
	if !auth.ValidEmail(email) {
		return domain.NewValidationError("Invalid email address.")
	}
	return nil
}

func validatePassword(password string) error {
	if n := utf8.RuneCountInString(password); n < minPasswordLength || n > maxPasswordLength {
		return domain.NewValidationError("Password must be between 6 and 100 characters.")
	}
	return nil
}

func validateRole(role auth.Role) error {
	if !role.Valid() {
		return domain.NewValidationError("Role must be ADMIN or USER.")
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return domain.NewValidationError("Title is required.")
	}
	return nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return domain.NewValidationError("Content is required.")
	}
	return nil
}

func validateNewUser(in domain.NewUser) error {
	for _, err := range []error{
		validateName(in.Name),
		validateEmail(in.Email),
		validatePassword(in.Password),
		validateRole(in.Role),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}
