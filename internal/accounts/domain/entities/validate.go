package entities

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^\S+@\S+$`)

// Validate проверяет все поля и возвращает объединение найденных ошибок.
func (n *NewAccount) Validate() error {
	var errs []error

	if !emailRegex.MatchString(n.Email) {
		errs = append(errs, ErrInvalidEmail)
	}
	if utf8.RuneCountInString(n.Password) < MinPasswordLength {
		errs = append(errs, ErrPasswordTooShort)
	}
	if strings.TrimSpace(n.FirstName) == "" {
		errs = append(errs, ErrEmptyFirstName)
	}
	if strings.TrimSpace(n.LastName) == "" {
		errs = append(errs, ErrEmptyLastName)
	}
	if strings.TrimSpace(n.Gender) == "" {
		errs = append(errs, ErrEmptyGender)
	}
	if _, err := n.BirthDate(); err != nil {
		errs = append(errs, ErrInvalidDateOfBirth)
	}

	return errors.Join(errs...)
}

// BirthDate разбирает дату рождения в формате YYYY-MM-DD.
func (n *NewAccount) BirthDate() (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(n.DateOfBirth))
}

// IsValidationError сообщает, вызвана ли ошибка некорректными входными данными.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidEmail, ErrPasswordTooShort, ErrEmptyFirstName,
		ErrEmptyLastName, ErrEmptyGender, ErrInvalidDateOfBirth,
		ErrEmptyTagName, ErrInvalidPage,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
