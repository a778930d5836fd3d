// Package entities содержит сущности домена учетных записей.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена учетных записей.
var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must contain at least 6 characters")
	ErrEmptyFirstName     = errors.New("first name cannot be empty")
	ErrEmptyLastName      = errors.New("last name cannot be empty")
	ErrEmptyGender        = errors.New("gender cannot be empty")
	ErrInvalidDateOfBirth = errors.New("date of birth must be a valid YYYY-MM-DD date")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrAccountNotFound    = errors.New("account not found")
)

// DateLayout - формат даты рождения.
const DateLayout = "2006-01-02"

// MinPasswordLength - минимальная длина пароля.
const MinPasswordLength = 6

// Account представляет зарегистрированного пользователя.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Gender       string
	DateOfBirth  time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAccount содержит данные для создания учетной записи.
type NewAccount struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Gender      string
	DateOfBirth string
}
