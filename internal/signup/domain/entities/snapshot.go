package entities

import (
	"errors"
	"fmt"
)

// Имена полей формы.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldGender          = "gender"
	FieldDateOfBirth     = "date_of_birth"
	FieldTags            = "tags"
)

// DateLayout - формат даты рождения.
const DateLayout = "2006-01-02"

// ErrUnknownField возвращается при обращении к полю, которого нет в форме.
var ErrUnknownField = errors.New("unknown form field")

// FormSnapshot - накопленные значения полей формы. Значения сохраняются при переходах между шагами.
type FormSnapshot struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Gender          string
	DateOfBirth     string
}

func (f *FormSnapshot) field(name string) (*string, error) {
	switch name {
	case FieldEmail:
		return &f.Email, nil
	case FieldPassword:
		return &f.Password, nil
	case FieldConfirmPassword:
		return &f.ConfirmPassword, nil
	case FieldFirstName:
		return &f.FirstName, nil
	case FieldLastName:
		return &f.LastName, nil
	case FieldGender:
		return &f.Gender, nil
	case FieldDateOfBirth:
		return &f.DateOfBirth, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// Set возвращает копию снимка с обновленным полем.
func (f FormSnapshot) Set(name, value string) (FormSnapshot, error) {
	ptr, err := f.field(name)
	if err != nil {
		return f, err
	}
	*ptr = value
	return f, nil
}

// Get возвращает значение поля.
func (f FormSnapshot) Get(name string) (string, error) {
	ptr, err := f.field(name)
	if err != nil {
		return "", err
	}
	return *ptr, nil
}

// AccountFields - данные для создания учетной записи.
func (f FormSnapshot) AccountFields() AccountFields {
	return AccountFields{
		Email:       f.Email,
		Password:    f.Password,
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		Gender:      f.Gender,
		DateOfBirth: f.DateOfBirth,
	}
}

// AccountFields - поля, передаваемые сервису учетных записей.
type AccountFields struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Gender      string
	DateOfBirth string
}
