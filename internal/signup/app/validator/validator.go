// Package validator проверяет поля текущего шага мастера.
// Проверка чистая: без сети и хранилища, одинаковые входы дают одинаковый результат.
package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"signupflow/internal/signup/domain/entities"
)

// MinPasswordLength - минимальная длина пароля в символах.
const MinPasswordLength = 6

// Сообщения об ошибках полей.
const (
	MsgRequired         = "this field is required"
	MsgInvalidEmail     = "enter a valid email address"
	MsgPasswordTooShort = "password must be at least 6 characters"
	MsgPasswordMismatch = "passwords do not match"
	MsgInvalidDate      = "enter a valid date (YYYY-MM-DD)"
	MsgSelectMoreTags   = "select at least 3 tags"
)

var emailRegex = regexp.MustCompile(`^\S+@\S+$`)

// Validate проверяет шаг и возвращает ошибки всех неверных полей сразу.
func Validate(step entities.Step, snapshot entities.FormSnapshot, selection entities.SelectedTagSet) entities.ValidationOutcome {
	out := entities.ValidationOutcome{}

	switch step {
	case entities.StepCredentials:
		validateCredentials(snapshot, out)
	case entities.StepPersonal:
		validatePersonal(snapshot, out)
	case entities.StepTags:
		if selection.Len() < entities.MinSelectedTags {
			out[entities.FieldTags] = MsgSelectMoreTags
		}
	}

	return out
}

func validateCredentials(s entities.FormSnapshot, out entities.ValidationOutcome) {
	switch {
	case s.Email == "":
		out[entities.FieldEmail] = MsgRequired
	case !emailRegex.MatchString(s.Email):
		out[entities.FieldEmail] = MsgInvalidEmail
	}

	switch {
	case s.Password == "":
		out[entities.FieldPassword] = MsgRequired
	case utf8.RuneCountInString(s.Password) < MinPasswordLength:
		out[entities.FieldPassword] = MsgPasswordTooShort
	}

	switch {
	case s.ConfirmPassword == "":
		out[entities.FieldConfirmPassword] = MsgRequired
	case s.ConfirmPassword != s.Password:
		out[entities.FieldConfirmPassword] = MsgPasswordMismatch
	}
}

func validatePersonal(s entities.FormSnapshot, out entities.ValidationOutcome) {
	required := map[string]string{
		entities.FieldFirstName:   s.FirstName,
		entities.FieldLastName:    s.LastName,
		entities.FieldGender:      s.Gender,
		entities.FieldDateOfBirth: s.DateOfBirth,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			out[field] = MsgRequired
		}
	}

	if _, missing := out[entities.FieldDateOfBirth]; !missing {
		if _, err := time.Parse(entities.DateLayout, strings.TrimSpace(s.DateOfBirth)); err != nil {
			out[entities.FieldDateOfBirth] = MsgInvalidDate
		}
	}
}
