// Package dto содержит объекты передачи данных мастера регистрации.
package dto

import (
	"maps"

	"signupflow/internal/signup/app/wizard"
	"signupflow/internal/signup/domain/entities"
)

// UpdateFieldsRequest - значения полей формы по именам.
type UpdateFieldsRequest struct {
	Fields map[string]string `json:"fields"`
}

// SessionResponse - созданная сессия.
type SessionResponse struct {
	SessionID string        `json:"session_id"`
	State     StateResponse `json:"state"`
}

// FormResponse - значения формы без паролей.
type FormResponse struct {
	Email       string `json:"email"`
	PasswordSet bool   `json:"password_set"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
}

// FailureResponse - последняя ошибка мастера.
type FailureResponse struct {
	Kind      string            `json:"kind"`
	Fields    map[string]string `json:"fields,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	AccountID string            `json:"account_id,omitempty"`
	Succeeded []string          `json:"succeeded,omitempty"`
	Failed    []string          `json:"failed,omitempty"`
	TagErrors map[string]string `json:"tag_errors,omitempty"`
}

// StateResponse - состояние мастера для клиента.
type StateResponse struct {
	Step         string                     `json:"step"`
	Form         FormResponse               `json:"form"`
	SelectedTags []string                   `json:"selected_tags"`
	Catalog      []entities.TagCatalogEntry `json:"catalog,omitempty"`
	AccountID    string                     `json:"account_id,omitempty"`
	AttachedTags []string                   `json:"attached_tags,omitempty"`
	Editable     bool                       `json:"editable"`
	LastError    *FailureResponse           `json:"last_error,omitempty"`
}

// FromState собирает ответ из состояния мастера.
func FromState(s entities.WizardState) StateResponse {
	resp := StateResponse{
		Step: s.Step.String(),
		Form: FormResponse{
			Email:       s.Snapshot.Email,
			PasswordSet: s.Snapshot.Password != "",
			FirstName:   s.Snapshot.FirstName,
			LastName:    s.Snapshot.LastName,
			Gender:      s.Snapshot.Gender,
			DateOfBirth: s.Snapshot.DateOfBirth,
		},
		SelectedTags: append([]string{}, s.Selection.IDs()...),
		Catalog:      s.Catalog,
		AccountID:    s.AccountID,
		Editable:     wizard.FormEditable(s) == nil,
	}

	if attached := s.Attached.IDs(); len(attached) > 0 {
		resp.AttachedTags = attached
	}

	if f := s.LastError; f != nil {
		resp.LastError = &FailureResponse{
			Kind:      string(f.Kind),
			Fields:    maps.Clone(map[string]string(f.Fields)),
			Reason:    f.Reason,
			AccountID: f.AccountID,
			Succeeded: f.Succeeded,
			Failed:    f.Failed,
			TagErrors: maps.Clone(f.TagErrors),
		}
	}

	return resp
}
