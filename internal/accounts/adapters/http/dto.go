// Package http содержит REST API сервиса учетных записей.
package http

import (
	"signupflow/internal/accounts/domain/entities"
)

// SignupRequest - тело запроса регистрации.
type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
}

// AccountResponse - публичное представление учетной записи.
type AccountResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	IsActive    bool   `json:"is_active"`
}

// TagRequest - тело запроса создания тега.
type TagRequest struct {
	Name string `json:"name"`
}

// TagResponse - элемент каталога.
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MessageResponse - текстовый ответ операции.
type MessageResponse struct {
	Message string `json:"message"`
}

// TagsResponse - страница каталога.
type TagsResponse struct {
	Data  []TagResponse `json:"data"`
	Count int           `json:"count"`
}

func toAccountResponse(a *entities.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Gender:      a.Gender,
		DateOfBirth: a.DateOfBirth.Format(entities.DateLayout),
		IsActive:    a.IsActive,
	}
}

func toTagResponses(tags []*entities.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{ID: t.ID, Name: t.Name})
	}
	return out
}
