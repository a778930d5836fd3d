package entities

import (
	"errors"
	"time"
)

// Ошибки домена тегов.
var (
	ErrTagNotFound      = errors.New("tag not found")
	ErrEmptyTagName     = errors.New("tag name cannot be empty")
	ErrTagAlreadyExists = errors.New("tag with this name already exists")
	ErrInvalidPage      = errors.New("invalid pagination parameters")
)

// Ограничения пагинации каталога.
const (
	DefaultTagLimit = 100
	MaxTagLimit     = 500
)

// Tag - элемент каталога интересов.
type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// TagPage - страница каталога с общим количеством тегов.
type TagPage struct {
	Tags  []*Tag
	Count int
}
