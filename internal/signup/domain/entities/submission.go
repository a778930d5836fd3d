package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCatalogFetchFailed - каталог тегов не удалось загрузить.
var ErrCatalogFetchFailed = errors.New("tag catalog fetch failed")

// SubmissionStatus - итог отправки.
type SubmissionStatus int

// Итоги отправки.
const (
	SubmissionSuccess SubmissionStatus = iota
	SubmissionAccountCreationFailed
	SubmissionPartialFailure
)

func (s SubmissionStatus) String() string {
	switch s {
	case SubmissionSuccess:
		return "success"
	case SubmissionAccountCreationFailed:
		return "account_creation_failed"
	case SubmissionPartialFailure:
		return "partial_failure"
	default:
		return "unknown"
	}
}

// AccountCreationError - учетная запись не создана, теги не назначались.
type AccountCreationError struct {
	Reason string
	Err    error
}

func (e *AccountCreationError) Error() string {
	return "account creation failed: " + e.Reason
}

func (e *AccountCreationError) Unwrap() error {
	return e.Err
}

// TagAssignmentError - не удалось назначить один тег.
type TagAssignmentError struct {
	TagID  string
	Reason string
	Err    error
}

func (e *TagAssignmentError) Error() string {
	return fmt.Sprintf("tag %s assignment failed: %s", e.TagID, e.Reason)
}

func (e *TagAssignmentError) Unwrap() error {
	return e.Err
}

// PartialFailureError - учетная запись создана, но часть тегов не назначена.
type PartialFailureError struct {
	AccountID string
	Succeeded []string
	Failed    []*TagAssignmentError
}

func (e *PartialFailureError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		ids = append(ids, f.TagID)
	}
	return fmt.Sprintf("account %s created, tags not assigned: %s", e.AccountID, strings.Join(ids, ", "))
}

// Unwrap возвращает причины по каждому тегу.
func (e *PartialFailureError) Unwrap() []error {
	out := make([]error, 0, len(e.Failed))
	for _, f := range e.Failed {
		out = append(out, f)
	}
	return out
}

// FailedIDs возвращает идентификаторы тегов, назначение которых не удалось.
func (e *PartialFailureError) FailedIDs() []string {
	ids := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		ids = append(ids, f.TagID)
	}
	return ids
}

// SubmissionResult - агрегированный итог отправки.
type SubmissionResult struct {
	Status    SubmissionStatus
	AccountID string
	Succeeded []string
	Failed    []string
	Err       error
}
