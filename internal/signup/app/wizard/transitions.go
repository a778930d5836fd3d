// Package wizard реализует конечный автомат мастера регистрации.
//
// Переходы (Next, Back, UpdateField, ToggleTag) - чистые функции: принимают
// состояние и возвращают новое. Побочные действия (загрузка каталога, отправка)
// возвращаются из Next как Effect и выполняются Controller.
package wizard

import (
	"errors"
	"slices"

	"signupflow/internal/signup/app/validator"
	"signupflow/internal/signup/domain/entities"
)

// Ошибки недопустимых переходов. Состояние при этом не меняется.
var (
	ErrSubmissionInProgress = errors.New("submission is in progress")
	ErrWizardFinished       = errors.New("signup already completed")
	ErrTagsStepInactive     = errors.New("tags can be changed only on the tags step")
	ErrUnknownTag           = errors.New("tag is not in the catalog")
	ErrAccountCreated       = errors.New("account already created, form fields are locked")
)

// Effect - действие, которое нужно выполнить после перехода.
type Effect int

// Эффекты переходов.
const (
	EffectNone Effect = iota
	EffectFetchCatalog
	EffectSubmit
)

// Start возвращает начальное состояние мастера.
func Start() entities.WizardState {
	return entities.WizardState{
		Step:      entities.StepCredentials,
		Selection: entities.NewSelectedTagSet(),
		Attached:  entities.NewSelectedTagSet(),
	}
}

func guard(s entities.WizardState) error {
	switch s.Step {
	case entities.StepSubmitting:
		return ErrSubmissionInProgress
	case entities.StepDone:
		return ErrWizardFinished
	default:
		return nil
	}
}

// Next проверяет текущий шаг и переходит к следующему.
// При ошибках проверки шаг не меняется, а LastError заменяется ошибками полей.
func Next(s entities.WizardState) (entities.WizardState, Effect, error) {
	if err := guard(s); err != nil {
		return s, EffectNone, err
	}

	outcome := validator.Validate(s.Step, s.Snapshot, s.Selection)
	if !outcome.Valid() {
		s.LastError = &entities.Failure{Kind: entities.FailureValidation, Fields: outcome}
		return s, EffectNone, nil
	}

	s.LastError = nil
	switch s.Step {
	case entities.StepCredentials:
		s.Step = entities.StepPersonal
		return s, EffectNone, nil
	case entities.StepPersonal:
		s.Step = entities.StepTags
		s.Catalog = nil
		return s, EffectFetchCatalog, nil
	default:
		s.Step = entities.StepSubmitting
		return s, EffectSubmit, nil
	}
}

// Back возвращает на предыдущий шаг, сохраняя введенные значения.
// С первого шага переход ничего не делает.
func Back(s entities.WizardState) (entities.WizardState, error) {
	if err := guard(s); err != nil {
		return s, err
	}

	switch s.Step {
	case entities.StepPersonal:
		s.Step = entities.StepCredentials
	case entities.StepTags:
		s.Step = entities.StepPersonal
	default:
		return s, nil
	}

	s.LastError = nil
	return s, nil
}

// UpdateField меняет значение поля формы.
func UpdateField(s entities.WizardState, name, value string) (entities.WizardState, error) {
	if s.Step == entities.StepSubmitting {
		return s, ErrSubmissionInProgress
	}

	snapshot, err := s.Snapshot.Set(name, value)
	if err != nil {
		return s, err
	}
	s.Snapshot = snapshot
	return s, nil
}

// FormEditable проверяет, можно ли менять поля формы сохраненной сессии.
// После создания аккаунта форма больше не отправляется и закрыта для правки.
func FormEditable(s entities.WizardState) error {
	if err := guard(s); err != nil {
		return err
	}
	if s.AccountID != "" {
		return ErrAccountCreated
	}
	return nil
}

// ToggleTag выбирает или снимает тег. Добавить можно только тег из каталога,
// снять - любой выбранный.
func ToggleTag(s entities.WizardState, id string) (entities.WizardState, error) {
	if s.Step != entities.StepTags {
		if s.Step == entities.StepSubmitting {
			return s, ErrSubmissionInProgress
		}
		return s, ErrTagsStepInactive
	}

	if !s.Selection.Contains(id) && !s.CatalogContains(id) {
		return s, ErrUnknownTag
	}

	s.Selection = s.Selection.Toggle(id)
	return s, nil
}

// ApplyCatalog сохраняет результат загрузки каталога.
// Результат, пришедший после ухода с шага тегов, игнорируется.
func ApplyCatalog(s entities.WizardState, entries []entities.TagCatalogEntry, err error) entities.WizardState {
	if s.Step != entities.StepTags {
		return s
	}

	if err != nil {
		s.Catalog = nil
		s.LastError = &entities.Failure{
			Kind:   entities.FailureCatalogFetch,
			Reason: err.Error(),
		}
		return s
	}

	s.Catalog = slices.Clone(entries)
	return s
}

// ApplySubmission переводит мастер в Done при успехе или возвращает на шаг тегов с ошибкой.
func ApplySubmission(s entities.WizardState, result entities.SubmissionResult) entities.WizardState {
	if s.Step != entities.StepSubmitting {
		return s
	}

	switch result.Status {
	case entities.SubmissionSuccess:
		s.Step = entities.StepDone
		s.AccountID = result.AccountID
		s.Attached = s.Attached.Union(entities.NewSelectedTagSet(result.Succeeded...))
		s.LastError = nil

	case entities.SubmissionAccountCreationFailed:
		s.Step = entities.StepTags
		failure := &entities.Failure{Kind: entities.FailureAccountCreation}
		var accErr *entities.AccountCreationError
		if errors.As(result.Err, &accErr) {
			failure.Reason = accErr.Reason
		} else if result.Err != nil {
			failure.Reason = result.Err.Error()
		}
		s.LastError = failure

	case entities.SubmissionPartialFailure:
		s.Step = entities.StepTags
		s.AccountID = result.AccountID
		s.Attached = s.Attached.Union(entities.NewSelectedTagSet(result.Succeeded...))
		failure := &entities.Failure{
			Kind:      entities.FailurePartial,
			AccountID: result.AccountID,
			Succeeded: slices.Clone(result.Succeeded),
			Failed:    slices.Clone(result.Failed),
			TagErrors: map[string]string{},
		}
		var partial *entities.PartialFailureError
		if errors.As(result.Err, &partial) {
			for _, f := range partial.Failed {
				failure.TagErrors[f.TagID] = f.Reason
			}
			failure.Reason = partial.Error()
		}
		s.LastError = failure
	}

	return s
}

// PendingTags возвращает выбранные теги, которые еще не назначены учетной записи.
func PendingTags(s entities.WizardState) entities.SelectedTagSet {
	return s.Selection.Without(s.Attached)
}
