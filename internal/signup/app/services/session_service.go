// Package services управляет сессиями мастера регистрации: хранит состояние,
// применяет переходы и выполняет отправку в фоне.
package services

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"signupflow/internal/signup/app/wizard"
	"signupflow/internal/signup/domain/entities"
	"signupflow/internal/signup/ports/sessions"
	"signupflow/pkg/logger"
)

// Константы для логирования.
const (
	LogSessionStarted     = "signup session started"
	LogSessionDeleted     = "signup session deleted"
	LogSubmissionStarted  = "submission started"
	LogSubmissionDropped  = "session gone before submission finished"
	LogSubmissionSaveFail = "failed to save submission result"

	errFailedToStart = "failed to start session"
	errFailedToSave  = "failed to save session"
)

// DefaultSubmissionTimeout - ограничение на всю отправку.
const DefaultSubmissionTimeout = 30 * time.Second

// EffectRunner выполняет эффекты переходов.
type EffectRunner interface {
	Run(ctx context.Context, s entities.WizardState, effect wizard.Effect) entities.WizardState
}

// SessionService - операции мастера над сохраненными сессиями.
// Операции одной сессии выполняются последовательно.
type SessionService struct {
	store             sessions.Store
	runner            EffectRunner
	submissionTimeout time.Duration

	// Мьютексы живых сессий; удаляются вместе с сессией.
	locks       sync.Map
	submissions conc.WaitGroup
}

// Option настраивает SessionService.
type Option func(*SessionService)

// WithSubmissionTimeout задает ограничение времени отправки.
func WithSubmissionTimeout(d time.Duration) Option {
	return func(s *SessionService) {
		if d > 0 {
			s.submissionTimeout = d
		}
	}
}

// NewSessionService создает сервис сессий.
func NewSessionService(store sessions.Store, runner EffectRunner, opts ...Option) *SessionService {
	s := &SessionService{
		store:             store,
		runner:            runner,
		submissionTimeout: DefaultSubmissionTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if notifier, ok := store.(sessions.EvictionNotifier); ok {
		notifier.OnEvicted(s.release)
	}
	return s
}

func (s *SessionService) lock(id string) func() {
	value, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *SessionService) release(id string) {
	s.locks.Delete(id)
}

// load читает сессию под блокировкой. Для отсутствующей сессии мьютекс сразу освобождается.
func (s *SessionService) load(ctx context.Context, id string) (entities.WizardState, error) {
	state, err := s.store.Get(ctx, id)
	if errors.Is(err, sessions.ErrSessionNotFound) {
		s.release(id)
	}
	return state, err
}

// Start создает новую сессию на шаге учетных данных.
func (s *SessionService) Start(ctx context.Context) (string, entities.WizardState, error) {
	state := wizard.Start()
	id, err := s.store.Create(ctx, state)
	if err != nil {
		return "", entities.WizardState{}, fmt.Errorf("%s: %w", errFailedToStart, err)
	}

	logger.Log(ctx).Info(ctx, LogSessionStarted, zap.String("sessionID", id))
	return id, state, nil
}

// Get возвращает текущее состояние сессии.
func (s *SessionService) Get(ctx context.Context, id string) (entities.WizardState, error) {
	return s.store.Get(ctx, id)
}

// UpdateFields записывает значения полей формы. Поля применяются в порядке
// сортировки имен; при первой ошибке сессия не меняется.
// Завершенная сессия и сессия с уже созданным аккаунтом правку не принимают.
func (s *SessionService) UpdateFields(ctx context.Context, id string, fields map[string]string) (entities.WizardState, error) {
	return s.mutate(ctx, id, func(state entities.WizardState) (entities.WizardState, error) {
		if err := wizard.FormEditable(state); err != nil {
			return state, err
		}
		for _, name := range slices.Sorted(maps.Keys(fields)) {
			next, err := wizard.UpdateField(state, name, fields[name])
			if err != nil {
				return state, fmt.Errorf("%s: %w", name, err)
			}
			state = next
		}
		return state, nil
	})
}

// ToggleTag добавляет или убирает тег из выбора.
func (s *SessionService) ToggleTag(ctx context.Context, id, tagID string) (entities.WizardState, error) {
	return s.mutate(ctx, id, func(state entities.WizardState) (entities.WizardState, error) {
		return wizard.ToggleTag(state, tagID)
	})
}

// Back возвращает мастер на предыдущий шаг.
func (s *SessionService) Back(ctx context.Context, id string) (entities.WizardState, error) {
	return s.mutate(ctx, id, wizard.Back)
}

// Next переходит к следующему шагу. Каталог загружается синхронно.
// Отправка запускается в фоне, а вызывающий сразу получает состояние Submitting.
func (s *SessionService) Next(ctx context.Context, id string) (entities.WizardState, error) {
	unlock := s.lock(id)
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return entities.WizardState{}, err
	}

	next, effect, err := wizard.Next(state)
	if err != nil {
		return state, err
	}

	if effect == wizard.EffectFetchCatalog {
		next = s.runner.Run(ctx, next, effect)
	}

	if err := s.store.Save(ctx, id, next); err != nil {
		return entities.WizardState{}, saveError(err)
	}

	if effect == wizard.EffectSubmit {
		s.startSubmission(ctx, id, next)
	}

	return next, nil
}

// Delete удаляет сессию. Уже запущенная отправка завершится, но ее итог не сохранится.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.release(id)

	logger.Log(ctx).Info(ctx, LogSessionDeleted, zap.String("sessionID", id))
	return nil
}

// Wait ждет завершения фоновых отправок или отмены ctx.
func (s *SessionService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.submissions.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SessionService) startSubmission(ctx context.Context, id string, state entities.WizardState) {
	log := logger.Log(ctx).With(zap.String("sessionID", id))
	log.Info(ctx, LogSubmissionStarted, zap.Int("tags", state.Selection.Len()))

	submitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.submissionTimeout)

	s.submissions.Go(func() {
		defer cancel()

		result := s.runner.Run(submitCtx, state, wizard.EffectSubmit)
		if result.Step == entities.StepDone {
			result.Snapshot.Password = ""
			result.Snapshot.ConfirmPassword = ""
		}

		unlock := s.lock(id)
		defer unlock()

		if _, err := s.load(submitCtx, id); err != nil {
			log.Warn(submitCtx, LogSubmissionDropped, zap.String("step", result.Step.String()))
			return
		}
		if err := s.store.Save(submitCtx, id, result); err != nil {
			log.Error(submitCtx, LogSubmissionSaveFail, zap.Error(err))
		}
	})
}

func (s *SessionService) mutate(
	ctx context.Context,
	id string,
	apply func(entities.WizardState) (entities.WizardState, error),
) (entities.WizardState, error) {
	unlock := s.lock(id)
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return entities.WizardState{}, err
	}

	next, err := apply(state)
	if err != nil {
		return state, err
	}

	if err := s.store.Save(ctx, id, next); err != nil {
		return entities.WizardState{}, saveError(err)
	}
	return next, nil
}

func saveError(err error) error {
	if errors.Is(err, sessions.ErrSessionNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", errFailedToSave, err)
}
