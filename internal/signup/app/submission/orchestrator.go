// Package submission отправляет заполненную форму: создает учетную запись,
// затем параллельно назначает выбранные теги и собирает общий итог.
package submission

import (
	"context"
	"slices"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"signupflow/internal/signup/domain/entities"
	"signupflow/internal/signup/ports/services"
	"signupflow/pkg/logger"
)

const (
	spanSubmit  = "submission.submit"
	spanResume  = "submission.resume"
	spanCreate  = "account.create"
	spanAssign  = "tag.assign"
	tracerScope = "signupflow/submission"

	msgAccountCreationFailed = "account creation failed"
	msgAccountCreated        = "account created"
	msgTagAssignmentFailed   = "tag assignment failed"
	msgSubmissionAggregated  = "tag assignments finished"
)

// DefaultMaxConcurrency - ограничение одновременных назначений тегов по умолчанию.
const DefaultMaxConcurrency = 8

// Orchestrator реализует двухфазную отправку: создание учетной записи и
// затем независимые назначения тегов с ожиданием их всех.
type Orchestrator struct {
	accounts       services.AccountService
	tags           services.TagAssignmentService
	maxConcurrency int
	tracer         trace.Tracer
}

// Option настраивает Orchestrator.
type Option func(*Orchestrator)

// WithMaxConcurrency ограничивает число одновременных назначений.
func WithMaxConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxConcurrency = n
		}
	}
}

// WithTracer задает трассировщик.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *Orchestrator) {
		o.tracer = tracer
	}
}

// NewOrchestrator создает оркестратор отправки.
func NewOrchestrator(accounts services.AccountService, tags services.TagAssignmentService, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		accounts:       accounts,
		tags:           tags,
		maxConcurrency: DefaultMaxConcurrency,
		tracer:         otel.Tracer(tracerScope),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit создает учетную запись и назначает ей выбранные теги.
// При ошибке создания теги не назначаются. Созданная учетная запись не откатывается.
func (o *Orchestrator) Submit(ctx context.Context, snapshot entities.FormSnapshot, selection entities.SelectedTagSet) entities.SubmissionResult {
	ctx, span := o.tracer.Start(ctx, spanSubmit, trace.WithAttributes(attribute.Int("tags.count", selection.Len())))
	defer span.End()

	log := logger.Log(ctx).With(zap.String("method", "Submit"))

	accountID, err := o.createAccount(ctx, snapshot.AccountFields())
	if err != nil {
		log.Warn(ctx, msgAccountCreationFailed, zap.Error(err))
		span.SetStatus(codes.Error, msgAccountCreationFailed)
		return entities.SubmissionResult{
			Status: entities.SubmissionAccountCreationFailed,
			Err:    &entities.AccountCreationError{Reason: err.Error(), Err: err},
		}
	}

	log.Info(ctx, msgAccountCreated, zap.String("accountID", accountID))
	span.SetAttributes(attribute.String("account.id", accountID))

	result := o.assignAll(ctx, accountID, selection.IDs())
	if result.Status != entities.SubmissionSuccess {
		span.SetStatus(codes.Error, result.Status.String())
	}
	return result
}

// Resume назначает теги уже созданной учетной записи.
func (o *Orchestrator) Resume(ctx context.Context, accountID string, selection entities.SelectedTagSet) entities.SubmissionResult {
	ctx, span := o.tracer.Start(ctx, spanResume, trace.WithAttributes(
		attribute.String("account.id", accountID),
		attribute.Int("tags.count", selection.Len()),
	))
	defer span.End()

	result := o.assignAll(ctx, accountID, selection.IDs())
	if result.Status != entities.SubmissionSuccess {
		span.SetStatus(codes.Error, result.Status.String())
	}
	return result
}

func (o *Orchestrator) createAccount(ctx context.Context, fields entities.AccountFields) (string, error) {
	ctx, span := o.tracer.Start(ctx, spanCreate)
	defer span.End()

	id, err := o.accounts.Create(ctx, fields)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return id, nil
}

type assignOutcome struct {
	tagID string
	err   error
}

func (o *Orchestrator) assignAll(ctx context.Context, accountID string, tagIDs []string) entities.SubmissionResult {
	log := logger.Log(ctx).With(zap.String("accountID", accountID))

	p := pool.NewWithResults[assignOutcome]().WithMaxGoroutines(o.maxConcurrency)
	for _, tagID := range tagIDs {
		p.Go(func() assignOutcome {
			return assignOutcome{tagID: tagID, err: o.assign(ctx, accountID, tagID)}
		})
	}
	outcomes := p.Wait()

	slices.SortFunc(outcomes, func(a, b assignOutcome) int {
		switch {
		case a.tagID < b.tagID:
			return -1
		case a.tagID > b.tagID:
			return 1
		default:
			return 0
		}
	})

	succeeded := make([]string, 0, len(outcomes))
	var failed []*entities.TagAssignmentError
	for _, out := range outcomes {
		if out.err == nil {
			succeeded = append(succeeded, out.tagID)
			continue
		}
		log.Warn(ctx, msgTagAssignmentFailed, zap.String("tagID", out.tagID), zap.Error(out.err))
		failed = append(failed, &entities.TagAssignmentError{TagID: out.tagID, Reason: out.err.Error(), Err: out.err})
	}

	log.Info(ctx, msgSubmissionAggregated, zap.Int("succeeded", len(succeeded)), zap.Int("failed", len(failed)))

	if len(failed) == 0 {
		return entities.SubmissionResult{
			Status:    entities.SubmissionSuccess,
			AccountID: accountID,
			Succeeded: succeeded,
		}
	}

	partial := &entities.PartialFailureError{AccountID: accountID, Succeeded: succeeded, Failed: failed}
	return entities.SubmissionResult{
		Status:    entities.SubmissionPartialFailure,
		AccountID: accountID,
		Succeeded: succeeded,
		Failed:    partial.FailedIDs(),
		Err:       partial,
	}
}

func (o *Orchestrator) assign(ctx context.Context, accountID, tagID string) error {
	ctx, span := o.tracer.Start(ctx, spanAssign, trace.WithAttributes(attribute.String("tag.id", tagID)))
	defer span.End()

	if err := o.tags.Assign(ctx, accountID, tagID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
