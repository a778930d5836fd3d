package wizard

import (
	"context"

	"go.uber.org/zap"

	"signupflow/internal/signup/domain/entities"
	"signupflow/internal/signup/ports/services"
	"signupflow/pkg/logger"
)

const (
	msgCatalogFetchFailed = "tag catalog fetch failed"
	msgSubmissionFinished = "submission finished"
)

// Submitter отправляет заполненную форму.
type Submitter interface {
	Submit(ctx context.Context, snapshot entities.FormSnapshot, selection entities.SelectedTagSet) entities.SubmissionResult

	Resume(ctx context.Context, accountID string, selection entities.SelectedTagSet) entities.SubmissionResult
}

// Controller выполняет эффекты переходов против внешних сервисов.
type Controller struct {
	catalog   services.TagCatalogService
	submitter Submitter
}

// NewController создает контроллер мастера.
func NewController(catalog services.TagCatalogService, submitter Submitter) *Controller {
	return &Controller{catalog: catalog, submitter: submitter}
}

// Run выполняет эффект и возвращает итоговое состояние.
func (c *Controller) Run(ctx context.Context, s entities.WizardState, effect Effect) entities.WizardState {
	switch effect {
	case EffectFetchCatalog:
		entries, err := c.catalog.List(ctx)
		if err != nil {
			logger.Log(ctx).Warn(ctx, msgCatalogFetchFailed, zap.Error(err))
		}
		return ApplyCatalog(s, entries, err)

	case EffectSubmit:
		var result entities.SubmissionResult
		if s.AccountID != "" {
			result = c.submitter.Resume(ctx, s.AccountID, PendingTags(s))
		} else {
			result = c.submitter.Submit(ctx, s.Snapshot, s.Selection)
		}

		logger.Log(ctx).Info(ctx, msgSubmissionFinished,
			zap.String("status", result.Status.String()),
			zap.String("accountID", result.AccountID))
		return ApplySubmission(s, result)

	default:
		return s
	}
}
