// Package api определяет операции мастера, доступные транспортному слою.
package api

import (
	"context"

	"signupflow/internal/signup/domain/entities"
)

// WizardService управляет сессиями мастера регистрации.
type WizardService interface {
	Start(ctx context.Context) (string, entities.WizardState, error)
	Get(ctx context.Context, id string) (entities.WizardState, error)
	UpdateFields(ctx context.Context, id string, fields map[string]string) (entities.WizardState, error)
	Next(ctx context.Context, id string) (entities.WizardState, error)
	Back(ctx context.Context, id string) (entities.WizardState, error)
	ToggleTag(ctx context.Context, id, tagID string) (entities.WizardState, error)
	Delete(ctx context.Context, id string) error
}
