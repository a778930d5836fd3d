// Package http содержит REST API мастера регистрации.
package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"signupflow/internal/signup/app/dto"
	"signupflow/internal/signup/app/wizard"
	"signupflow/internal/signup/domain/entities"
	"signupflow/internal/signup/ports/api"
	"signupflow/internal/signup/ports/sessions"
	"signupflow/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerStart        = "signup handler: start"
	LogHandlerGet          = "signup handler: get"
	LogHandlerUpdateFields = "signup handler: update fields"
	LogHandlerNext         = "signup handler: next"
	LogHandlerBack         = "signup handler: back"
	LogHandlerToggleTag    = "signup handler: toggle tag"
	LogHandlerDelete       = "signup handler: delete"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
	ErrorInternal             = "internal server error"

	paramSessionID = "session_id"
	paramTagID     = "tag_id"
)

func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{"error": message}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, wizard.ErrSubmissionInProgress),
		errors.Is(err, wizard.ErrWizardFinished),
		errors.Is(err, wizard.ErrAccountCreated),
		errors.Is(err, wizard.ErrTagsStepInactive):
		return fiber.StatusConflict
	case errors.Is(err, wizard.ErrUnknownTag),
		errors.Is(err, entities.ErrUnknownField):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// Handler содержит обработчики мастера регистрации.
type Handler struct {
	wizard api.WizardService
}

// NewHandler создает обработчики.
func NewHandler(wizard api.WizardService) *Handler {
	return &Handler{wizard: wizard}
}

func (h *Handler) fail(ctx fiber.Ctx, op string, err error) error {
	requestCtx := ctx.Context()
	status := statusFor(err)

	if status == fiber.StatusInternalServerError {
		logger.Log(requestCtx).Error(requestCtx, ErrorFailedToServeRequest, zap.String("handler", op), zap.Error(err))
		return sendErrorResponse(ctx, status, ErrorInternal)
	}

	logger.Log(requestCtx).Debug(requestCtx, ErrorFailedToServeRequest, zap.String("handler", op), zap.Error(err))
	return sendErrorResponse(ctx, status, err.Error())
}

// Start создает сессию мастера.
func (h *Handler) Start(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerStart)

	id, state, err := h.wizard.Start(requestCtx)
	if err != nil {
		return h.fail(ctx, LogHandlerStart, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.SessionResponse{
		SessionID: id,
		State:     dto.FromState(state),
	})
}

// Get возвращает состояние сессии.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGet)

	state, err := h.wizard.Get(requestCtx, ctx.Params(paramSessionID))
	if err != nil {
		return h.fail(ctx, LogHandlerGet, err)
	}
	return ctx.JSON(dto.FromState(state))
}

// UpdateFields записывает значения полей формы.
func (h *Handler) UpdateFields(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerUpdateFields)

	var req dto.UpdateFieldsRequest
	if err := ctx.Bind().JSON(&req); err != nil || len(req.Fields) == 0 {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	state, err := h.wizard.UpdateFields(requestCtx, ctx.Params(paramSessionID), req.Fields)
	if err != nil {
		return h.fail(ctx, LogHandlerUpdateFields, err)
	}
	return ctx.JSON(dto.FromState(state))
}

// Next переводит мастер на следующий шаг.
// Если отправка запущена, отвечает 202 и состоянием submitting.
func (h *Handler) Next(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerNext)

	state, err := h.wizard.Next(requestCtx, ctx.Params(paramSessionID))
	if err != nil {
		return h.fail(ctx, LogHandlerNext, err)
	}

	if state.Step == entities.StepSubmitting {
		return ctx.Status(fiber.StatusAccepted).JSON(dto.FromState(state))
	}
	return ctx.JSON(dto.FromState(state))
}

// Back возвращает мастер на предыдущий шаг.
func (h *Handler) Back(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerBack)

	state, err := h.wizard.Back(requestCtx, ctx.Params(paramSessionID))
	if err != nil {
		return h.fail(ctx, LogHandlerBack, err)
	}
	return ctx.JSON(dto.FromState(state))
}

// ToggleTag выбирает или снимает тег.
func (h *Handler) ToggleTag(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerToggleTag)

	state, err := h.wizard.ToggleTag(requestCtx, ctx.Params(paramSessionID), ctx.Params(paramTagID))
	if err != nil {
		return h.fail(ctx, LogHandlerToggleTag, err)
	}
	return ctx.JSON(dto.FromState(state))
}

// Delete удаляет сессию.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerDelete)

	if err := h.wizard.Delete(requestCtx, ctx.Params(paramSessionID)); err != nil {
		return h.fail(ctx, LogHandlerDelete, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
