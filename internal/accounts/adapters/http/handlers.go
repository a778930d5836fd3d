package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"signupflow/internal/accounts/domain/entities"
	"signupflow/internal/accounts/ports/api"
	"signupflow/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerSignup       = "accounts handler: signup"
	LogHandlerListTags     = "accounts handler: list tags"
	LogHandlerCreateTag    = "accounts handler: create tag"
	LogHandlerGetTag       = "accounts handler: get tag"
	LogHandlerUpdateTag    = "accounts handler: update tag"
	LogHandlerDeleteTag    = "accounts handler: delete tag"
	LogHandlerAssignTag    = "accounts handler: assign tag"
	LogHandlerUnassignTag  = "accounts handler: unassign tag"
	LogHandlerListUserTags = "accounts handler: list user tags"

	ErrorInvalidRequest     = "invalid request"
	ErrorFailedServeRequest = "failed to serve request"

	MessageTagDeleted = "Tag deleted successfully"
)

// Handler содержит HTTP обработчики сервиса учетных записей.
type Handler struct {
	accounts api.AccountUseCase
	tags     api.TagUseCase
}

// NewHandler создает обработчики.
func NewHandler(accounts api.AccountUseCase, tags api.TagUseCase) *Handler {
	return &Handler{accounts: accounts, tags: tags}
}

func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{"error": message}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// statusFor переводит доменную ошибку в HTTP статус.
func statusFor(err error) int {
	switch {
	case entities.IsValidationError(err):
		return fiber.StatusBadRequest
	case errors.Is(err, entities.ErrEmailAlreadyExists), errors.Is(err, entities.ErrTagAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, entities.ErrAccountNotFound), errors.Is(err, entities.ErrTagNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(ctx fiber.Ctx, msg string, err error) error {
	status := statusFor(err)
	requestCtx := ctx.Context()
	if status == fiber.StatusInternalServerError {
		logger.Log(requestCtx).Error(requestCtx, msg, zap.Error(err))
		return sendErrorResponse(ctx, status, ErrorFailedServeRequest)
	}
	logger.Log(requestCtx).Debug(requestCtx, msg, zap.Error(err))
	return sendErrorResponse(ctx, status, err.Error())
}

// Signup регистрирует пользователя.
func (h *Handler) Signup(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerSignup)

	var req SignupRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	account, err := h.accounts.Register(requestCtx, &entities.NewAccount{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		return h.fail(ctx, LogHandlerSignup, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(toAccountResponse(account))
}

// ListTags возвращает страницу каталога тегов.
func (h *Handler) ListTags(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListTags)

	skip, skipErr := queryInt(ctx, "skip")
	limit, limitErr := queryInt(ctx, "limit")
	if skipErr != nil || limitErr != nil {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, entities.ErrInvalidPage.Error())
	}

	page, err := h.tags.ListTags(requestCtx, skip, limit)
	if err != nil {
		return h.fail(ctx, LogHandlerListTags, err)
	}

	return ctx.JSON(TagsResponse{Data: toTagResponses(page.Tags), Count: page.Count})
}

// CreateTag добавляет тег в каталог.
func (h *Handler) CreateTag(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerCreateTag)

	var req TagRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	tag, err := h.tags.CreateTag(requestCtx, req.Name)
	if err != nil {
		return h.fail(ctx, LogHandlerCreateTag, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(TagResponse{ID: tag.ID, Name: tag.Name})
}

// GetTag возвращает тег по id.
func (h *Handler) GetTag(ctx fiber.Ctx) error {
	tag, err := h.tags.GetTag(ctx.Context(), ctx.Params("tag_id"))
	if err != nil {
		return h.fail(ctx, LogHandlerGetTag, err)
	}

	return ctx.JSON(TagResponse{ID: tag.ID, Name: tag.Name})
}

// UpdateTag переименовывает тег.
func (h *Handler) UpdateTag(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerUpdateTag)

	var req TagRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	tag, err := h.tags.UpdateTag(requestCtx, ctx.Params("tag_id"), req.Name)
	if err != nil {
		return h.fail(ctx, LogHandlerUpdateTag, err)
	}

	return ctx.JSON(TagResponse{ID: tag.ID, Name: tag.Name})
}

// DeleteTag удаляет тег из каталога.
func (h *Handler) DeleteTag(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerDeleteTag)

	if err := h.tags.DeleteTag(requestCtx, ctx.Params("tag_id")); err != nil {
		return h.fail(ctx, LogHandlerDeleteTag, err)
	}

	return ctx.JSON(MessageResponse{Message: MessageTagDeleted})
}

// ListUserTags возвращает теги пользователя.
func (h *Handler) ListUserTags(ctx fiber.Ctx) error {
	tags, err := h.tags.ListAccountTags(ctx.Context(), ctx.Params("user_id"))
	if err != nil {
		return h.fail(ctx, LogHandlerListUserTags, err)
	}

	return ctx.JSON(toTagResponses(tags))
}

// AssignTag привязывает тег к пользователю.
func (h *Handler) AssignTag(ctx fiber.Ctx) error {
	if err := h.tags.AssignTag(ctx.Context(), ctx.Params("user_id"), ctx.Params("tag_id")); err != nil {
		return h.fail(ctx, LogHandlerAssignTag, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// UnassignTag отвязывает тег от пользователя.
func (h *Handler) UnassignTag(ctx fiber.Ctx) error {
	if err := h.tags.UnassignTag(ctx.Context(), ctx.Params("user_id"), ctx.Params("tag_id")); err != nil {
		return h.fail(ctx, LogHandlerUnassignTag, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func queryInt(ctx fiber.Ctx, key string) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
