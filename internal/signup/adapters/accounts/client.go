// Package accounts - клиент REST API сервиса учетных записей.
// Реализует AccountService, TagCatalogService и TagAssignmentService.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3/client"
	"go.uber.org/zap"

	"signupflow/internal/signup/domain/entities"
	"signupflow/internal/signup/resilience"
	"signupflow/pkg/logger"
)

const (
	pathSignup    = "/api/v1/users/signup"
	pathTags      = "/api/v1/tags"
	pathAssignTag = "/api/v1/users/%s/tags/%s"

	catalogPageSize = 100

	opCreate = "create_account"
	opList   = "list_tags"
	opAssign = "assign_tag"

	msgRequestFailed = "accounts request failed"
)

// ErrUnexpectedResponse - сервис ответил некорректными данными.
var ErrUnexpectedResponse = errors.New("unexpected response from accounts service")

// StatusError - ответ сервиса с кодом ошибки.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("accounts service responded with status %d", e.Status)
	}
	return e.Message
}

// Client обращается к сервису учетных записей.
type Client struct {
	http     *client.Client
	accounts *resilience.ServiceResilience
	tags     *resilience.ServiceResilience
}

// NewClient создает клиент. Создание учетной записи и операции с тегами
// проходят через отдельные обертки отказоустойчивости.
func NewClient(baseURL string, timeout time.Duration, accounts, tags *resilience.ServiceResilience) *Client {
	httpClient := client.New().SetBaseURL(baseURL)
	if timeout > 0 {
		httpClient.SetTimeout(timeout)
	}
	return &Client{http: httpClient, accounts: accounts, tags: tags}
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
}

type accountResponse struct {
	ID string `json:"id"`
}

type tagsResponse struct {
	Data  []entities.TagCatalogEntry `json:"data"`
	Count int                        `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Create регистрирует учетную запись и возвращает ее идентификатор.
func (c *Client) Create(ctx context.Context, fields entities.AccountFields) (string, error) {
	body := signupRequest{
		Email:       fields.Email,
		Password:    fields.Password,
		FirstName:   fields.FirstName,
		LastName:    fields.LastName,
		Gender:      fields.Gender,
		DateOfBirth: fields.DateOfBirth,
	}

	return resilience.Do(ctx, c.accounts, opCreate, func(ctx context.Context) (string, error) {
		resp, err := c.http.Post(pathSignup, client.Config{Ctx: ctx, Body: body})
		if err != nil {
			return "", c.transportError(ctx, opCreate, err)
		}
		defer resp.Close()

		if err := checkStatus(resp); err != nil {
			return "", err
		}

		var out accountResponse
		if err := resp.JSON(&out); err != nil || out.ID == "" {
			return "", resilience.Permanent(ErrUnexpectedResponse)
		}
		return out.ID, nil
	})
}

// List загружает весь каталог тегов постранично.
func (c *Client) List(ctx context.Context) ([]entities.TagCatalogEntry, error) {
	entries := make([]entities.TagCatalogEntry, 0, catalogPageSize)

	for skip := 0; ; skip += catalogPageSize {
		page, err := resilience.Do(ctx, c.tags, opList, func(ctx context.Context) (tagsResponse, error) {
			return c.listPage(ctx, skip)
		})
		if err != nil {
			return nil, err
		}

		entries = append(entries, page.Data...)
		if len(page.Data) < catalogPageSize || len(entries) >= page.Count {
			return entries, nil
		}
	}
}

func (c *Client) listPage(ctx context.Context, skip int) (tagsResponse, error) {
	resp, err := c.http.Get(pathTags, client.Config{
		Ctx: ctx,
		Param: map[string]string{
			"skip":  strconv.Itoa(skip),
			"limit": strconv.Itoa(catalogPageSize),
		},
	})
	if err != nil {
		return tagsResponse{}, c.transportError(ctx, opList, err)
	}
	defer resp.Close()

	if err := checkStatus(resp); err != nil {
		return tagsResponse{}, err
	}

	var page tagsResponse
	if err := resp.JSON(&page); err != nil {
		return tagsResponse{}, resilience.Permanent(fmt.Errorf("%w: %w", ErrUnexpectedResponse, err))
	}
	return page, nil
}

// Assign назначает тег учетной записи.
func (c *Client) Assign(ctx context.Context, accountID, tagID string) error {
	path := fmt.Sprintf(pathAssignTag, url.PathEscape(accountID), url.PathEscape(tagID))

	return c.tags.Execute(ctx, opAssign, func(ctx context.Context) error {
		resp, err := c.http.Post(path, client.Config{Ctx: ctx})
		if err != nil {
			return c.transportError(ctx, opAssign, err)
		}
		defer resp.Close()

		return checkStatus(resp)
	})
}

func (c *Client) transportError(ctx context.Context, op string, err error) error {
	logger.Log(ctx).Warn(ctx, msgRequestFailed, zap.String("operation", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}

// checkStatus превращает ответ с ошибкой в StatusError.
// Ошибки клиента (4xx) помечаются как постоянные.
func checkStatus(resp *client.Response) error {
	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		return nil
	}

	var body errorResponse
	_ = resp.JSON(&body)
	err := &StatusError{Status: status, Message: body.Error}

	if status >= 400 && status < 500 {
		return resilience.Permanent(err)
	}
	return err
}
