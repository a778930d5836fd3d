// Package health проверяет готовность сервиса учетных записей через gRPC health-check.
package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"signupflow/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodCheck = "Check"

	ErrorFailedToConnect = "failed to create accounts health client"
	ErrorCheckFailed     = "accounts health check failed"
	ErrorFailedToClose   = "failed to close accounts health connection"
)

// ErrNotServing - сервис учетных записей отвечает, но не готов.
var ErrNotServing = errors.New("accounts service is not serving")

// Client опрашивает grpc.health.v1 сервиса учетных записей.
type Client struct {
	conn    *grpc.ClientConn
	health  healthpb.HealthClient
	service string
	timeout time.Duration
}

// NewClient создает клиент. Соединение устанавливается при первой проверке.
func NewClient(address, service string, timeout time.Duration) (*Client, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	return &Client{
		conn:    conn,
		health:  healthpb.NewHealthClient(conn),
		service: service,
		timeout: timeout,
	}, nil
}

// Check возвращает nil, если сервис в состоянии SERVING.
func (c *Client) Check(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodCheck))

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: c.service})
	if err != nil {
		log.Warn(ctx, ErrorCheckFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorCheckFailed, err)
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", ErrNotServing, resp.GetStatus())
	}
	return nil
}

// Close закрывает соединение.
func (c *Client) Close() error {
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
