package resilience

import (
	"context"

	"go.uber.org/zap"

	"signupflow/pkg/logger"
)

// ServiceResilience объединяет Circuit Breaker и повторы для одного внешнего сервиса.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает обертку отказоустойчивости для сервиса.
func NewServiceResilience(serviceName string, cb CircuitBreakerConfig, retry RetryConfig) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, cb),
		retry:          NewRetry(serviceName, retry),
	}
}

// Execute выполняет операцию: каждая попытка проходит через Circuit Breaker.
func (r *ServiceResilience) Execute(ctx context.Context, operationName string, operation func(ctx context.Context) error) error {
	logger.Log(ctx).Debug(ctx, "executing operation with resilience",
		zap.String("service", r.serviceName),
		zap.String("operation", operationName))

	return r.retry.Execute(ctx, func() error {
		return r.circuitBreaker.Execute(ctx, func() error {
			return operation(ctx)
		})
	})
}

// State возвращает состояние Circuit Breaker сервиса.
func (r *ServiceResilience) State() CircuitState {
	return r.circuitBreaker.State()
}

// Do выполняет операцию с результатом.
func Do[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := r.Execute(ctx, operationName, func(ctx context.Context) error {
		var opErr error
		result, opErr = operation(ctx)
		return opErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
