// Package app содержит сценарии использования сервиса учетных записей.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"signupflow/internal/accounts/domain/entities"
	"signupflow/internal/accounts/ports/api"
	"signupflow/internal/accounts/ports/repositories"
	svc "signupflow/internal/accounts/ports/services"
	"signupflow/pkg/logger"
)

const (
	methodRegister   = "Register"
	methodGetAccount = "GetAccount"

	msgStartRegistration = "starting account registration"
	msgInvalidInput      = "invalid registration input"
	msgEmailExists       = "account with this email already exists"
	msgAccountRegistered = "account registered successfully"
	msgErrCheckExisting  = "failed to check existing account"
	msgErrHashPassword   = "failed to hash password"
	msgErrCreateAccount  = "failed to create account"
	msgErrFindingAccount = "failed to find account"

	errCtxValidating    = "validating account"
	errCtxCheckingEmail = "checking existing account"
	errCtxHashing       = "hashing password"
	errCtxCreating      = "creating account"
	errCtxFinding       = "finding account"
)

// AccountUseCaseImpl реализует api.AccountUseCase.
type AccountUseCaseImpl struct {
	accountRepo repositories.AccountRepository
	passwordSvc svc.PasswordService
}

// NewAccountUseCase создает сценарий регистрации.
func NewAccountUseCase(accountRepo repositories.AccountRepository, passwordSvc svc.PasswordService) api.AccountUseCase {
	return &AccountUseCaseImpl{
		accountRepo: accountRepo,
		passwordSvc: passwordSvc,
	}
}

// Register проверяет данные, хэширует пароль и создает учетную запись.
func (a *AccountUseCaseImpl) Register(ctx context.Context, in *entities.NewAccount) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", in.Email))
	log.Debug(ctx, msgStartRegistration)

	if err := in.Validate(); err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	existing, err := a.accountRepo.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, entities.ErrAccountNotFound) {
		log.Error(ctx, msgErrCheckExisting, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
	}
	if existing != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, entities.ErrEmailAlreadyExists)
	}

	hash, err := a.passwordSvc.Hash(ctx, in.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashing, err)
	}

	born, _ := in.BirthDate()
	created, err := a.accountRepo.Create(ctx, &entities.Account{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Gender:       strings.TrimSpace(in.Gender),
		DateOfBirth:  born,
	})
	if err != nil {
		log.Error(ctx, msgErrCreateAccount, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreating, err)
	}

	log.Info(ctx, msgAccountRegistered, zap.String("accountID", created.ID))
	return created, nil
}

// GetAccount возвращает учетную запись по id.
func (a *AccountUseCaseImpl) GetAccount(ctx context.Context, id string) (*entities.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entities.ErrAccountNotFound
	}

	account, err := a.accountRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, entities.ErrAccountNotFound) {
			logger.Log(ctx).Error(ctx, msgErrFindingAccount, zap.String("method", methodGetAccount), zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFinding, err)
	}
	return account, nil
}
