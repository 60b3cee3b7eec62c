package account

import (
	"context"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/usecase"
	"github.com/google/uuid"
)

// AccountUseCase implements account operations
type AccountUseCase struct {
	uow          persistence.UnitOfWork
	users        persistence.UserRepository
	accounts     persistence.AccountRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.AccountUseCase = (*AccountUseCase)(nil)

// NewAccountUseCase creates a new AccountUseCase
func NewAccountUseCase(
	uow persistence.UnitOfWork,
	users persistence.UserRepository,
	accounts persistence.AccountRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *AccountUseCase {
	return &AccountUseCase{
		uow:          uow,
		users:        users,
		accounts:     accounts,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetAccount returns the caller's account with owner details
func (u *AccountUseCase) GetAccount(ctx context.Context, userID uuid.UUID) (*entity.AccountDetails, error) {
	details, err := u.accounts.GetDetailsByOwner(ctx, userID)
	if err != nil {
		if !errs.IsNotFoundError(err) {
			u.logger.Error("Failed to load account", map[string]any{
				"user_id": userID.String(),
				"error":   err.Error(),
			})
		}
		return nil, err
	}

	return details, nil
}

// OpenAccount registers the owner and an empty account in one unit of work
func (u *AccountUseCase) OpenAccount(ctx context.Context, request entity.OpenAccountRequest) (*entity.Account, error) {
	accountType, err := entity.ParseAccountType(request.AccountType)
	if err != nil {
		return nil, err
	}

	user, err := entity.NewUser(request.UserID, request.Name, request.Email, u.timeProvider)
	if err != nil {
		return nil, err
	}

	account, err := entity.NewAccount(user.ID, request.AccountNumber, accountType, user.Name, u.timeProvider)
	if err != nil {
		return nil, err
	}

	txCtx, err := u.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := u.uow.Rollback(txCtx); rbErr != nil {
			u.logger.Error("Failed to roll back unit of work", map[string]any{
				"user_id": request.UserID.String(),
				"error":   rbErr.Error(),
			})
		}
	}()

	if err := u.users.Create(txCtx, user); err != nil {
		return nil, err
	}
	if err := u.accounts.Create(txCtx, account); err != nil {
		return nil, err
	}

	committed = true
	if err := u.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	u.logger.Info("Account opened", map[string]any{
		"user_id":        user.ID.String(),
		"account_number": account.AccountNumber,
		"account_type":   string(account.AccountType),
	})

	return account, nil
}

// UserExists reports whether a user with the given id is registered
func (u *AccountUseCase) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	_, err := u.users.GetByID(ctx, userID)
	if err == nil {
		return true, nil
	}
	if errs.IsNotFoundError(err) {
		return false, nil
	}
	return false, err
}
