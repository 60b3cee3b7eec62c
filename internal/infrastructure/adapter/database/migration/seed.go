package migration

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpeningDepositDescription labels the deposit that funds a seeded account
const OpeningDepositDescription = "Opening deposit"

// AccountOpener registers owners and their accounts
type AccountOpener interface {
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
	OpenAccount(ctx context.Context, request entity.OpenAccountRequest) (*entity.Account, error)
}

// Seeder creates the configured demo users. Users that already exist are not
// opened again, and an account is funded only while it has no ledger history,
// so seeding is safe to repeat on every start.
type Seeder struct {
	accounts     AccountOpener
	transactions usecase.TransactionUseCase
	logger       coreport.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(accounts AccountOpener, transactions usecase.TransactionUseCase, logger coreport.Logger) *Seeder {
	return &Seeder{
		accounts:     accounts,
		transactions: transactions,
		logger:       logger,
	}
}

// SeedUsers opens an account for every configured user and funds it through a regular deposit
func (s *Seeder) SeedUsers(ctx context.Context, users []config.SeedUser) error {
	for _, seed := range users {
		userID, err := uuid.Parse(seed.ID)
		if err != nil {
			return fmt.Errorf("seed user %s: invalid id: %w", seed.Email, err)
		}

		openingBalance, err := entity.ParseCents(orZero(seed.OpeningBalance))
		if err != nil {
			return fmt.Errorf("seed user %s: invalid opening balance %q: %w", seed.Email, seed.OpeningBalance, err)
		}

		exists, err := s.accounts.UserExists(ctx, userID)
		if err != nil {
			return err
		}

		if exists {
			// A previous start may have opened the account and failed before the deposit committed.
			funded := openingBalance == 0
			if !funded {
				if funded, err = s.hasHistory(ctx, userID); err != nil {
					return fmt.Errorf("seed user %s: %w", seed.Email, err)
				}
			}
			if funded {
				s.logger.Debug("Seed user already exists", map[string]any{"user_id": userID.String()})
				continue
			}
		} else {
			if _, err := s.accounts.OpenAccount(ctx, entity.OpenAccountRequest{
				UserID:        userID,
				Name:          seed.Name,
				Email:         seed.Email,
				AccountNumber: seed.AccountNumber,
				AccountType:   seed.AccountType,
			}); err != nil {
				return fmt.Errorf("seed user %s: %w", seed.Email, err)
			}
		}

		if err := s.fund(ctx, userID, openingBalance); err != nil {
			return fmt.Errorf("seed user %s: %w", seed.Email, err)
		}

		s.logger.Info("Seeded demo account", map[string]any{
			"user_id":         userID.String(),
			"account_number":  seed.AccountNumber,
			"opening_balance": openingBalance.String(),
		})
	}

	return nil
}

func (s *Seeder) hasHistory(ctx context.Context, userID uuid.UUID) (bool, error) {
	page, err := s.transactions.History(ctx, userID, 1, 1)
	if err != nil {
		return false, err
	}
	return page.Pagination.TotalItems > 0, nil
}

func (s *Seeder) fund(ctx context.Context, userID uuid.UUID, openingBalance entity.Cents) error {
	if openingBalance == 0 {
		return nil
	}

	_, err := s.transactions.Submit(ctx, userID, entity.TransactionRequest{
		Amount:      decimal.NewNullDecimal(openingBalance.Decimal()),
		Description: OpeningDepositDescription,
		Type:        string(entity.KindDeposit),
	})
	return err
}

func orZero(amount string) string {
	if strings.TrimSpace(amount) == "" {
		return "0"
	}
	return amount
}
