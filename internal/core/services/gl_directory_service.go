package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/SscSPs/coa_ledger_engine/internal/core/catalog"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/coa_ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coa_ledger_engine/internal/core/ports/services"
)

type glDirectoryService struct {
	BaseService
	glRepo portsrepo.GLAccountReader
}

// NewGLAccountDirectory creates the service that checks GL accounts against slot rules.
func NewGLAccountDirectory(glRepo portsrepo.GLAccountReader) portssvc.GLAccountDirectorySvc {
	return &glDirectoryService{glRepo: glRepo}
}

var _ portssvc.GLAccountDirectorySvc = (*glDirectoryService)(nil)

func (s *glDirectoryService) ResolveForSlot(ctx context.Context, parameter string, accountID int64, slot catalog.SlotDefinition) (*domain.GLAccount, error) {
	account, err := s.glRepo.FindGLAccountByID(ctx, accountID)
	if err != nil {
		s.LogDebug(ctx, "GL account lookup failed", slog.String("parameter", parameter), slog.Int64("gl_account_id", accountID))
		return nil, err
	}

	if !slot.Allows(account.AccountType) {
		err := &apperrors.InvalidAccountCategoryError{
			Parameter:   parameter,
			AccountID:   account.ID,
			AccountName: account.Name,
			Actual:      string(account.AccountType),
			Expected:    slot.AllowedNames(),
		}
		s.LogWarn(ctx, "GL account category not allowed for slot",
			slog.String("slot", slot.Name),
			slog.Int64("gl_account_id", account.ID),
			slog.String("actual", string(account.AccountType)))
		return nil, err
	}
	if account.Disabled {
		return nil, fmt.Errorf("%w: GL account %d (%s) is disabled", apperrors.ErrValidation, account.ID, account.Name)
	}
	if account.Usage == domain.HeaderUsage {
		return nil, fmt.Errorf("%w: GL account %d (%s) is a header account and cannot be bound to %s", apperrors.ErrValidation, account.ID, account.Name, slot.Name)
	}
	return account, nil
}
