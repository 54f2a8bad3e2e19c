package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/coa_ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coa_ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/coa_ledger_engine/internal/dto"
	"github.com/SscSPs/coa_ledger_engine/internal/utils/accounting"
)

// cashierTransactionEntity tags journal legs produced from a cashier transaction.
const cashierTransactionEntity = "CASHIER_TRANSACTION"

// amountScale is the number of fractional digits the NUMERIC(19,6) amount columns keep.
const amountScale = 6

// tellerLedgerService posts cash-drawer events and serves their history.
type tellerLedgerService struct {
	BaseService
	txManager     portsrepo.TransactionManager
	cashierRepo   portsrepo.CashierRepositoryFacade
	journalRepo   portsrepo.JournalRepositoryFacade
	referenceRepo portsrepo.ReferenceDataReader
	glAccountRepo portsrepo.GLAccountReader
	now           func() time.Time
}

// TellerOption is a functional option for configuring the teller ledger service
type TellerOption func(*tellerLedgerService)

// WithClock overrides the clock used for entry dates and audit timestamps.
func WithClock(now func() time.Time) TellerOption {
	return func(s *tellerLedgerService) {
		s.now = now
	}
}

// NewTellerLedgerService creates a new TellerLedgerSvcFacade.
func NewTellerLedgerService(
	txManager portsrepo.TransactionManager,
	cashierRepo portsrepo.CashierRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	referenceRepo portsrepo.ReferenceDataReader,
	glAccountRepo portsrepo.GLAccountReader,
	options ...TellerOption,
) portssvc.TellerLedgerSvcFacade {
	svc := &tellerLedgerService{
		txManager:     txManager,
		cashierRepo:   cashierRepo,
		journalRepo:   journalRepo,
		referenceRepo: referenceRepo,
		glAccountRepo: glAccountRepo,
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TellerLedgerSvcFacade = (*tellerLedgerService)(nil)

// PostCashierEvent records a cash-drawer event. ALLOCATE moves cash from the main vault to
// the teller (debit teller, credit vault) and SETTLE returns it; both post a balanced pair.
// Every lookup happens before the first write, so a failure leaves nothing behind.
func (s *tellerLedgerService) PostCashierEvent(ctx context.Context, req dto.PostCashierEventRequest, userID string) (*dto.CashierPostingResult, error) {
	logger := s.GetLogger(ctx).With(
		slog.Int64("cashier_id", req.CashierID),
		slog.String("txn_type", string(req.Type)),
	)

	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown cashier transaction type %q", apperrors.ErrValidation, req.Type)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
	}
	if req.Amount.Exponent() < -amountScale && !req.Amount.Equal(req.Amount.Truncate(amountScale)) {
		return nil, fmt.Errorf("%w: transaction amount has more than %d decimal places", apperrors.ErrValidation, amountScale)
	}
	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency code must have three letters", apperrors.ErrValidation)
	}

	cashier, err := s.cashierRepo.FindCashierByID(ctx, req.CashierID)
	if err != nil {
		logger.Warn("Cashier lookup failed", slog.String("error", err.Error()))
		return nil, err
	}
	if !cashier.IsActive {
		return nil, fmt.Errorf("%w: cashier %d is not active", apperrors.ErrValidation, cashier.ID)
	}

	now := s.now().UTC()
	txnDate := now
	if req.TxnDate != nil {
		txnDate = req.TxnDate.UTC()
	}

	txn := domain.CashierTransaction{
		CashierID:    cashier.ID,
		Type:         req.Type,
		Amount:       req.Amount,
		CurrencyCode: currency,
		TxnDate:      txnDate,
		Note:         req.Note,
		OfficeID:     cashier.OfficeID,
		AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: userID},
	}

	var entries []domain.JournalEntry
	if req.Type.PostsJournal() {
		entries, err = s.buildCashierPair(ctx, txn)
		if err != nil {
			logger.Error("Cannot build journal pair for cashier event", slog.String("error", err.Error()))
			return nil, err
		}
	}

	result := &dto.CashierPostingResult{JournalEntryIDs: []int64{}}
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		saved, err := s.cashierRepo.SaveCashierTransaction(ctx, txn)
		if err != nil {
			return err
		}
		result.CashierTransactionID = saved.ID
		if len(entries) == 0 {
			return nil
		}

		for i := range entries {
			entries[i].EntityID = &saved.ID
		}
		ids, err := s.journalRepo.SaveJournalEntries(ctx, entries)
		if err != nil {
			return err
		}
		result.TransactionID = entries[0].TransactionID
		result.JournalEntryIDs = ids
		return nil
	})
	if err != nil {
		logger.Error("Failed to post cashier event", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Cashier event posted",
		slog.Int64("cashier_transaction_id", result.CashierTransactionID),
		slog.String("transaction_id", result.TransactionID))
	return result, nil
}

// buildCashierPair resolves both financial-activity accounts and returns the validated debit/credit legs.
func (s *tellerLedgerService) buildCashierPair(ctx context.Context, txn domain.CashierTransaction) ([]domain.JournalEntry, error) {
	vault, err := s.activityAccount(ctx, domain.CashAtMainVault)
	if err != nil {
		return nil, err
	}
	teller, err := s.activityAccount(ctx, domain.CashAtTeller)
	if err != nil {
		return nil, err
	}

	debit, credit := teller, vault
	if txn.Type == domain.Settle {
		debit, credit = vault, teller
	}

	transactionID := uuid.NewString()
	leg := func(accountID int64, entryType domain.EntryType) domain.JournalEntry {
		return domain.JournalEntry{
			OfficeID:      txn.OfficeID,
			GLAccountID:   accountID,
			CurrencyCode:  txn.CurrencyCode,
			TransactionID: transactionID,
			EntryType:     entryType,
			Amount:        txn.Amount,
			EntryDate:     txn.TxnDate,
			Description:   txn.Note,
			EntityType:    cashierTransactionEntity,
			AuditFields:   txn.AuditFields,
		}
	}
	entries := []domain.JournalEntry{leg(debit.ID, domain.Debit), leg(credit.ID, domain.Credit)}

	if err := accounting.ValidateBalancedPair(entries); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	return entries, nil
}

func (s *tellerLedgerService) activityAccount(ctx context.Context, activity domain.FinancialActivity) (*domain.GLAccount, error) {
	account, err := s.referenceRepo.FindAccountForActivity(ctx, activity)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, &apperrors.ConfigurationMissingError{Activity: activity.String()}
	}
	return account, err
}

// GetJournalEntries returns the legs sharing a transaction id and whether they balance.
func (s *tellerLedgerService) GetJournalEntries(ctx context.Context, transactionID string) (*dto.GetJournalEntriesResponse, error) {
	entries, err := s.journalRepo.FindJournalEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get journal entries", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.NewNotFoundError("journal entries for transaction", transactionID)
	}

	balanced := accounting.IsBalanced(entries)
	if !balanced {
		s.LogError(ctx, errors.New("unbalanced transaction"), "Journal entries do not balance",
			slog.String("transaction_id", transactionID))
	}
	responses := dto.ToJournalEntryResponses(entries)
	if err := s.applyEffects(ctx, entries, responses); err != nil {
		s.LogError(ctx, err, "Failed to resolve GL accounts of journal entries", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return &dto.GetJournalEntriesResponse{
		TransactionID: transactionID,
		Balanced:      balanced,
		Entries:       responses,
	}, nil
}

// applyEffects fills the signed balance effect of each leg. A leg whose GL account is gone
// or carries an unknown type keeps a nil effect.
func (s *tellerLedgerService) applyEffects(ctx context.Context, entries []domain.JournalEntry, responses []dto.JournalEntryResponse) error {
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		if !slices.Contains(ids, e.GLAccountID) {
			ids = append(ids, e.GLAccountID)
		}
	}
	accounts, err := s.glAccountRepo.FindGLAccountsByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i, e := range entries {
		account, ok := accounts[e.GLAccountID]
		if !ok {
			s.LogWarn(ctx, "Journal entry references an unknown GL account",
				"journal_entry_id", e.ID, "gl_account_id", e.GLAccountID)
			continue
		}
		effect, err := accounting.CalculateSignedAmount(e, account.AccountType)
		if err != nil {
			s.LogWarn(ctx, "Cannot sign journal entry", "journal_entry_id", e.ID, "error", err.Error())
			continue
		}
		responses[i].Effect = &effect
	}
	return nil
}

// ListCashierTransactions returns a page of a cashier's transactions, newest first.
func (s *tellerLedgerService) ListCashierTransactions(ctx context.Context, cashierID int64, params dto.ListCashierTransactionsParams) (*dto.ListCashierTransactionsResponse, error) {
	if _, err := s.cashierRepo.FindCashierByID(ctx, cashierID); err != nil {
		return nil, err
	}

	txns, nextToken, err := s.cashierRepo.ListCashierTransactions(ctx, cashierID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cashier transactions", slog.Int64("cashier_id", cashierID))
		return nil, err
	}
	return &dto.ListCashierTransactionsResponse{
		Transactions: dto.ToCashierTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
