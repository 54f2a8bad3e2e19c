package pgsql

import (
	portsrepo "github.com/SscSPs/coa_ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	referenceRepo := newPgxReferenceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:     newPgxTransactionManager(dbPool),
		GLAccountRepo: referenceRepo,
		MappingRepo:   newPgxMappingRepository(dbPool),
		ReferenceRepo: referenceRepo,
		CashierRepo:   newPgxCashierRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
	}
}
