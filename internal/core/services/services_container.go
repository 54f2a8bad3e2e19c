package services

import (
	"github.com/SscSPs/coa_ledger_engine/internal/core/catalog"
	portsrepo "github.com/SscSPs/coa_ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coa_ledger_engine/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, cat *catalog.Catalog) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The directory is shared by the reconciler for every category check.
	container.GLDirectory = NewGLAccountDirectory(repos.GLAccountRepo)

	container.Mapping = NewMappingService(
		repos.TxManager,
		repos.MappingRepo,
		repos.ReferenceRepo,
		container.GLDirectory,
		cat,
	)
	container.Accounting = NewAccountingReaderService(
		repos.TxManager,
		repos.MappingRepo,
		repos.GLAccountRepo,
		repos.ReferenceRepo,
		cat,
	)
	container.Teller = NewTellerLedgerService(
		repos.TxManager,
		repos.CashierRepo,
		repos.JournalRepo,
		repos.ReferenceRepo,
		repos.GLAccountRepo,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.MappingSvcFacade          = (*mappingService)(nil)
	_ portssvc.AccountingReaderSvcFacade = (*accountingReaderService)(nil)
	_ portssvc.TellerLedgerSvcFacade     = (*tellerLedgerService)(nil)
)
