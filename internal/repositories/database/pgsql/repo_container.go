package pgsql

import (
	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
// The account repository doubles as the transaction manager; every repository
// embeds the same BaseRepository so any of them could serve that role.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	return &portsrepo.RepositoryProvider{
		TxManager:    accountRepo,
		AccountRepo:  accountRepo,
		TxnRepo:      newPgxTransactionRepository(pool),
		CostingRepo:  newPgxCostingRepository(pool),
		SaleRepo:     newPgxSaleRepository(pool),
		CustomerRepo: newPgxCustomerRepository(pool),
		ProductRepo:  newPgxProductRepository(pool),
		TeamRepo:     newPgxTeamRepository(pool),
		BusinessRepo: newPgxBusinessRepository(pool),
		UserRepo:     newPgxUserRepository(pool),
	}
}
