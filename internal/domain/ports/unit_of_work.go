package ports

import "context"

// UnitOfWork define a interface para gerenciamento de transações.
// Toda mutação de avaliação e seu recompute do agregado rodam dentro
// de um único WithTransaction: ou ambos comitam, ou nenhum.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
