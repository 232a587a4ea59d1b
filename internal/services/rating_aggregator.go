package services

import (
	"context"
	"math"

	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
	"github.com/rafabene/avaliapro-backend/internal/domain/repositories"
)

// RatingAggregator mantém o resumo desnormalizado de cada loja
// (average_rating, total_ratings) consistente com as avaliações atuais.
// Recompute é função pura das linhas de avaliação: idempotente e seguro
// de reexecutar.
type RatingAggregator struct {
	storeRepo  repositories.StoreRepository
	ratingRepo repositories.RatingRepository
	logger     ports.Logger
}

// NewRatingAggregator cria um novo RatingAggregator
func NewRatingAggregator(
	storeRepo repositories.StoreRepository,
	ratingRepo repositories.RatingRepository,
	logger ports.Logger,
) *RatingAggregator {
	return &RatingAggregator{
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

// Recompute recalcula o agregado da loja a partir das avaliações atuais.
// Deve rodar na mesma transação da mutação que o disparou: o contexto
// carrega a transação aberta pelo UnitOfWork, então a leitura enxerga a
// escrita ainda não comitada. A linha da loja é travada antes da
// leitura; sob READ COMMITTED, um recompute concorrente da mesma loja
// espera o commit do anterior e só então lê, já enxergando a avaliação
// dele. Conjunto vazio zera os dois campos.
func (a *RatingAggregator) Recompute(ctx context.Context, storeID string) error {
	if err := a.storeRepo.LockAggregate(ctx, storeID); err != nil {
		return err
	}

	average, total, err := a.ratingRepo.SummaryByStore(ctx, storeID)
	if err != nil {
		return err
	}

	// Arredondamento half-away-from-zero na casa decimal
	rounded := math.Round(average*10) / 10

	if err := a.storeRepo.UpdateAggregate(ctx, storeID, rounded, total); err != nil {
		return err
	}

	a.logger.Debug("store aggregate recomputed",
		"store_id", storeID,
		"average_rating", rounded,
		"total_ratings", total,
	)

	return nil
}
