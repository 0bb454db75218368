package store

import (
	"context"

	"github.com/envirobot/envirobot/internal/domain"
	"github.com/envirobot/envirobot/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

// Store is the normalized store: two relations rebuilt wholesale by the
// ETL pipeline and read by the tiered resolver.
type Store interface {
	EnsureSchema(ctx context.Context) error

	ReplaceEmissions(ctx context.Context, records []domain.EmissionRecord) error
	LatestEmission(ctx context.Context, provinceCode string) (*domain.EmissionRecord, error)
	SumEmissionsByYear(ctx context.Context) ([]domain.YearTotal, error)

	ReplaceCovidStats(ctx context.Context, records []domain.CovidStatRecord) error
	LatestCovidStat(ctx context.Context, provinceCode string) (*domain.CovidStatRecord, error)
	LatestNationalCovidStat(ctx context.Context) (*domain.CovidStatRecord, error)
}

type store struct {
	pool *Pool
}

func NewStore(pool *Pool) Store {
	return &store{pool}
}
