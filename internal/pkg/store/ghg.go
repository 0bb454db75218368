package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/envirobot/envirobot/internal/domain"
	"github.com/jackc/pgx/v5"
)

var ghgColumns = []string{"province", "year", "emissions"}

// ReplaceEmissions swaps the ghg relation wholesale inside one
// transaction, so readers never observe a partially written table.
func (s *store) ReplaceEmissions(ctx context.Context, records []domain.EmissionRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	delSQL, delArgs, err := builder().Delete(tableGHG).ToSql()
	if err != nil {
		return fmt.Errorf("delete.ToSql: %w", err)
	}
	if _, err = tx.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("delete %s: %w", tableGHG, err)
	}

	if len(records) > 0 {
		query := builder().Insert(tableGHG).Columns(ghgColumns...)
		for _, r := range records {
			query = query.Values(r.Province, r.Year, r.Emissions)
		}

		insSQL, insArgs, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("insert.ToSql: %w", err)
		}
		if _, err = tx.Exec(ctx, insSQL, insArgs...); err != nil {
			return fmt.Errorf("insert %s: %w", tableGHG, err)
		}
	}

	return tx.Commit(ctx)
}

// LatestEmission returns the row at the maximum reference year for the
// province.
func (s *store) LatestEmission(ctx context.Context, provinceCode string) (*domain.EmissionRecord, error) {
	query := builder().Select(ghgColumns...).
		From(tableGHG).
		Where(sq.Eq{"province": provinceCode}).
		OrderBy("year DESC").
		Limit(1)

	rows, err := s.pool.Queryx(ctx, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	selected, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[domain.EmissionRecord])
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

// SumEmissionsByYear aggregates emissions across provinces, ascending by
// year.
func (s *store) SumEmissionsByYear(ctx context.Context) ([]domain.YearTotal, error) {
	query := builder().Select("year", "sum(emissions) as total").
		From(tableGHG).
		GroupBy("year").
		OrderBy("year ASC")

	rows, err := s.pool.Queryx(ctx, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	selected, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[domain.YearTotal])
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}
