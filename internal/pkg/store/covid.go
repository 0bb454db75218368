package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/envirobot/envirobot/internal/domain"
	"github.com/jackc/pgx/v5"
)

var covidColumns = []string{
	"date", "province", "total_cases", "total_fatalities",
	"total_recoveries", "new_cases", "cases_7d_avg",
}

// ReplaceCovidStats swaps the covid_stats relation wholesale inside one
// transaction.
func (s *store) ReplaceCovidStats(ctx context.Context, records []domain.CovidStatRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	delSQL, delArgs, err := builder().Delete(tableCovidStats).ToSql()
	if err != nil {
		return fmt.Errorf("delete.ToSql: %w", err)
	}
	if _, err = tx.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("delete %s: %w", tableCovidStats, err)
	}

	if len(records) > 0 {
		query := builder().Insert(tableCovidStats).Columns(covidColumns...)
		for _, r := range records {
			query = query.Values(
				r.Date, r.Province, r.TotalCases, r.TotalFatalities,
				r.TotalRecoveries, r.NewCases, r.Cases7dAvg,
			)
		}

		insSQL, insArgs, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("insert.ToSql: %w", err)
		}
		if _, err = tx.Exec(ctx, insSQL, insArgs...); err != nil {
			return fmt.Errorf("insert %s: %w", tableCovidStats, err)
		}
	}

	return tx.Commit(ctx)
}

// LatestCovidStat returns the most recent row for the province.
func (s *store) LatestCovidStat(ctx context.Context, provinceCode string) (*domain.CovidStatRecord, error) {
	query := builder().Select(covidColumns...).
		From(tableCovidStats).
		Where(sq.Eq{"province": provinceCode}).
		OrderBy("date DESC").
		Limit(1)

	rows, err := s.pool.Queryx(ctx, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	selected, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[domain.CovidStatRecord])
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

// LatestNationalCovidStat returns the most recent row of the national
// feed.
func (s *store) LatestNationalCovidStat(ctx context.Context) (*domain.CovidStatRecord, error) {
	return s.LatestCovidStat(ctx, domain.ProvinceAll)
}
