package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/envirobot/envirobot/internal/pkg/constants"
	"github.com/jackc/pgx/v5"
)

const (
	tableGHG        = "ghg"
	tableCovidStats = "covid_stats"
)

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder returns a squirrel SQL builder with Postgres placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

const schema = `
create table if not exists ghg (
	province text not null,
	year int not null,
	emissions double precision not null,
	primary key (province, year)
);
create table if not exists covid_stats (
	date date not null,
	province text not null,
	total_cases bigint not null,
	total_fatalities bigint not null,
	total_recoveries bigint not null,
	new_cases bigint not null,
	cases_7d_avg double precision not null,
	primary key (province, date)
);
`

// EnsureSchema creates the two relations when absent. The store holds no
// irrecoverable state, so dropping both tables and re-running the ETL is
// always safe.
func (s *store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
