package store

import (
	"context"
	"testing"
	"time"

	"github.com/envirobot/envirobot/internal/domain"
	"github.com/envirobot/envirobot/internal/pkg/constants"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceCovidStats(t *testing.T) {
	st, mock := newMockStore(t)

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := domain.CovidStatRecord{
		Date:            date,
		Province:        "ON",
		TotalCases:      1000,
		TotalFatalities: 10,
		TotalRecoveries: 900,
		NewCases:        5,
		Cases7dAvg:      3.4,
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM covid_stats").
		WillReturnResult(pgxmock.NewResult("DELETE", 14))
	mock.ExpectExec("INSERT INTO covid_stats").
		WithArgs(date, "ON", int64(1000), int64(10), int64(900), int64(5), 3.4).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, st.ReplaceCovidStats(context.Background(), []domain.CovidStatRecord{rec}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestCovidStat(t *testing.T) {
	st, mock := newMockStore(t)

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT date, province, total_cases, total_fatalities, total_recoveries, new_cases, cases_7d_avg FROM covid_stats").
		WithArgs("ON").
		WillReturnRows(pgxmock.NewRows(covidColumns).
			AddRow(date, "ON", int64(1000), int64(10), int64(900), int64(5), 3.4))

	rec, err := st.LatestCovidStat(context.Background(), "ON")
	require.NoError(t, err)

	assert.Equal(t, &domain.CovidStatRecord{
		Date:            date,
		Province:        "ON",
		TotalCases:      1000,
		TotalFatalities: 10,
		TotalRecoveries: 900,
		NewCases:        5,
		Cases7dAvg:      3.4,
	}, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestCovidStat_NoRowsIsNotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("FROM covid_stats").
		WithArgs("ON").
		WillReturnRows(pgxmock.NewRows(covidColumns))

	_, err := st.LatestCovidStat(context.Background(), "ON")
	require.Error(t, err)
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
}

func TestLatestNationalCovidStat_QueriesAllPartition(t *testing.T) {
	st, mock := newMockStore(t)

	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM covid_stats").
		WithArgs(domain.ProvinceAll).
		WillReturnRows(pgxmock.NewRows(covidColumns).
			AddRow(date, domain.ProvinceAll, int64(50000), int64(400), int64(48000), int64(120), 98.6))

	rec, err := st.LatestNationalCovidStat(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.ProvinceAll, rec.Province)
	assert.EqualValues(t, 50000, rec.TotalCases)
	assert.NoError(t, mock.ExpectationsWereMet())
}
