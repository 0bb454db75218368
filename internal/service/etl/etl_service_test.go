package etl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/envirobot/envirobot/internal/domain"
	"github.com/envirobot/envirobot/internal/pkg/constants"
	"github.com/envirobot/envirobot/internal/pkg/covidtracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	emissions  []domain.EmissionRecord
	covidStats []domain.CovidStatRecord
}

func (f *fakeStore) EnsureSchema(context.Context) error { return nil }

func (f *fakeStore) ReplaceEmissions(_ context.Context, records []domain.EmissionRecord) error {
	f.emissions = records
	return nil
}

func (f *fakeStore) LatestEmission(context.Context, string) (*domain.EmissionRecord, error) {
	return nil, constants.ErrDBNotFound
}

func (f *fakeStore) SumEmissionsByYear(context.Context) ([]domain.YearTotal, error) {
	return nil, nil
}

func (f *fakeStore) ReplaceCovidStats(_ context.Context, records []domain.CovidStatRecord) error {
	f.covidStats = records
	return nil
}

func (f *fakeStore) LatestCovidStat(context.Context, string) (*domain.CovidStatRecord, error) {
	return nil, constants.ErrDBNotFound
}

func (f *fakeStore) LatestNationalCovidStat(context.Context) (*domain.CovidStatRecord, error) {
	return nil, constants.ErrDBNotFound
}

type fakeCovidClient struct {
	reports []covidtracker.Report
	err     error
}

func (f *fakeCovidClient) ProvinceReports(context.Context, string) ([]covidtracker.Report, error) {
	return f.reports, f.err
}

func (f *fakeCovidClient) NationalReports(context.Context) ([]covidtracker.Report, error) {
	return f.reports, f.err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gas_emissions_canada.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunGHG_ReplacesRelation(t *testing.T) {
	st := &fakeStore{}
	svc := NewService(st, &fakeCovidClient{}, writeCSV(t, sampleCSV))

	rows, err := svc.RunGHG(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, rows)
	assert.Len(t, st.emissions, 7)
}

func TestRunGHG_MissingFileIsSourceUnavailable(t *testing.T) {
	st := &fakeStore{}
	svc := NewService(st, &fakeCovidClient{}, filepath.Join(t.TempDir(), "missing.csv"))

	_, err := svc.RunGHG(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, constants.ErrSourceUnavailable)
	assert.Nil(t, st.emissions)
}

func TestRunCovid_MaterializesAllPartitions(t *testing.T) {
	cases := int64(10)
	st := &fakeStore{}
	client := &fakeCovidClient{reports: []covidtracker.Report{
		{Date: "2024-01-01", TotalCases: &cases}, // other counters missing, filled with zero
	}}
	svc := NewService(st, client, "unused.csv")

	rows, err := svc.RunCovid(context.Background())
	require.NoError(t, err)

	// 13 provinces plus the national "All" partition
	assert.Equal(t, 14, rows)
	require.Len(t, st.covidStats, 14)

	partitions := make(map[string]bool)
	for _, r := range st.covidStats {
		partitions[r.Province] = true
		assert.EqualValues(t, 10, r.TotalCases)
		assert.EqualValues(t, 0, r.TotalFatalities)
		assert.EqualValues(t, 0, r.TotalRecoveries)
	}
	assert.True(t, partitions[domain.ProvinceAll])
	assert.True(t, partitions["ON"])
}

func TestRunCovid_EmptyPayloadDegradesToNoData(t *testing.T) {
	st := &fakeStore{covidStats: []domain.CovidStatRecord{{Province: "stale"}}}
	svc := NewService(st, &fakeCovidClient{}, "unused.csv")

	rows, err := svc.RunCovid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, rows)
	assert.Empty(t, st.covidStats)
}
