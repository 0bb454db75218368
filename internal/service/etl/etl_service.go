package etl

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/envirobot/envirobot/internal/domain"
	"github.com/envirobot/envirobot/internal/domain/dto"
	"github.com/envirobot/envirobot/internal/pkg/constants"
	"github.com/envirobot/envirobot/internal/pkg/covidtracker"
	"github.com/envirobot/envirobot/internal/pkg/logger"
	"github.com/envirobot/envirobot/internal/pkg/store"
	"golang.org/x/sync/errgroup"
)

// Service rebuilds the two normalized relations from their raw sources.
// Both transforms replace their relation wholesale, so re-running is
// always safe; the mutex keeps two concurrent rebuilds from interleaving.
type Service struct {
	store   store.Store
	covid   covidtracker.Client
	csvPath string
	mu      sync.Mutex
}

func NewService(store store.Store, covid covidtracker.Client, csvPath string) *Service {
	return &Service{store: store, covid: covid, csvPath: csvPath}
}

// Run executes both transforms. A single dead source does not block the
// other: each failure is logged, and an error is returned only when both
// transforms fail.
func (s *Service) Run(ctx context.Context) (ghgRows, covidRows int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ghgRows, ghgErr := s.runGHG(ctx)
	if ghgErr != nil {
		logger.Errorf(ctx, "etl ghg: %s", ghgErr.Error())
	}

	covidRows, covidErr := s.runCovid(ctx)
	if covidErr != nil {
		logger.Errorf(ctx, "etl covid: %s", covidErr.Error())
	}

	if ghgErr != nil && covidErr != nil {
		return ghgRows, covidRows, fmt.Errorf("ghg: %v; covid: %w", ghgErr, covidErr)
	}

	return ghgRows, covidRows, nil
}

func (s *Service) RunGHG(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runGHG(ctx)
}

func (s *Service) RunCovid(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runCovid(ctx)
}

func (s *Service) runGHG(ctx context.Context) (int, error) {
	f, err := os.Open(s.csvPath)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w: %v", s.csvPath, constants.ErrSourceUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	records, err := NormalizeEmissions(f)
	if err != nil {
		return 0, err
	}

	if err := s.store.ReplaceEmissions(ctx, records); err != nil {
		return 0, fmt.Errorf("store.ReplaceEmissions: %w", err)
	}

	return len(records), nil
}

func (s *Service) runCovid(ctx context.Context) (int, error) {
	set := dto.NewReportSet()

	eg, egCtx := errgroup.WithContext(ctx)
	for _, p := range domain.Provinces {
		code := p.Code
		eg.Go(func() error {
			reports, err := fetchWithRetry(egCtx, func() ([]covidtracker.Report, error) {
				return s.covid.ProvinceReports(egCtx, code)
			})
			if err != nil {
				return fmt.Errorf("fetch reports, province-%s: %w", code, err)
			}

			set.Put(code, toDailyReports(reports))
			return nil
		})
	}
	eg.Go(func() error {
		reports, err := fetchWithRetry(egCtx, func() ([]covidtracker.Report, error) {
			return s.covid.NationalReports(egCtx)
		})
		if err != nil {
			return fmt.Errorf("fetch national reports: %w", err)
		}

		set.Put(domain.ProvinceAll, toDailyReports(reports))
		return nil
	})

	if err := eg.Wait(); err != nil {
		return 0, err
	}

	records := NormalizeCovid(set)

	if err := s.store.ReplaceCovidStats(ctx, records); err != nil {
		return 0, fmt.Errorf("store.ReplaceCovidStats: %w", err)
	}

	return len(records), nil
}

// fetchWithRetry retries transient source failures a few times before the
// rebuild gives up; the query path never retries, only the ETL does.
func fetchWithRetry(ctx context.Context, fetch func() ([]covidtracker.Report, error)) ([]covidtracker.Report, error) {
	var reports []covidtracker.Report

	err := backoff.Retry(
		func() error {
			var fetchErr error

			reports, fetchErr = fetch()
			if fetchErr != nil {
				return fetchErr
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), 3),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	return reports, nil
}

func toDailyReports(reports []covidtracker.Report) []dto.DailyReport {
	daily := make([]dto.DailyReport, 0, len(reports))
	for _, r := range reports {
		daily = append(daily, dto.DailyReport{
			Date:            r.Date,
			TotalCases:      int64Value(r.TotalCases),
			TotalFatalities: int64Value(r.TotalFatalities),
			TotalRecoveries: int64Value(r.TotalRecoveries),
		})
	}
	return daily
}

// int64Value fills missing numeric fields with zero before downstream
// arithmetic.
func int64Value(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
