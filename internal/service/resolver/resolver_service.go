package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/envirobot/envirobot/internal/domain"
	"github.com/envirobot/envirobot/internal/pkg/constants"
	"github.com/envirobot/envirobot/internal/pkg/covidtracker"
	"github.com/envirobot/envirobot/internal/pkg/logger"
	"github.com/envirobot/envirobot/internal/pkg/store"
)

// Service resolves a (topic, province) fact through the prioritized chain
// live -> store -> aggregate. Every live-source failure is absorbed here
// and triggers fallback; one failed attempt falls through immediately, no
// retry. Only exhaustion of all tiers surfaces as ErrDBNotFound.
type Service struct {
	store store.Store
	live  covidtracker.Client // nil when no live source is configured
}

func NewService(store store.Store, live covidtracker.Client) *Service {
	return &Service{store: store, live: live}
}

func (s *Service) ResolveFact(ctx context.Context, topic domain.Topic, province *domain.Province) (*domain.ResolvedAnswer, error) {
	switch topic {
	case domain.TopicCovid:
		return s.resolveCovid(ctx, province)
	case domain.TopicGHG:
		return s.resolveGHG(ctx, province)
	default:
		return nil, fmt.Errorf("no data source for topic %s", topic)
	}
}

func (s *Service) resolveCovid(ctx context.Context, province *domain.Province) (*domain.ResolvedAnswer, error) {
	if province != nil {
		if s.live != nil {
			rec, err := s.liveLatest(ctx, province.Code)
			if err != nil {
				logger.Warnf(ctx, "live lookup failed, falling back to store, province-%s: %s", province.Code, err.Error())
			} else if rec != nil {
				return &domain.ResolvedAnswer{
					Topic:    domain.TopicCovid,
					Province: province,
					Tier:     domain.TierLive,
					Covid:    rec,
				}, nil
			}
		}

		rec, err := s.store.LatestCovidStat(ctx, province.Code)
		if err == nil {
			return &domain.ResolvedAnswer{
				Topic:    domain.TopicCovid,
				Province: province,
				Tier:     domain.TierStore,
				Covid:    rec,
			}, nil
		}
		if !errors.Is(err, constants.ErrDBNotFound) {
			return nil, fmt.Errorf("store.LatestCovidStat: %w", err)
		}
	}

	rec, err := s.store.LatestNationalCovidStat(ctx)
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrDBNotFound
		}
		return nil, fmt.Errorf("store.LatestNationalCovidStat: %w", err)
	}

	return &domain.ResolvedAnswer{
		Topic: domain.TopicCovid,
		Tier:  domain.TierAggregate,
		Covid: rec,
	}, nil
}

// liveLatest fetches the live series and keeps its most recent record. An
// empty series returns (nil, nil): valid, but nothing to answer with, so
// the store tier takes over.
func (s *Service) liveLatest(ctx context.Context, code string) (*domain.CovidStatRecord, error) {
	reports, err := s.live.ProvinceReports(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, nil
	}

	latest := reports[len(reports)-1]

	date, err := time.Parse("2006-01-02", latest.Date)
	if err != nil {
		return nil, fmt.Errorf("parse report date %q: %w", latest.Date, constants.ErrUpstreamMalformed)
	}

	rec := &domain.CovidStatRecord{
		Date:     date,
		Province: code,
	}
	if latest.TotalCases != nil {
		rec.TotalCases = *latest.TotalCases
	}
	if latest.TotalFatalities != nil {
		rec.TotalFatalities = *latest.TotalFatalities
	}
	if latest.TotalRecoveries != nil {
		rec.TotalRecoveries = *latest.TotalRecoveries
	}

	return rec, nil
}

func (s *Service) resolveGHG(ctx context.Context, province *domain.Province) (*domain.ResolvedAnswer, error) {
	if province != nil {
		rec, err := s.store.LatestEmission(ctx, province.Code)
		if err == nil {
			return &domain.ResolvedAnswer{
				Topic:    domain.TopicGHG,
				Province: province,
				Tier:     domain.TierStore,
				Emission: rec,
			}, nil
		}
		if !errors.Is(err, constants.ErrDBNotFound) {
			return nil, fmt.Errorf("store.LatestEmission: %w", err)
		}
	}

	totals, err := s.store.SumEmissionsByYear(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.SumEmissionsByYear: %w", err)
	}
	if len(totals) == 0 {
		return nil, constants.ErrDBNotFound
	}

	return &domain.ResolvedAnswer{
		Topic:      domain.TopicGHG,
		Tier:       domain.TierAggregate,
		YearTotals: totals,
	}, nil
}
