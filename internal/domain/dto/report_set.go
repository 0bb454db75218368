package dto

import (
	"sort"
	"sync"
)

// DailyReport is one raw daily record as delivered by the statistics
// source, before normalization. Missing numeric fields are already zero.
type DailyReport struct {
	Date            string
	TotalCases      int64
	TotalFatalities int64
	TotalRecoveries int64
}

// ReportSet accumulates per-province report series from concurrent
// fetches.
type ReportSet struct {
	mu      sync.Mutex
	reports map[string][]DailyReport
}

func NewReportSet() *ReportSet {
	return &ReportSet{reports: make(map[string][]DailyReport)}
}

func (s *ReportSet) Put(province string, reports []DailyReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports[province] = reports
}

func (s *ReportSet) Get(province string) []DailyReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reports[province]
}

// Provinces returns the accumulated partition keys in sorted order so that
// downstream normalization is deterministic.
func (s *ReportSet) Provinces() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.reports))
	for k := range s.reports {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
