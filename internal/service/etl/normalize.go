package etl

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/envirobot/envirobot/internal/domain"
	"github.com/envirobot/envirobot/internal/domain/dto"
	"github.com/envirobot/envirobot/internal/pkg/constants"
	"github.com/shopspring/decimal"
)

// NormalizeEmissions unpivots the wide-format emissions table into one
// record per (province, year). Rows whose value fails numeric coercion
// are dropped silently; only an unreadable source is fatal.
func NormalizeEmissions(r io.Reader) ([]domain.EmissionRecord, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w: %v", constants.ErrSourceUnavailable, err)
	}

	provinceIdx := -1
	yearCols := make(map[int]domain.Year)
	for i, col := range header {
		name := strings.TrimSpace(col)
		if strings.EqualFold(name, "province") {
			provinceIdx = i
			continue
		}
		if year, parseErr := strconv.Atoi(name); parseErr == nil {
			yearCols[i] = year
		}
	}
	if provinceIdx == -1 || len(yearCols) == 0 {
		return nil, fmt.Errorf("unexpected csv header %v: %w", header, constants.ErrSourceUnavailable)
	}

	records := make([]domain.EmissionRecord, 0, 64)
	seen := make(map[string]bool)
	for {
		row, readErr := cr.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			// row-level defect, not fatal
			continue
		}

		code := strings.ToUpper(strings.TrimSpace(row[provinceIdx]))
		if code == "" {
			continue
		}

		for i, year := range yearCols {
			if i >= len(row) {
				continue
			}

			val, parseErr := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			if parseErr != nil {
				continue
			}

			key := fmt.Sprintf("%s-%d", code, year)
			if seen[key] {
				continue
			}
			seen[key] = true

			records = append(records, domain.EmissionRecord{
				Province:  code,
				Year:      year,
				Emissions: val,
			})
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Province != records[j].Province {
			return records[i].Province < records[j].Province
		}
		return records[i].Year < records[j].Year
	})

	return records, nil
}

// NormalizeCovid partitions the accumulated series by province, sorts each
// partition by date ascending and derives new_cases (first difference,
// zero for the first record) and cases_7d_avg (trailing mean over the up
// to 7 most recent new_cases values, rounded to one decimal).
func NormalizeCovid(set *dto.ReportSet) []domain.CovidStatRecord {
	records := make([]domain.CovidStatRecord, 0, 256)

	for _, province := range set.Provinces() {
		reports := set.Get(province)

		parsed := make([]domain.CovidStatRecord, 0, len(reports))
		for _, r := range reports {
			date, err := time.Parse("2006-01-02", r.Date)
			if err != nil {
				// row-level defect, dropped like an uncoercible value
				continue
			}

			parsed = append(parsed, domain.CovidStatRecord{
				Date:            date,
				Province:        province,
				TotalCases:      r.TotalCases,
				TotalFatalities: r.TotalFatalities,
				TotalRecoveries: r.TotalRecoveries,
			})
		}

		sort.Slice(parsed, func(i, j int) bool { return parsed[i].Date.Before(parsed[j].Date) })

		window := make([]int64, 0, 7)
		for i := range parsed {
			if i > 0 {
				parsed[i].NewCases = parsed[i].TotalCases - parsed[i-1].TotalCases
			}

			window = append(window, parsed[i].NewCases)
			if len(window) > 7 {
				window = window[1:]
			}

			parsed[i].Cases7dAvg = trailingMean(window)
		}

		records = append(records, parsed...)
	}

	return records
}

func trailingMean(window []int64) float64 {
	var sum int64
	for _, v := range window {
		sum += v
	}

	avg := decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(int64(len(window)))).
		Round(1)

	return avg.InexactFloat64()
}
