package chat

import (
	"fmt"
	"strings"

	"github.com/envirobot/envirobot/internal/domain"
	"github.com/shopspring/decimal"
)

// Format renders a resolved fact into its fixed template. GHG values are
// reported at single-decimal precision; COVID counts stay integers, and
// active cases pass through unclamped even when negative.
func Format(answer *domain.ResolvedAnswer) string {
	switch answer.Topic {
	case domain.TopicCovid:
		return formatCovid(answer)
	case domain.TopicGHG:
		return formatGHG(answer)
	default:
		return otherApology
	}
}

func formatCovid(answer *domain.ResolvedAnswer) string {
	rec := answer.Covid
	if rec == nil {
		return covidNoData
	}

	date := rec.Date.Format("2006-01-02")

	if answer.Province != nil {
		return fmt.Sprintf(
			"As of %s, %s has %d cases, %d active, %d deaths.",
			date, answer.Province.FullName, rec.TotalCases, rec.ActiveCases(), rec.TotalFatalities,
		)
	}

	return fmt.Sprintf("As of %s: %d cases, %d fatalities.", date, rec.TotalCases, rec.TotalFatalities)
}

func formatGHG(answer *domain.ResolvedAnswer) string {
	if answer.Province != nil && answer.Emission != nil {
		return fmt.Sprintf(
			"In %d, %s emitted %s Mt CO₂e.",
			answer.Emission.Year, answer.Province.FullName, megatons(answer.Emission.Emissions),
		)
	}

	if len(answer.YearTotals) == 0 {
		return ghgNoData
	}

	lines := make([]string, 0, len(answer.YearTotals)+1)
	lines = append(lines, "GHG by year:")
	for _, t := range answer.YearTotals {
		lines = append(lines, fmt.Sprintf("%d: %s Mt", t.Year, megatons(t.Total)))
	}

	return strings.Join(lines, "\n")
}

func megatons(v float64) string {
	return decimal.NewFromFloat(v).Round(1).StringFixed(1)
}
