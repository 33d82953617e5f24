package customer

import (
	"fmt"
	"time"

	"magazine-crm/internal/domain"
)

const dateLayout = "2006-01-02"

// acceptedLayouts are tried in order. The single-digit forms also accept
// zero-padded months and days.
var acceptedLayouts = []string{
	dateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-1-2",
	"2006/1/2",
	"2006/1/2 15:04:05",
}

// parseDate reads a subscription date as a UTC calendar day.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// MonthCount is one bucket of the subscription graph, labelled "YYYY-M".
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// monthlyHistogram emits twelve buckets for every calendar year between the
// earliest and latest parseable start date. Unparseable dates are ignored.
func monthlyHistogram(customers []domain.Customer) []MonthCount {
	type key struct {
		year  int
		month time.Month
	}
	counts := make(map[key]int)
	var minYear, maxYear int
	seen := false
	for _, c := range customers {
		if c.Magazine == nil {
			continue
		}
		start, ok := parseDate(c.Magazine.SubscriptionStartDate)
		if !ok {
			continue
		}
		counts[key{start.Year(), start.Month()}]++
		if !seen || start.Year() < minYear {
			minYear = start.Year()
		}
		if !seen || start.Year() > maxYear {
			maxYear = start.Year()
		}
		seen = true
	}
	if !seen {
		return []MonthCount{}
	}

	out := make([]MonthCount, 0, 12*(maxYear-minYear+1))
	for year := minYear; year <= maxYear; year++ {
		for month := time.January; month <= time.December; month++ {
			out = append(out, MonthCount{
				Month: fmt.Sprintf("%d-%d", year, int(month)),
				Count: counts[key{year, month}],
			})
		}
	}
	return out
}
