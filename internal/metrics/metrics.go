// Package metrics normalizes raw feed entries and computes the aggregate
// numbers the dashboard renders. Everything here is pure and stateless:
// records come in from the fetcher, a Summary goes out, nothing is kept.
package metrics

import (
	"math"
	"sort"
	"time"

	"landerlens/internal/feed"
)

const (
	// NoDateBucket labels records whose source carried no timestamp text at
	// all in the per-date histogram. The frontend keys off this exact value.
	// Non-empty text that fails to parse falls into the sentinel date bucket
	// instead (the zero time renders as 0001-01-01).
	NoDateBucket = "sin_fecha"

	// DisplayLimit bounds the record list surfaced for display.
	DisplayLimit = 20
)

// Bucketing selects how histogram buckets are derived.
type Bucketing int

const (
	// BucketByDate groups records by calendar date (YYYY-MM-DD).
	BucketByDate Bucketing = iota
	// BucketByUser groups records by their group identifier.
	BucketByUser
)

// Record is one normalized feed entry. Identifier drives grouping and
// uniqueness, Label drives the length average, Timestamp (when carried)
// drives chronological sort and date bucketing. HasRawTimestamp records
// whether the source carried any timestamp text, so the date histogram can
// tell missing timestamps apart from unparseable ones.
type Record struct {
	ID              string
	Label           string
	Timestamp       time.Time
	HasTimestamp    bool
	HasRawTimestamp bool
}

// Item is one display row handed to the template, shaped the way the
// frontend expects regardless of source variant.
type Item struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
}

// Summary holds the aggregate metrics for one fetched payload.
// HistogramLabels and HistogramValues are index-aligned and sorted
// ascending by label.
type Summary struct {
	TotalCount         int      `json:"posts_count"`
	DistinctGroupCount int      `json:"users_count"`
	AverageLabelLength float64  `json:"average_title_length"`
	HistogramLabels    []string `json:"graph_labels"`
	HistogramValues    []int    `json:"graph_values"`
	Items              []Item   `json:"post_items"`
}

// EmptySummary returns the all-zero summary rendered on every error path.
func EmptySummary() Summary {
	return Summary{
		HistogramLabels: []string{},
		HistogramValues: []int{},
		Items:           []Item{},
	}
}

// NormalizeKeyed adapts the keyed activity feed: the map key is injected as
// the record identifier and the raw timestamp text doubles as the label.
func NormalizeKeyed(data map[string]feed.Entry) []Record {
	records := make([]Record, 0, len(data))
	for id, entry := range data {
		ts, ok := ParseTimestamp(entry.Timestamp)
		records = append(records, Record{
			ID:              id,
			Label:           entry.Timestamp,
			Timestamp:       ts,
			HasTimestamp:    ok,
			HasRawTimestamp: entry.Timestamp != "",
		})
	}
	return records
}

// NormalizeList adapts the flat post list: the identifier is the userId
// field and the label is the genuine title.
func NormalizeList(items []feed.Entry) []Record {
	records := make([]Record, 0, len(items))
	for _, entry := range items {
		ts, ok := ParseTimestamp(entry.Timestamp)
		records = append(records, Record{
			ID:              entry.UserID.String(),
			Label:           entry.Title,
			Timestamp:       ts,
			HasTimestamp:    ok,
			HasRawTimestamp: entry.Timestamp != "",
		})
	}
	return records
}

// Summarize computes the aggregate metrics over normalized records.
// Records carrying timestamps are listed newest first; sentinel timestamps
// sort last. Missing fields have already degraded to safe defaults during
// normalization, so this never fails.
func Summarize(records []Record, bucketing Bucketing) Summary {
	summary := EmptySummary()

	anyTimestamp := false
	for _, r := range records {
		if r.HasTimestamp {
			anyTimestamp = true
			break
		}
	}
	if anyTimestamp {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Timestamp.After(records[j].Timestamp)
		})
	}

	summary.TotalCount = len(records)

	distinct := make(map[string]struct{}, len(records))
	labelLengthTotal := 0
	for _, r := range records {
		distinct[r.ID] = struct{}{}
		labelLengthTotal += len(r.Label)
	}
	summary.DistinctGroupCount = len(distinct)

	if summary.TotalCount > 0 {
		avg := float64(labelLengthTotal) / float64(summary.TotalCount)
		summary.AverageLabelLength = math.Round(avg*100) / 100
	}

	counts := make(map[string]int, len(records))
	for _, r := range records {
		counts[bucketLabel(r, bucketing)]++
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	values := make([]int, len(labels))
	for i, label := range labels {
		values[i] = counts[label]
	}
	summary.HistogramLabels = labels
	summary.HistogramValues = values

	limit := len(records)
	if limit > DisplayLimit {
		limit = DisplayLimit
	}
	items := make([]Item, 0, limit)
	for _, r := range records[:limit] {
		items = append(items, Item{UserID: r.ID, Title: r.Label})
	}
	summary.Items = items

	return summary
}

func bucketLabel(r Record, bucketing Bucketing) string {
	switch bucketing {
	case BucketByUser:
		return "User " + r.ID
	default:
		if !r.HasTimestamp && !r.HasRawTimestamp {
			return NoDateBucket
		}
		// Unparseable text keeps the sentinel timestamp, landing in the
		// 0001-01-01 bucket.
		return r.Timestamp.Format("2006-01-02")
	}
}
