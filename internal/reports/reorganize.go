package reports

import (
	"sort"

	"github.com/angelmondragon/stockdesk/pkg/models"
)

// ReorganizeWeeks sorts weekly buckets by PeriodStart, drops every bucket whose PeriodStart
// was already seen, and renumbers the survivors 1..N. Gaps and uneven widths are kept.
// The input slice is not modified.
func ReorganizeWeeks(buckets []models.RevenueBucket) []models.RevenueBucket {
	ordered := make([]models.RevenueBucket, len(buckets))
	copy(ordered, buckets)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PeriodStart.Before(ordered[j].PeriodStart)
	})

	out := make([]models.RevenueBucket, 0, len(ordered))
	for _, bucket := range ordered {
		if n := len(out); n > 0 && out[n-1].PeriodStart.Equal(bucket.PeriodStart) {
			continue
		}
		bucket.Number = len(out) + 1
		out = append(out, bucket)
	}
	return out
}
