package checkin

import (
	"cmp"
	"slices"
	"time"

	"github.com/d4rken/cwa-app-android/internal/checkin/models"
)

// Partition orders a snapshot for display: active check-ins by ascending end,
// then completed ones by descending end. A check-in whose end has passed counts
// as completed. The input is not modified.
func Partition(checkIns []models.CheckIn, now time.Time) []models.CheckIn {
	var active, completed []models.CheckIn
	for _, c := range checkIns {
		switch c.StateAt(now) {
		case models.StateActive:
			active = append(active, c)
		case models.StateCompleted:
			c.Completed = true
			completed = append(completed, c)
		}
	}
	slices.SortStableFunc(active, func(a, b models.CheckIn) int {
		return a.CheckInEnd.Compare(b.CheckInEnd)
	})
	slices.SortStableFunc(completed, func(a, b models.CheckIn) int {
		return cmp.Compare(0, a.CheckInEnd.Compare(b.CheckInEnd))
	})
	return append(active, completed...)
}
