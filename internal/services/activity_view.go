package services

import (
	"sort"

	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
)

// ScheduleActivity is the read-side view of a schedule's activity log.
type ScheduleActivity struct {
	Status          m.ActivityStatus   `json:"activity_status"`
	Latest          *m.Activity        `json:"latest_activity"`
	ProgressUpdates []m.ProgressUpdate `json:"all_progress_updates"`
}

// BuildScheduleActivity folds a schedule's activity records, oldest first,
// into its current status and the merged progress timeline. Updates with
// equal timestamps keep their record order.
func BuildScheduleActivity(records []m.Activity) ScheduleActivity {
	view := ScheduleActivity{Status: m.ActivityPending, ProgressUpdates: []m.ProgressUpdate{}}
	if len(records) == 0 {
		return view
	}
	latest := records[len(records)-1]
	view.Latest = &latest
	view.Status = latest.Status
	for _, r := range records {
		view.ProgressUpdates = append(view.ProgressUpdates, r.ProgressUpdates...)
	}
	sort.SliceStable(view.ProgressUpdates, func(i, j int) bool {
		return view.ProgressUpdates[i].Timestamp.Before(view.ProgressUpdates[j].Timestamp)
	})
	return view
}
