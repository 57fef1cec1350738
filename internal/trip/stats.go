package trip

import (
	"math"
	"slices"
	"time"

	"github.com/pkordes/tripcrew/internal/domain"
)

// Summary bundles the derived, read-only figures for a trip at one instant.
type Summary struct {
	Status             domain.TripStatus `json:"status"`
	Duration           int               `json:"duration"`
	ParticipantCount   int               `json:"participant_count"`
	PendingCount       int               `json:"pending_count"`
	IsFull             bool              `json:"is_full"`
	TotalExpenses      float64           `json:"total_expenses"`
	PackingProgress    int               `json:"packing_progress"`
	PackingItems       int               `json:"packing_items"`
	UpcomingActivities int               `json:"upcoming_activities"`
}

// Summarize computes every derived figure for t at now. The lifecycle status
// is refreshed first, on a copy, so the summary reflects the current state.
func Summarize(t domain.Trip, now time.Time) Summary {
	status := RefreshStatus(&t, now)
	pending := 0
	for _, p := range t.Participants {
		if p.Status == domain.ParticipantPending {
			pending++
		}
	}
	return Summary{
		Status:             status,
		Duration:           Duration(t),
		ParticipantCount:   ParticipantCount(t),
		PendingCount:       pending,
		IsFull:             IsFull(t),
		TotalExpenses:      TotalExpenses(t),
		PackingProgress:    OverallPackingProgress(t),
		PackingItems:       len(t.PackingList),
		UpcomingActivities: len(UpcomingActivities(t, now)),
	}
}

// Duration is the trip length in whole days, rounded up.
func Duration(t domain.Trip) int {
	return int(math.Ceil(t.EndDate.Sub(t.StartDate).Hours() / 24))
}

// ParticipantCount counts accepted participants.
func ParticipantCount(t domain.Trip) int {
	n := 0
	for _, p := range t.Participants {
		if p.Status == domain.ParticipantAccepted {
			n++
		}
	}
	return n
}

// TotalExpenses sums all expense amounts. All amounts share one currency.
func TotalExpenses(t domain.Trip) float64 {
	total := 0.0
	for _, e := range t.Expenses {
		total += e.Amount
	}
	return total
}

// OverallPackingProgress is the share of packing items that at least one
// member has packed, as a rounded percentage. It is 0 for an empty list.
func OverallPackingProgress(t domain.Trip) int {
	packed := 0
	for _, item := range t.PackingList {
		if slices.ContainsFunc(item.MemberStatus, func(s domain.MemberPackingStatus) bool { return s.Packed }) {
			packed++
		}
	}
	return percent(packed, len(t.PackingList))
}

// UpcomingActivities returns activities dated at or after now, earliest
// first. Activities on the same instant keep their insertion order.
func UpcomingActivities(t domain.Trip, now time.Time) []domain.Activity {
	out := make([]domain.Activity, 0, len(t.Activities))
	for _, a := range t.Activities {
		if !a.Date.Before(now) {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Activity) int {
		return a.Date.Compare(b.Date)
	})
	return out
}
