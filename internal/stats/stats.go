// Package stats computes the dashboard aggregates. Every function is a pure
// read over the current collections plus a clock; nothing here mutates state,
// so callers recompute freely on each render.
package stats

import (
	"time"

	"mealbridge/internal/domain"
	"mealbridge/internal/policy"
)

type Summary struct {
	TotalDonations        int `json:"totalDonations"`
	PendingPickups        int `json:"pendingPickups"`
	OpenHighPriorityNeeds int `json:"openHighPriorityNeeds"`
	ExpiringSoon          int `json:"expiringSoon"`
}

func Summarize(donations []domain.Donation, needs []domain.UrgentNeed, now time.Time, expiryWindowDays int) Summary {
	var s Summary
	s.TotalDonations = len(donations)
	for _, d := range donations {
		if d.Status == domain.StatusPending {
			s.PendingPickups++
		}
		if policy.ExpiringSoon(now, d.ExpiryDate, expiryWindowDays) {
			s.ExpiringSoon++
		}
	}
	for _, n := range needs {
		if !n.Fulfilled && n.Priority == domain.PriorityHigh {
			s.OpenHighPriorityNeeds++
		}
	}
	return s
}

type Bucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StatusDistribution counts donations per status. All three buckets are
// always present, zero-filled, in display order.
func StatusDistribution(donations []domain.Donation) []Bucket {
	counts := map[domain.DonationStatus]int{}
	for _, d := range donations {
		counts[d.Status]++
	}
	buckets := make([]Bucket, 0, 3)
	for _, s := range domain.Statuses() {
		buckets = append(buckets, Bucket{Name: string(s), Count: counts[s]})
	}
	return buckets
}

// PriorityDistribution counts urgent needs per priority, zero-filled.
func PriorityDistribution(needs []domain.UrgentNeed) []Bucket {
	counts := map[domain.NeedPriority]int{}
	for _, n := range needs {
		counts[n.Priority]++
	}
	buckets := make([]Bucket, 0, 3)
	for _, p := range domain.Priorities() {
		buckets = append(buckets, Bucket{Name: string(p), Count: counts[p]})
	}
	return buckets
}

// FoodTypeHistogram counts donations per free-text food type. Buckets appear
// in first-observed order so repeated renders are stable.
func FoodTypeHistogram(donations []domain.Donation) []Bucket {
	index := map[string]int{}
	var buckets []Bucket
	for _, d := range donations {
		i, ok := index[d.FoodType]
		if !ok {
			i = len(buckets)
			index[d.FoodType] = i
			buckets = append(buckets, Bucket{Name: d.FoodType})
		}
		buckets[i].Count++
	}
	return buckets
}

type DayPoint struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	Donations int    `json:"donations"`
}

// WeeklyTrend buckets donations by creation day over the 7 calendar days
// ending today, oldest first. Days truncate in now's location.
func WeeklyTrend(donations []domain.Donation, now time.Time) []DayPoint {
	counts := map[string]int{}
	for _, d := range donations {
		if day, ok := localDay(d.CreatedAt, now.Location()); ok {
			counts[day]++
		}
	}
	points := make([]DayPoint, 0, 7)
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, -(6 - i))
		key := day.Format(policy.DateOnly)
		points = append(points, DayPoint{
			Date:      key,
			Label:     day.Format("Mon"),
			Donations: counts[key],
		})
	}
	return points
}

type MonthPoint struct {
	Month     string `json:"month"`
	Label     string `json:"label"`
	Donations int    `json:"donations"`
	Needs     int    `json:"needs"`
	Fulfilled int    `json:"fulfilled"`
}

// MonthlyTrend buckets donations and urgent needs by creation month over the
// 6 calendar months ending with the current one, oldest first. Fulfilled
// counts needs created that month that are fulfilled now.
func MonthlyTrend(donations []domain.Donation, needs []domain.UrgentNeed, now time.Time) []MonthPoint {
	donationCounts := map[string]int{}
	for _, d := range donations {
		if m, ok := localMonth(d.CreatedAt, now.Location()); ok {
			donationCounts[m]++
		}
	}
	needCounts := map[string]int{}
	fulfilledCounts := map[string]int{}
	for _, n := range needs {
		m, ok := localMonth(n.CreatedAt, now.Location())
		if !ok {
			continue
		}
		needCounts[m]++
		if n.Fulfilled {
			fulfilledCounts[m]++
		}
	}

	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	points := make([]MonthPoint, 0, 6)
	for i := 0; i < 6; i++ {
		month := anchor.AddDate(0, -(5 - i), 0)
		key := month.Format("2006-01")
		points = append(points, MonthPoint{
			Month:     key,
			Label:     month.Format("Jan"),
			Donations: donationCounts[key],
			Needs:     needCounts[key],
			Fulfilled: fulfilledCounts[key],
		})
	}
	return points
}

func localDay(createdAt string, loc *time.Location) (string, bool) {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return "", false
	}
	return t.In(loc).Format(policy.DateOnly), true
}

func localMonth(createdAt string, loc *time.Location) (string, bool) {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return "", false
	}
	return t.In(loc).Format("2006-01"), true
}
