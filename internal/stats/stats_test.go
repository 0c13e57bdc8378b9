package stats_test

import (
	"testing"
	"time"

	"mealbridge/internal/domain"
	"mealbridge/internal/policy"
	"mealbridge/internal/seed"
	"mealbridge/internal/stats"
)

// The seed records are a convenient fixed corpus: 4 donations
// (2 pending, 1 collected, 1 distributed), 4 needs (2 high unfulfilled,
// 1 medium, 1 low fulfilled), all created on 2025-07-01 or 2025-07-02.
var now = time.Date(2025, 7, 2, 12, 0, 0, 0, time.UTC)

func TestSummarize(t *testing.T) {
	s := stats.Summarize(seed.Donations(), seed.UrgentNeeds(), now, policy.DefaultExpiryWindowDays)
	if s.TotalDonations != 4 {
		t.Fatalf("total donations: got %d, want 4", s.TotalDonations)
	}
	if s.PendingPickups != 2 {
		t.Fatalf("pending pickups: got %d, want 2", s.PendingPickups)
	}
	if s.OpenHighPriorityNeeds != 2 {
		t.Fatalf("open high priority needs: got %d, want 2", s.OpenHighPriorityNeeds)
	}
	// Expiries 2025-07-04, 2025-07-03, 2025-07-03 are within the window;
	// 2025-12-31 is not.
	if s.ExpiringSoon != 3 {
		t.Fatalf("expiring soon: got %d, want 3", s.ExpiringSoon)
	}
}

func TestStatusDistribution(t *testing.T) {
	buckets := stats.StatusDistribution(seed.Donations())
	want := []stats.Bucket{
		{Name: "pending", Count: 2},
		{Name: "collected", Count: 1},
		{Name: "distributed", Count: 1},
	}
	if len(buckets) != len(want) {
		t.Fatalf("bucket count: got %d, want %d", len(buckets), len(want))
	}
	sum := 0
	for i, b := range buckets {
		if b != want[i] {
			t.Fatalf("bucket %d: got %+v, want %+v", i, b, want[i])
		}
		sum += b.Count
	}
	if sum != len(seed.Donations()) {
		t.Fatalf("distribution sum %d != total %d", sum, len(seed.Donations()))
	}
}

func TestStatusDistributionZeroFilled(t *testing.T) {
	buckets := stats.StatusDistribution(nil)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 zero-filled buckets, got %d", len(buckets))
	}
	for _, b := range buckets {
		if b.Count != 0 {
			t.Fatalf("expected zero count for %s", b.Name)
		}
	}
}

func TestPriorityDistribution(t *testing.T) {
	buckets := stats.PriorityDistribution(seed.UrgentNeeds())
	want := []stats.Bucket{
		{Name: "high", Count: 2},
		{Name: "medium", Count: 1},
		{Name: "low", Count: 1},
	}
	for i, b := range buckets {
		if b != want[i] {
			t.Fatalf("bucket %d: got %+v, want %+v", i, b, want[i])
		}
	}
}

func TestFoodTypeHistogramFirstObservedOrder(t *testing.T) {
	donations := []domain.Donation{
		{FoodType: "Rice", CreatedAt: "2025-07-02T10:00:00Z"},
		{FoodType: "Bread", CreatedAt: "2025-07-02T10:00:00Z"},
		{FoodType: "Rice", CreatedAt: "2025-07-02T10:00:00Z"},
	}
	buckets := stats.FoodTypeHistogram(donations)
	want := []stats.Bucket{{Name: "Rice", Count: 2}, {Name: "Bread", Count: 1}}
	if len(buckets) != len(want) {
		t.Fatalf("bucket count: got %d, want %d", len(buckets), len(want))
	}
	for i, b := range buckets {
		if b != want[i] {
			t.Fatalf("bucket %d: got %+v, want %+v", i, b, want[i])
		}
	}
}

func TestWeeklyTrend(t *testing.T) {
	points := stats.WeeklyTrend(seed.Donations(), now)
	if len(points) != 7 {
		t.Fatalf("expected 7 day points, got %d", len(points))
	}
	if points[0].Date != "2025-06-26" {
		t.Fatalf("expected oldest point 2025-06-26, got %s", points[0].Date)
	}
	if points[6].Date != "2025-07-02" || points[6].Label != "Wed" {
		t.Fatalf("expected newest point Wed 2025-07-02, got %s %s", points[6].Label, points[6].Date)
	}
	// Two seed donations on each of 07-01 and 07-02.
	if points[5].Donations != 2 || points[6].Donations != 2 {
		t.Fatalf("expected 2 donations on each of the last two days, got %d and %d", points[5].Donations, points[6].Donations)
	}
	for i := 0; i < 5; i++ {
		if points[i].Donations != 0 {
			t.Fatalf("expected empty day %s", points[i].Date)
		}
	}
}

func TestMonthlyTrend(t *testing.T) {
	points := stats.MonthlyTrend(seed.Donations(), seed.UrgentNeeds(), now)
	if len(points) != 6 {
		t.Fatalf("expected 6 month points, got %d", len(points))
	}
	if points[0].Month != "2025-02" {
		t.Fatalf("expected oldest month 2025-02, got %s", points[0].Month)
	}
	last := points[5]
	if last.Month != "2025-07" || last.Label != "Jul" {
		t.Fatalf("expected newest month Jul 2025-07, got %s %s", last.Label, last.Month)
	}
	if last.Donations != 4 || last.Needs != 4 || last.Fulfilled != 1 {
		t.Fatalf("unexpected current month counts: %+v", last)
	}
	for i := 0; i < 5; i++ {
		if points[i].Donations != 0 || points[i].Needs != 0 || points[i].Fulfilled != 0 {
			t.Fatalf("expected empty month %s", points[i].Month)
		}
	}
}

func TestTrendsSkipUnparseableTimestamps(t *testing.T) {
	donations := []domain.Donation{{FoodType: "Rice", CreatedAt: "yesterday-ish"}}
	for _, p := range stats.WeeklyTrend(donations, now) {
		if p.Donations != 0 {
			t.Fatal("unparseable createdAt must not be bucketed")
		}
	}
}
