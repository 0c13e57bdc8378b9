package domain

import "fmt"

type DonationStatus string

const (
	StatusPending     DonationStatus = "pending"
	StatusCollected   DonationStatus = "collected"
	StatusDistributed DonationStatus = "distributed"
)

type NeedPriority string

const (
	PriorityHigh   NeedPriority = "high"
	PriorityMedium NeedPriority = "medium"
	PriorityLow    NeedPriority = "low"
)

type Donation struct {
	ID           string         `json:"id"`
	DonorName    string         `json:"donorName"`
	DonorContact string         `json:"donorContact"`
	FoodType     string         `json:"foodType"`
	Quantity     float64        `json:"quantity"`
	Unit         string         `json:"unit"`
	ExpiryDate   string         `json:"expiryDate" format:"date"`
	Status       DonationStatus `json:"status" enum:"pending,collected,distributed"`
	Location     string         `json:"location"`
	CreatedAt    string         `json:"createdAt" format:"date-time"`
	Notes        string         `json:"notes,omitempty"`
}

type UrgentNeed struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Quantity    float64      `json:"quantity"`
	Unit        string       `json:"unit"`
	Priority    NeedPriority `json:"priority" enum:"high,medium,low"`
	Deadline    string       `json:"deadline" format:"date"`
	Location    string       `json:"location"`
	CreatedAt   string       `json:"createdAt" format:"date-time"`
	Fulfilled   bool         `json:"fulfilled"`
}

type Volunteer struct {
	ID            string `json:"id"`
	VolunteerName string `json:"volunteerName"`
	Contact       string `json:"contact"`
	AvailableDate string `json:"availableDate" format:"date"`
	CreatedAt     string `json:"createdAt" format:"date-time"`
}

// Statuses lists the donation statuses in display order. Aggregates zero-fill
// their buckets from this.
func Statuses() []DonationStatus {
	return []DonationStatus{StatusPending, StatusCollected, StatusDistributed}
}

// Priorities lists the need priorities in display order.
func Priorities() []NeedPriority {
	return []NeedPriority{PriorityHigh, PriorityMedium, PriorityLow}
}

func ValidStatus(s DonationStatus) bool {
	switch s {
	case StatusPending, StatusCollected, StatusDistributed:
		return true
	}
	return false
}

func ValidPriority(p NeedPriority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// EnsureStatusTransition validates the donation lifecycle. Pickups advance
// pending -> collected -> distributed; distributed is terminal and nothing
// moves backwards or skips a step.
func EnsureStatusTransition(oldStatus, newStatus DonationStatus) error {
	switch oldStatus {
	case StatusPending:
		if newStatus == StatusCollected {
			return nil
		}
	case StatusCollected:
		if newStatus == StatusDistributed {
			return nil
		}
	}
	return fmt.Errorf("invalid donation status transition %s -> %s", oldStatus, newStatus)
}

// NextStatus returns the single legal forward move, or "" when terminal.
func NextStatus(s DonationStatus) DonationStatus {
	switch s {
	case StatusPending:
		return StatusCollected
	case StatusCollected:
		return StatusDistributed
	}
	return ""
}
