package server

import (
	"mealbridge/internal/domain"
	"mealbridge/internal/events"
	"mealbridge/internal/stats"
)

// Request payloads

type createDonationInput struct {
	Body struct {
		DonorName    string                `json:"donorName"`
		DonorContact string                `json:"donorContact,omitempty"`
		FoodType     string                `json:"foodType"`
		Quantity     float64               `json:"quantity,omitempty" minimum:"0"`
		Unit         string                `json:"unit,omitempty"`
		ExpiryDate   string                `json:"expiryDate,omitempty" format:"date"`
		Status       domain.DonationStatus `json:"status,omitempty" enum:"pending,collected,distributed"`
		Location     string                `json:"location,omitempty"`
		Notes        string                `json:"notes,omitempty"`
	}
}

type createNeedInput struct {
	Body struct {
		Title       string              `json:"title"`
		Description string              `json:"description,omitempty"`
		Quantity    float64             `json:"quantity,omitempty" minimum:"0"`
		Unit        string              `json:"unit,omitempty"`
		Priority    domain.NeedPriority `json:"priority,omitempty" enum:"high,medium,low"`
		Deadline    string              `json:"deadline,omitempty" format:"date"`
		Location    string              `json:"location,omitempty"`
	}
}

type createVolunteerInput struct {
	Body struct {
		VolunteerName string `json:"volunteerName"`
		Contact       string `json:"contact,omitempty"`
		AvailableDate string `json:"availableDate,omitempty" format:"date"`
	}
}

type updateStatusInput struct {
	ID   string `path:"id"`
	Body struct {
		Status domain.DonationStatus `json:"status" enum:"pending,collected,distributed"`
	}
}

type idPathInput struct {
	ID string `path:"id"`
}

type eventsInput struct {
	Limit int `query:"limit" default:"20" minimum:"1" maximum:"500"`
}

// Response payloads

type donationOutput struct {
	Body domain.Donation
}

type donationListOutput struct {
	Body struct {
		Items []domain.Donation `json:"items"`
	}
}

type needOutput struct {
	Body domain.UrgentNeed
}

type needListOutput struct {
	Body struct {
		Items []domain.UrgentNeed `json:"items"`
	}
}

type volunteerOutput struct {
	Body domain.Volunteer
}

type volunteerListOutput struct {
	Body struct {
		Items []domain.Volunteer `json:"items"`
	}
}

type eventListOutput struct {
	Body struct {
		Items []events.Event `json:"items"`
	}
}

type dashboardOutput struct {
	Body struct {
		Organization         string              `json:"organization"`
		Summary              stats.Summary       `json:"summary"`
		StatusDistribution   []stats.Bucket      `json:"statusDistribution"`
		PriorityDistribution []stats.Bucket      `json:"priorityDistribution"`
		FoodTypes            []stats.Bucket      `json:"foodTypes"`
		WeeklyTrend          []stats.DayPoint    `json:"weeklyTrend"`
		MonthlyTrend         []stats.MonthPoint  `json:"monthlyTrend"`
		RecentDonations      []domain.Donation   `json:"recentDonations"`
		OpenNeeds            []domain.UrgentNeed `json:"openNeeds"`
	}
}
