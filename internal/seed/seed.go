// Package seed holds the first-run demo records. When a storage slot is empty
// at startup the store adopts these instead of presenting an empty list.
package seed

import "mealbridge/internal/domain"

func Donations() []domain.Donation {
	return []domain.Donation{
		{
			ID:           "1",
			DonorName:    "Fresh Market Store",
			DonorContact: "+91 98765 43210",
			FoodType:     "Fresh Vegetables",
			Quantity:     50,
			Unit:         "kg",
			ExpiryDate:   "2025-07-04",
			Status:       domain.StatusPending,
			Location:     "Koramangala, Bangalore",
			CreatedAt:    "2025-07-02T10:30:00Z",
			Notes:        "Mixed seasonal vegetables, good quality",
		},
		{
			ID:           "2",
			DonorName:    "City Bakery",
			DonorContact: "+91 87654 32109",
			FoodType:     "Bread & Pastries",
			Quantity:     100,
			Unit:         "pieces",
			ExpiryDate:   "2025-07-03",
			Status:       domain.StatusCollected,
			Location:     "Indiranagar, Bangalore",
			CreatedAt:    "2025-07-01T15:20:00Z",
			Notes:        "Fresh bread and assorted pastries",
		},
		{
			ID:           "3",
			DonorName:    "Rajesh Restaurant",
			DonorContact: "+91 99887 76543",
			FoodType:     "Cooked Rice",
			Quantity:     30,
			Unit:         "kg",
			ExpiryDate:   "2025-07-03",
			Status:       domain.StatusDistributed,
			Location:     "BTM Layout, Bangalore",
			CreatedAt:    "2025-07-01T12:45:00Z",
			Notes:        "Freshly cooked basmati rice",
		},
		{
			ID:           "4",
			DonorName:    "Metro Supermarket",
			DonorContact: "+91 88776 65432",
			FoodType:     "Canned Foods",
			Quantity:     200,
			Unit:         "pieces",
			ExpiryDate:   "2025-12-31",
			Status:       domain.StatusPending,
			Location:     "Electronic City, Bangalore",
			CreatedAt:    "2025-07-02T08:15:00Z",
			Notes:        "Assorted canned vegetables and fruits",
		},
	}
}

func UrgentNeeds() []domain.UrgentNeed {
	return []domain.UrgentNeed{
		{
			ID:          "1",
			Title:       "Rice for Shelter Residents",
			Description: "Need 200kg rice for 150 residents at homeless shelter",
			Quantity:    200,
			Unit:        "kg",
			Priority:    domain.PriorityHigh,
			Deadline:    "2025-07-05",
			Location:    "Whitefield Shelter, Bangalore",
			CreatedAt:   "2025-07-02T09:00:00Z",
			Fulfilled:   false,
		},
		{
			ID:          "2",
			Title:       "Cooking Oil for Community Kitchen",
			Description: "Urgent need for cooking oil to prepare meals for 300 families",
			Quantity:    20,
			Unit:        "liters",
			Priority:    domain.PriorityMedium,
			Deadline:    "2025-07-06",
			Location:    "Jayanagar Community Center",
			CreatedAt:   "2025-07-01T14:30:00Z",
			Fulfilled:   false,
		},
		{
			ID:          "3",
			Title:       "Fresh Vegetables for Orphanage",
			Description: "Weekly vegetables needed for 80 children at local orphanage",
			Quantity:    100,
			Unit:        "kg",
			Priority:    domain.PriorityHigh,
			Deadline:    "2025-07-04",
			Location:    "Shanti Orphanage, Mysore Road",
			CreatedAt:   "2025-07-02T11:20:00Z",
			Fulfilled:   false,
		},
		{
			ID:          "4",
			Title:       "Milk Powder for Nutrition Center",
			Description: "Monthly supply of milk powder for malnourished children",
			Quantity:    50,
			Unit:        "packets",
			Priority:    domain.PriorityLow,
			Deadline:    "2025-07-10",
			Location:    "Anganwadi Center, Banashankari",
			CreatedAt:   "2025-07-01T16:45:00Z",
			Fulfilled:   true,
		},
	}
}

func Volunteers() []domain.Volunteer {
	return []domain.Volunteer{
		{
			ID:            "1",
			VolunteerName: "Harshil Rathod",
			Contact:       "+91 12345 67890",
			AvailableDate: "2025-07-07",
			CreatedAt:     "2025-07-02T05:20:00Z",
		},
	}
}
