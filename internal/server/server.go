// Package server exposes the record store over a local JSON API. It is a
// thin presentation layer: every handler reads snapshots or calls the store
// operations and recomputes aggregates per request.
package server

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	appcfg "mealbridge/internal/config"
	"mealbridge/internal/domain"
	"mealbridge/internal/events"
	"mealbridge/internal/stats"
	"mealbridge/internal/store"
)

// Config for the HTTP API handler.
type Config struct {
	Store    *store.Store
	Events   events.Writer
	App      *appcfg.Config
	BasePath string
}

// New returns an HTTP handler exposing the MealBridge API.
func New(cfg Config) (http.Handler, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/v0"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if cfg.App == nil {
		cfg.App = appcfg.Default()
	}

	router := chi.NewRouter()
	hcfg := huma.DefaultConfig("MealBridge API", "0.1.0")
	hcfg.OpenAPIPath = "/openapi"
	api := humachi.New(router, hcfg)
	group := huma.NewGroup(api, basePath)

	registerHealth(group)
	registerDashboard(group, cfg.Store, cfg.App)
	registerDonations(group, cfg.Store)
	registerNeeds(group, cfg.Store)
	registerVolunteers(group, cfg.Store)
	registerEvents(group, cfg.Events)

	return router, nil
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string `json:"body"`
	}, error) {
		return &struct {
			Body map[string]string `json:"body"`
		}{Body: map[string]string{"status": "ok"}}, nil
	})
}

func registerDashboard(api huma.API, s *store.Store, app *appcfg.Config) {
	huma.Register(api, huma.Operation{
		OperationID: "dashboard",
		Method:      http.MethodGet,
		Path:        "/dashboard",
		Summary:     "Dashboard summary and trends",
	}, func(ctx context.Context, _ *struct{}) (*dashboardOutput, error) {
		donations := s.Donations()
		needs := s.UrgentNeeds()
		now := s.Now()

		recent := donations
		if len(recent) > app.Dashboard.Recent {
			recent = recent[:app.Dashboard.Recent]
		}
		var open []domain.UrgentNeed
		for _, n := range needs {
			if !n.Fulfilled {
				open = append(open, n)
			}
			if len(open) == app.Dashboard.Recent {
				break
			}
		}

		out := &dashboardOutput{}
		out.Body.Organization = app.Organization
		out.Body.Summary = stats.Summarize(donations, needs, now, app.Expiry.WarningDays)
		out.Body.StatusDistribution = stats.StatusDistribution(donations)
		out.Body.PriorityDistribution = stats.PriorityDistribution(needs)
		out.Body.FoodTypes = stats.FoodTypeHistogram(donations)
		out.Body.WeeklyTrend = stats.WeeklyTrend(donations, now)
		out.Body.MonthlyTrend = stats.MonthlyTrend(donations, needs, now)
		out.Body.RecentDonations = recent
		out.Body.OpenNeeds = open
		return out, nil
	})
}

func registerDonations(api huma.API, s *store.Store) {
	huma.Register(api, huma.Operation{
		OperationID: "list-donations",
		Method:      http.MethodGet,
		Path:        "/donations",
		Summary:     "List donations, newest first",
	}, func(ctx context.Context, _ *struct{}) (*donationListOutput, error) {
		out := &donationListOutput{}
		out.Body.Items = s.Donations()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-donation",
		Method:        http.MethodPost,
		Path:          "/donations",
		Summary:       "Record a donation",
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *createDonationInput) (*donationOutput, error) {
		d, err := s.AddDonation(ctx, store.DonationDraft{
			DonorName:    input.Body.DonorName,
			DonorContact: input.Body.DonorContact,
			FoodType:     input.Body.FoodType,
			Quantity:     input.Body.Quantity,
			Unit:         input.Body.Unit,
			ExpiryDate:   input.Body.ExpiryDate,
			Status:       input.Body.Status,
			Location:     input.Body.Location,
			Notes:        input.Body.Notes,
		})
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return &donationOutput{Body: d}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-donation-status",
		Method:      http.MethodPost,
		Path:        "/donations/{id}/status",
		Summary:     "Advance a donation's pickup status",
	}, func(ctx context.Context, input *updateStatusInput) (*donationOutput, error) {
		donations := s.Donations()
		idx := slices.IndexFunc(donations, func(d domain.Donation) bool { return d.ID == input.ID })
		if idx < 0 {
			return nil, huma.Error404NotFound("donation not found")
		}
		if err := s.UpdateDonationStatus(ctx, input.ID, input.Body.Status); err != nil {
			return nil, huma.Error409Conflict(err.Error())
		}
		updated := donations[idx]
		updated.Status = input.Body.Status
		return &donationOutput{Body: updated}, nil
	})
}

func registerNeeds(api huma.API, s *store.Store) {
	huma.Register(api, huma.Operation{
		OperationID: "list-needs",
		Method:      http.MethodGet,
		Path:        "/needs",
		Summary:     "List urgent needs, newest first",
	}, func(ctx context.Context, _ *struct{}) (*needListOutput, error) {
		out := &needListOutput{}
		out.Body.Items = s.UrgentNeeds()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-need",
		Method:        http.MethodPost,
		Path:          "/needs",
		Summary:       "Record an urgent need",
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *createNeedInput) (*needOutput, error) {
		n, err := s.AddUrgentNeed(ctx, store.NeedDraft{
			Title:       input.Body.Title,
			Description: input.Body.Description,
			Quantity:    input.Body.Quantity,
			Unit:        input.Body.Unit,
			Priority:    input.Body.Priority,
			Deadline:    input.Body.Deadline,
			Location:    input.Body.Location,
		})
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return &needOutput{Body: n}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "toggle-need",
		Method:      http.MethodPost,
		Path:        "/needs/{id}/toggle",
		Summary:     "Toggle a need's fulfillment flag",
	}, func(ctx context.Context, input *idPathInput) (*needOutput, error) {
		n, ok := s.ToggleNeedFulfillment(ctx, input.ID)
		if !ok {
			return nil, huma.Error404NotFound("urgent need not found")
		}
		return &needOutput{Body: n}, nil
	})
}

func registerVolunteers(api huma.API, s *store.Store) {
	huma.Register(api, huma.Operation{
		OperationID: "list-volunteers",
		Method:      http.MethodGet,
		Path:        "/volunteers",
		Summary:     "List volunteer signups, newest first",
	}, func(ctx context.Context, _ *struct{}) (*volunteerListOutput, error) {
		out := &volunteerListOutput{}
		out.Body.Items = s.Volunteers()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-volunteer",
		Method:        http.MethodPost,
		Path:          "/volunteers",
		Summary:       "Record a volunteer signup",
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *createVolunteerInput) (*volunteerOutput, error) {
		v, err := s.AddVolunteer(ctx, store.VolunteerDraft{
			VolunteerName: input.Body.VolunteerName,
			Contact:       input.Body.Contact,
			AvailableDate: input.Body.AvailableDate,
		})
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return &volunteerOutput{Body: v}, nil
	})
}

func registerEvents(api huma.API, w events.Writer) {
	huma.Register(api, huma.Operation{
		OperationID: "list-events",
		Method:      http.MethodGet,
		Path:        "/events",
		Summary:     "Recent activity log entries",
	}, func(ctx context.Context, input *eventsInput) (*eventListOutput, error) {
		items, err := w.Tail(ctx, input.Limit)
		if err != nil {
			return nil, huma.Error500InternalServerError("read events", err)
		}
		out := &eventListOutput{}
		out.Body.Items = items
		return out, nil
	})
}
