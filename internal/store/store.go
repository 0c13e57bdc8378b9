// Package store owns the three record collections for the lifetime of the
// process. Every mutation updates memory first and then writes the whole
// collection through to its durable slot; persistence failures never roll a
// mutation back.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mealbridge/internal/domain"
	"mealbridge/internal/events"
	"mealbridge/internal/seed"
	"mealbridge/internal/storage"
)

type Store struct {
	Slots  *storage.Slots
	Events events.Writer
	Log    logrus.FieldLogger
	Now    func() time.Time

	mu         sync.Mutex
	donations  []domain.Donation
	needs      []domain.UrgentNeed
	volunteers []domain.Volunteer
}

// Open loads each collection from its slot. Empty or unreadable slots fall
// back to the seed records so a first run is never empty; adopted seeds are
// written through immediately.
func Open(ctx context.Context, slots *storage.Slots, ev events.Writer) *Store {
	s := &Store{Slots: slots, Events: ev, Now: time.Now}

	s.donations = storage.Load(ctx, slots, storage.KeyDonations, []domain.Donation{})
	if len(s.donations) == 0 {
		s.donations = seed.Donations()
		slots.Save(ctx, storage.KeyDonations, s.donations)
	}
	s.needs = storage.Load(ctx, slots, storage.KeyUrgentNeeds, []domain.UrgentNeed{})
	if len(s.needs) == 0 {
		s.needs = seed.UrgentNeeds()
		slots.Save(ctx, storage.KeyUrgentNeeds, s.needs)
	}
	s.volunteers = storage.Load(ctx, slots, storage.KeyVolunteers, []domain.Volunteer{})
	if len(s.volunteers) == 0 {
		s.volunteers = seed.Volunteers()
		slots.Save(ctx, storage.KeyVolunteers, s.volunteers)
	}
	return s
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Store) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	return logrus.StandardLogger()
}

// Snapshots. Callers get copies; records are immutable by replacement.

func (s *Store) Donations() []domain.Donation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.donations)
}

func (s *Store) UrgentNeeds() []domain.UrgentNeed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.needs)
}

func (s *Store) Volunteers() []domain.Volunteer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.volunteers)
}

// DonationDraft carries the caller-supplied fields for a new donation.
// ID and CreatedAt are assigned by the store.
type DonationDraft struct {
	DonorName    string
	DonorContact string
	FoodType     string
	Quantity     float64
	Unit         string
	ExpiryDate   string
	Status       domain.DonationStatus
	Location     string
	Notes        string
}

type NeedDraft struct {
	Title       string
	Description string
	Quantity    float64
	Unit        string
	Priority    domain.NeedPriority
	Deadline    string
	Location    string
}

type VolunteerDraft struct {
	VolunteerName string
	Contact       string
	AvailableDate string
}

func (s *Store) AddDonation(ctx context.Context, draft DonationDraft) (domain.Donation, error) {
	if draft.DonorName == "" {
		return domain.Donation{}, errors.New("donor name is required")
	}
	if draft.FoodType == "" {
		return domain.Donation{}, errors.New("food type is required")
	}
	status := draft.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !domain.ValidStatus(status) {
		return domain.Donation{}, fmt.Errorf("unknown donation status %q", status)
	}
	d := domain.Donation{
		ID:           uuid.NewString(),
		DonorName:    draft.DonorName,
		DonorContact: draft.DonorContact,
		FoodType:     draft.FoodType,
		Quantity:     max(draft.Quantity, 0),
		Unit:         draft.Unit,
		ExpiryDate:   draft.ExpiryDate,
		Status:       status,
		Location:     draft.Location,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
		Notes:        draft.Notes,
	}

	s.mu.Lock()
	s.donations = append([]domain.Donation{d}, s.donations...)
	snapshot := slices.Clone(s.donations)
	s.mu.Unlock()

	s.Slots.Save(ctx, storage.KeyDonations, snapshot)
	s.appendEvent(ctx, "donation.created", "donation", d.ID, events.EventPayload{
		"donorName": d.DonorName,
		"foodType":  d.FoodType,
		"status":    string(d.Status),
	})
	return d, nil
}

func (s *Store) AddUrgentNeed(ctx context.Context, draft NeedDraft) (domain.UrgentNeed, error) {
	if draft.Title == "" {
		return domain.UrgentNeed{}, errors.New("title is required")
	}
	priority := draft.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return domain.UrgentNeed{}, fmt.Errorf("unknown need priority %q", priority)
	}
	n := domain.UrgentNeed{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Quantity:    max(draft.Quantity, 0),
		Unit:        draft.Unit,
		Priority:    priority,
		Deadline:    draft.Deadline,
		Location:    draft.Location,
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
		Fulfilled:   false,
	}

	s.mu.Lock()
	s.needs = append([]domain.UrgentNeed{n}, s.needs...)
	snapshot := slices.Clone(s.needs)
	s.mu.Unlock()

	s.Slots.Save(ctx, storage.KeyUrgentNeeds, snapshot)
	s.appendEvent(ctx, "need.created", "need", n.ID, events.EventPayload{
		"title":    n.Title,
		"priority": string(n.Priority),
	})
	return n, nil
}

func (s *Store) AddVolunteer(ctx context.Context, draft VolunteerDraft) (domain.Volunteer, error) {
	if draft.VolunteerName == "" {
		return domain.Volunteer{}, errors.New("volunteer name is required")
	}
	v := domain.Volunteer{
		ID:            uuid.NewString(),
		VolunteerName: draft.VolunteerName,
		Contact:       draft.Contact,
		AvailableDate: draft.AvailableDate,
		CreatedAt:     s.now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.volunteers = append([]domain.Volunteer{v}, s.volunteers...)
	snapshot := slices.Clone(s.volunteers)
	s.mu.Unlock()

	s.Slots.Save(ctx, storage.KeyVolunteers, snapshot)
	s.appendEvent(ctx, "volunteer.created", "volunteer", v.ID, events.EventPayload{
		"volunteerName": v.VolunteerName,
	})
	return v, nil
}

// UpdateDonationStatus replaces only the status of the matching donation,
// keeping its position. Unknown ids are a silent no-op; the intended flow
// never produces one. Illegal lifecycle moves are rejected.
func (s *Store) UpdateDonationStatus(ctx context.Context, id string, status domain.DonationStatus) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("unknown donation status %q", status)
	}

	s.mu.Lock()
	idx := slices.IndexFunc(s.donations, func(d domain.Donation) bool { return d.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	old := s.donations[idx].Status
	if err := domain.EnsureStatusTransition(old, status); err != nil {
		s.mu.Unlock()
		return err
	}
	s.donations[idx].Status = status
	snapshot := slices.Clone(s.donations)
	s.mu.Unlock()

	s.Slots.Save(ctx, storage.KeyDonations, snapshot)
	s.appendEvent(ctx, "donation.status_changed", "donation", id, events.EventPayload{
		"from": string(old),
		"to":   string(status),
	})
	return nil
}

// ToggleNeedFulfillment flips the fulfilled flag in either direction. The
// second return reports whether the id matched anything.
func (s *Store) ToggleNeedFulfillment(ctx context.Context, id string) (domain.UrgentNeed, bool) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.needs, func(n domain.UrgentNeed) bool { return n.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return domain.UrgentNeed{}, false
	}
	s.needs[idx].Fulfilled = !s.needs[idx].Fulfilled
	n := s.needs[idx]
	snapshot := slices.Clone(s.needs)
	s.mu.Unlock()

	s.Slots.Save(ctx, storage.KeyUrgentNeeds, snapshot)
	s.appendEvent(ctx, "need.toggled", "need", id, events.EventPayload{
		"fulfilled": n.Fulfilled,
	})
	return n, true
}

func (s *Store) appendEvent(ctx context.Context, evtType, kind, id string, payload events.EventPayload) {
	if s.Events.DB == nil {
		return
	}
	if err := s.Events.Append(ctx, evtType, kind, id, payload); err != nil {
		s.logger().WithError(err).WithField("type", evtType).Warn("event append failed")
	}
}
