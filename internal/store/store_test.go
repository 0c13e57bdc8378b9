package store_test

import (
	"context"
	"testing"
	"time"

	"mealbridge/internal/db"
	"mealbridge/internal/domain"
	"mealbridge/internal/events"
	"mealbridge/internal/migrate"
	"mealbridge/internal/storage"
	"mealbridge/internal/store"
)

type testEnv struct {
	Store *store.Store
	Slots *storage.Slots
	Ctx   context.Context
	open  func() *store.Store
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	conn, err := db.Open(db.Config{Workspace: dir})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx := context.Background()
	slots := storage.New(conn, nil)
	clock := func() time.Time { return time.Date(2025, 7, 2, 12, 0, 0, 0, time.UTC) }
	open := func() *store.Store {
		s := store.Open(ctx, slots, events.Writer{DB: conn, Now: clock})
		s.Now = clock
		return s
	}
	return testEnv{Store: open(), Slots: slots, Ctx: ctx, open: open}
}

func TestFirstRunUsesSeedRecords(t *testing.T) {
	env := newTestEnv(t)
	if got := len(env.Store.Donations()); got != 4 {
		t.Fatalf("expected 4 seed donations, got %d", got)
	}
	if got := len(env.Store.UrgentNeeds()); got != 4 {
		t.Fatalf("expected 4 seed needs, got %d", got)
	}
	if got := len(env.Store.Volunteers()); got != 1 {
		t.Fatalf("expected 1 seed volunteer, got %d", got)
	}
	// Adopted seeds are written through: a second store over the same slots
	// must not re-seed but read them back.
	reopened := env.open()
	if got := len(reopened.Donations()); got != 4 {
		t.Fatalf("expected 4 donations after reopen, got %d", got)
	}
}

func TestAddDonationPrependsAndPersists(t *testing.T) {
	env := newTestEnv(t)
	d, err := env.Store.AddDonation(env.Ctx, store.DonationDraft{
		DonorName: "Corner Grocers",
		FoodType:  "Lentils",
		Quantity:  25,
		Unit:      "kg",
	})
	if err != nil {
		t.Fatalf("add donation: %v", err)
	}
	if d.ID == "" {
		t.Fatal("expected assigned id")
	}
	if d.CreatedAt != "2025-07-02T12:00:00Z" {
		t.Fatalf("unexpected createdAt %s", d.CreatedAt)
	}
	if d.Status != domain.StatusPending {
		t.Fatalf("expected default pending status, got %s", d.Status)
	}
	donations := env.Store.Donations()
	if len(donations) != 5 {
		t.Fatalf("expected 5 donations, got %d", len(donations))
	}
	if donations[0].ID != d.ID {
		t.Fatalf("expected new donation at index 0, got %s", donations[0].ID)
	}
	reopened := env.open()
	if got := reopened.Donations(); len(got) != 5 || got[0].ID != d.ID {
		t.Fatalf("expected persisted collection of 5 with new first, got %d", len(got))
	}
}

func TestBackToBackCreatesDoNotCollide(t *testing.T) {
	env := newTestEnv(t)
	a, err := env.Store.AddDonation(env.Ctx, store.DonationDraft{DonorName: "A", FoodType: "Rice"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := env.Store.AddDonation(env.Ctx, store.DonationDraft{DonorName: "B", FoodType: "Rice"})
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Fatalf("colliding ids: %s", a.ID)
	}
}

func TestAddDonationValidation(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.Store.AddDonation(env.Ctx, store.DonationDraft{FoodType: "Rice"}); err == nil {
		t.Fatal("expected error for missing donor name")
	}
	if _, err := env.Store.AddDonation(env.Ctx, store.DonationDraft{DonorName: "A"}); err == nil {
		t.Fatal("expected error for missing food type")
	}
	if _, err := env.Store.AddDonation(env.Ctx, store.DonationDraft{DonorName: "A", FoodType: "Rice", Status: "lost"}); err == nil {
		t.Fatal("expected error for unknown status")
	}
	d, err := env.Store.AddDonation(env.Ctx, store.DonationDraft{DonorName: "A", FoodType: "Rice", Quantity: -5})
	if err != nil {
		t.Fatal(err)
	}
	if d.Quantity != 0 {
		t.Fatalf("expected negative quantity clamped to 0, got %g", d.Quantity)
	}
}

func TestUpdateDonationStatusChangesOnlyStatus(t *testing.T) {
	env := newTestEnv(t)
	before := env.Store.Donations()
	// Seed donation "1" is pending.
	if err := env.Store.UpdateDonationStatus(env.Ctx, "1", domain.StatusCollected); err != nil {
		t.Fatalf("update status: %v", err)
	}
	after := env.Store.Donations()
	if len(after) != len(before) {
		t.Fatalf("collection size changed: %d -> %d", len(before), len(after))
	}
	for i := range after {
		want := before[i]
		got := after[i]
		if want.ID == "1" {
			if got.Status != domain.StatusCollected {
				t.Fatalf("expected collected, got %s", got.Status)
			}
			want.Status = domain.StatusCollected
		}
		if got != want {
			t.Fatalf("record %s changed beyond status: %+v != %+v", want.ID, got, want)
		}
	}
}

func TestDonationStatusMachine(t *testing.T) {
	env := newTestEnv(t)
	// forward path
	if err := env.Store.UpdateDonationStatus(env.Ctx, "1", domain.StatusCollected); err != nil {
		t.Fatalf("pending -> collected: %v", err)
	}
	if err := env.Store.UpdateDonationStatus(env.Ctx, "1", domain.StatusDistributed); err != nil {
		t.Fatalf("collected -> distributed: %v", err)
	}
	// distributed is terminal
	if err := env.Store.UpdateDonationStatus(env.Ctx, "1", domain.StatusPending); err == nil {
		t.Fatal("expected error leaving distributed")
	}
	// no skipping: seed donation "4" is pending
	if err := env.Store.UpdateDonationStatus(env.Ctx, "4", domain.StatusDistributed); err == nil {
		t.Fatal("expected error for pending -> distributed")
	}
	// no regression: seed donation "2" is collected
	if err := env.Store.UpdateDonationStatus(env.Ctx, "2", domain.StatusPending); err == nil {
		t.Fatal("expected error for collected -> pending")
	}
}

func TestUpdateDonationStatusUnknownIDIsNoop(t *testing.T) {
	env := newTestEnv(t)
	before := env.Store.Donations()
	if err := env.Store.UpdateDonationStatus(env.Ctx, "no-such-id", domain.StatusCollected); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	after := env.Store.Donations()
	for i := range after {
		if after[i] != before[i] {
			t.Fatalf("collection changed on unknown id")
		}
	}
}

func TestToggleNeedFulfillmentIsItsOwnInverse(t *testing.T) {
	env := newTestEnv(t)
	needs := env.Store.UrgentNeeds()
	original := needs[len(needs)-1] // oldest seed need
	n, ok := env.Store.ToggleNeedFulfillment(env.Ctx, original.ID)
	if !ok {
		t.Fatalf("need %s not found", original.ID)
	}
	if n.Fulfilled == original.Fulfilled {
		t.Fatal("expected fulfilled flag to flip")
	}
	n, ok = env.Store.ToggleNeedFulfillment(env.Ctx, original.ID)
	if !ok || n.Fulfilled != original.Fulfilled {
		t.Fatal("expected double toggle to restore original value")
	}
	if _, ok := env.Store.ToggleNeedFulfillment(env.Ctx, "no-such-id"); ok {
		t.Fatal("expected unknown id to report not found")
	}
}

func TestMutationsAppendActivityEvents(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.Store.AddVolunteer(env.Ctx, store.VolunteerDraft{VolunteerName: "Meera"}); err != nil {
		t.Fatal(err)
	}
	env.Store.ToggleNeedFulfillment(env.Ctx, "1")
	entries, err := env.Store.Events.Tail(env.Ctx, 10)
	if err != nil {
		t.Fatalf("tail events: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 events, got %d", len(entries))
	}
	if entries[0].Type != "need.toggled" || entries[1].Type != "volunteer.created" {
		t.Fatalf("unexpected event order: %s, %s", entries[0].Type, entries[1].Type)
	}
}
