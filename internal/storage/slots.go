// Package storage keeps each record collection in a named slot: a single row
// holding the whole collection as one JSON array. The in-memory store stays
// authoritative for the session; slot reads and writes never fail loudly.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// Slot keys. One durable slot per record kind.
const (
	KeyDonations   = "donations"
	KeyUrgentNeeds = "urgentNeeds"
	KeyVolunteers  = "volunteers"
)

type Slots struct {
	DB  *sql.DB
	Log logrus.FieldLogger
	Now func() time.Time
}

func New(db *sql.DB, log logrus.FieldLogger) *Slots {
	return &Slots{DB: db, Log: log, Now: time.Now}
}

func (s *Slots) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	return logrus.StandardLogger()
}

func (s *Slots) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Load reads and decodes a slot. A missing slot, a read failure, or undecodable
// content all yield fallback; failures are logged, never returned.
func Load[T any](ctx context.Context, s *Slots, key string, fallback T) T {
	var raw string
	err := s.DB.QueryRowContext(ctx, `SELECT value FROM slots WHERE key=?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback
	}
	if err != nil {
		s.logger().WithError(err).WithField("slot", key).Warn("slot read failed, using fallback")
		return fallback
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger().WithError(err).WithField("slot", key).Warn("slot decode failed, using fallback")
		return fallback
	}
	return out
}

// Save encodes value and upserts it into the slot. Failures are logged and
// swallowed; the caller's in-memory copy remains the source of truth.
func (s *Slots) Save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger().WithError(err).WithField("slot", key).Warn("slot encode failed, keeping in-memory state only")
		return
	}
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO slots(key,value,updated_at) VALUES (?,?,?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, string(data), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		s.logger().WithError(err).WithField("slot", key).Warn("slot write failed, keeping in-memory state only")
	}
}

// Clear removes the named slots. Unlike Save this reports failure: it only
// runs as an explicit user action.
func (s *Slots) Clear(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := s.DB.ExecContext(ctx, `DELETE FROM slots WHERE key=?`, key); err != nil {
			return err
		}
	}
	return nil
}
