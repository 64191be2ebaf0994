// Package store persists device profiles and server-issued session
// tickets between runs, so a restarted client presents the same device
// identity and can resume with cached credentials instead of a full
// password login.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/FurryKamenomi/icqq-dev/pkg/session"
)

var (
	ErrNotFound = errors.New("not found")
)

// Ticket kinds persisted per account.
const (
	TicketTGT   = "tgt"
	TicketD2    = "d2"
	TicketD2Key = "d2key"
	TicketKsid  = "ksid"
	TicketTgtgt = "tgtgt"
)

// Store is a sqlite-backed persistence layer keyed by account id.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open creates or opens the database at path and ensures the schema.
func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS devices (
		uin     INTEGER PRIMARY KEY,
		profile BLOB NOT NULL
	);
	CREATE TABLE IF NOT EXISTS tickets (
		uin        INTEGER NOT NULL,
		kind       TEXT    NOT NULL,
		value      BLOB    NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (uin, kind)
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s := &Store{db: db, log: log.With().Str("component", "store").Logger()}
	s.log.Debug().Str("path", path).Msg("store opened")
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDevice upserts the device profile for an account.
func (s *Store) SaveDevice(uin uint32, d *session.Device) error {
	blob, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding device: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO devices (uin, profile) VALUES (?, ?)
		 ON CONFLICT(uin) DO UPDATE SET profile = excluded.profile`,
		uin, blob,
	)
	if err != nil {
		return fmt.Errorf("saving device: %w", err)
	}
	return nil
}

// Device loads the stored device profile for an account.
func (s *Store) Device(uin uint32) (*session.Device, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT profile FROM devices WHERE uin = ?`, uin).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("device for %d: %w", uin, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading device: %w", err)
	}

	var d session.Device
	if err := json.Unmarshal(blob, &d); err != nil {
		return nil, fmt.Errorf("decoding device: %w", err)
	}
	return &d, nil
}

// SaveTicket upserts one ticket for an account.
func (s *Store) SaveTicket(uin uint32, kind string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO tickets (uin, kind, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(uin, kind) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		uin, kind, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("saving ticket %s: %w", kind, err)
	}
	return nil
}

// Ticket loads one ticket for an account.
func (s *Store) Ticket(uin uint32, kind string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM tickets WHERE uin = ? AND kind = ?`, uin, kind).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ticket %s for %d: %w", kind, uin, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading ticket %s: %w", kind, err)
	}
	return value, nil
}

// SaveSig persists the resumable parts of the signature state.
func (s *Store) SaveSig(sig *session.Sig) error {
	for kind, value := range map[string][]byte{
		TicketTGT:   sig.TGT,
		TicketD2:    sig.D2,
		TicketD2Key: sig.D2Key,
		TicketKsid:  sig.Ksid,
		TicketTgtgt: sig.Tgtgt,
	} {
		if len(value) == 0 {
			continue
		}
		if err := s.SaveTicket(sig.Uin, kind, value); err != nil {
			return err
		}
	}
	s.log.Debug().Uint32("uin", sig.Uin).Msg("session tickets saved")
	return nil
}

// LoadSig restores stored tickets into fresh signature state for an
// account. Missing tickets stay empty.
func (s *Store) LoadSig(uin uint32) (*session.Sig, error) {
	sig := session.NewSig(uin)
	for kind, dst := range map[string]*[]byte{
		TicketTGT:   &sig.TGT,
		TicketD2:    &sig.D2,
		TicketD2Key: &sig.D2Key,
		TicketKsid:  &sig.Ksid,
		TicketTgtgt: &sig.Tgtgt,
	} {
		value, err := s.Ticket(uin, kind)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		*dst = value
	}
	return sig, nil
}
