// Package statedb persists the partial client-state snapshot across process
// restarts. Only the projections declared here are ever written; transient
// fields (loading, errors, modal flags, the bearer token) never touch disk.
package statedb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/hrboard/client/domain"
)

var (
	bucketSession = []byte("session")
	bucketUI      = []byte("ui")
	bucketProfile = []byte("profile")

	keySnapshot = []byte("current")
)

// Store wraps BoltDB to hold the persisted state snapshot.
type Store struct {
	db *bolt.DB
}

// Open initializes the BoltDB file and ensures all buckets exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSession, bucketUI, bucketProfile} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

type uiSnapshot struct {
	SidebarOpen bool `json:"sidebarOpen"`
}

type profileSnapshot struct {
	Preferences domain.Preferences `json:"preferences"`
}

// SaveSession writes the session projection {user, isAuthenticated, rememberMe}.
func (s *Store) SaveSession(session domain.Session) error {
	return s.save(bucketSession, session)
}

// LoadSession returns the persisted session; found is false on first run.
func (s *Store) LoadSession() (*domain.Session, bool, error) {
	var session domain.Session
	found, err := s.load(bucketSession, &session)
	if err != nil || !found {
		return nil, false, err
	}
	return &session, true, nil
}

// ClearSession removes the session projection. Safe when nothing is stored.
func (s *Store) ClearSession() error {
	return s.clear(bucketSession)
}

func (s *Store) SaveSidebar(open bool) error {
	return s.save(bucketUI, uiSnapshot{SidebarOpen: open})
}

func (s *Store) LoadSidebar() (open, found bool, err error) {
	var snap uiSnapshot
	found, err = s.load(bucketUI, &snap)
	return snap.SidebarOpen, found, err
}

func (s *Store) SavePreferences(prefs domain.Preferences) error {
	return s.save(bucketProfile, profileSnapshot{Preferences: prefs})
}

func (s *Store) LoadPreferences() (*domain.Preferences, bool, error) {
	var snap profileSnapshot
	found, err := s.load(bucketProfile, &snap)
	if err != nil || !found {
		return nil, false, err
	}
	return &snap.Preferences, true, nil
}

// Reset drops every stored snapshot. Idempotent.
func (s *Store) Reset() error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSession, bucketUI, bucketProfile} {
			if err := tx.Bucket(bucket).Delete(keySnapshot); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) save(bucket []byte, v any) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put(keySnapshot, payload)
	})
}

func (s *Store) load(bucket []byte, out any) (bool, error) {
	if s == nil || s.db == nil {
		return false, bolt.ErrDatabaseNotOpen
	}
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get(keySnapshot); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || raw == nil {
		return false, err
	}
	return true, json.Unmarshal(raw, out)
}

func (s *Store) clear(bucket []byte) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete(keySnapshot)
	})
}
