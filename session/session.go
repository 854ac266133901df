// Package session persists per-user client state between requests: the
// signed-in user record and one-shot hints such as "an event was just
// created". Records are sealed before they reach the backend.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boothbuzz-admin/codec"
	"boothbuzz-admin/logger"
	"boothbuzz-admin/model"
)

var ErrNotFound = errors.New("session record not found")

const (
	userKey         = "boothbuzz:session:user:%s"
	eventCreatedKey = "boothbuzz:session:hint:event_created:%s"
)

// Backend is a string key/value store with expiry.
type Backend interface {
	Set(key, value string, ttl time.Duration) error
	// Get returns ErrNotFound for a missing key.
	Get(key string) (string, error)
	// Take reads and deletes key in one step. Missing keys return ErrNotFound.
	Take(key string) (string, error)
	Del(key string) error
}

type Store struct {
	backend Backend
	key     []byte
	ttl     time.Duration
}

// New returns a Store sealing records with key (16, 24 or 32 bytes).
func New(backend Backend, key []byte, ttl time.Duration) *Store {
	return &Store{backend: backend, key: key, ttl: ttl}
}

func (s *Store) SaveUser(ctx context.Context, u *model.User) error {
	sealed, err := codec.Seal(s.key, u)
	if err != nil {
		return fmt.Errorf("SaveUser: %w", err)
	}
	if err := s.backend.Set(fmt.Sprintf(userKey, u.ID), sealed, s.ttl); err != nil {
		return fmt.Errorf("SaveUser: error saving session for %s: %w", u.ID, err)
	}
	return nil
}

// LoadUser returns ErrNotFound when the user signed out or the record expired.
func (s *Store) LoadUser(ctx context.Context, userID string) (*model.User, error) {
	sealed, err := s.backend.Get(fmt.Sprintf(userKey, userID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("LoadUser: %w", err)
	}

	var u model.User
	if err := codec.Open(s.key, sealed, &u); err != nil {
		logger.Warnf(ctx, "LoadUser: discarding unreadable session for %s: %v", userID, err)
		return nil, ErrNotFound
	}
	return &u, nil
}

// Clear removes the user record and any pending hints.
func (s *Store) Clear(ctx context.Context, userID string) error {
	for _, k := range []string{fmt.Sprintf(userKey, userID), fmt.Sprintf(eventCreatedKey, userID)} {
		if err := s.backend.Del(k); err != nil {
			return fmt.Errorf("Clear: %w", err)
		}
	}
	return nil
}

func (s *Store) MarkEventCreated(ctx context.Context, userID string) error {
	if err := s.backend.Set(fmt.Sprintf(eventCreatedKey, userID), "1", s.ttl); err != nil {
		return fmt.Errorf("MarkEventCreated: %w", err)
	}
	return nil
}

// TakeEventCreated reports whether the hint was set and clears it, so a
// second call returns false.
func (s *Store) TakeEventCreated(ctx context.Context, userID string) (bool, error) {
	_, err := s.backend.Take(fmt.Sprintf(eventCreatedKey, userID))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("TakeEventCreated: %w", err)
	}
	return true, nil
}
