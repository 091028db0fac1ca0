package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"elite_market/internal/models"
)

type ProfileStore struct {
	session *gocql.Session
}

func NewProfileStore(session *gocql.Session) *ProfileStore {
	return &ProfileStore{session: session}
}

func (s *ProfileStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := s.session.Query(`SELECT user_id, email, name, country, created_at FROM profiles WHERE user_id = ?`, userID).
		WithContext(ctx).
		Scan(&p.ID, &p.Email, &p.Name, &p.Country, &p.CreatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, models.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select profile: %w", err)
	}
	return &p, nil
}

// UpsertByEmail returns the profile for an OAuth e-mail, creating it on first login.
func (s *ProfileStore) UpsertByEmail(ctx context.Context, email, name string) (*models.Profile, error) {
	var userID string
	err := s.session.Query(`SELECT user_id FROM profiles_by_email WHERE email = ?`, email).WithContext(ctx).Scan(&userID)
	if err == nil {
		return s.GetProfile(ctx, userID)
	}
	if !errors.Is(err, gocql.ErrNotFound) {
		return nil, fmt.Errorf("select profiles_by_email: %w", err)
	}

	p := &models.Profile{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	batch := s.session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(`INSERT INTO profiles (user_id, email, name, created_at) VALUES (?, ?, ?, ?)`, p.ID, p.Email, p.Name, p.CreatedAt)
	batch.Query(`INSERT INTO profiles_by_email (email, user_id) VALUES (?, ?)`, p.Email, p.ID)
	if err := s.session.ExecuteBatch(batch); err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) SetCountry(ctx context.Context, userID, country string) error {
	if err := s.session.Query(`UPDATE profiles SET country = ? WHERE user_id = ?`, country, userID).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("update profile country: %w", err)
	}
	return nil
}
