package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"
)

func (r *Repository) UserByID(ctx context.Context, userID int) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`"t"."userId" = ?`, userID).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *Repository) UserByUsername(ctx context.Context, username string) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`"t"."username" = ?`, username).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// UsernameTaken reports whether another user (not exceptUserID) owns the username.
func (r *Repository) UsernameTaken(ctx context.Context, username string, exceptUserID int) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*User)(nil)).
		Where(`"t"."username" = ?`, username).
		Where(`"t"."userId" <> ?`, exceptUserID).
		Exists()
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}

	return exists, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *User) error {
	if _, err := r.db.ModelContext(ctx, user).Insert(); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// UpdateUser stores only the listed columns of the user.
func (r *Repository) UpdateUser(ctx context.Context, user *User, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}

	_, err := r.db.ModelContext(ctx, user).
		Column(columns...).
		WherePK().
		Update()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func (r *Repository) ProfileByUserID(ctx context.Context, userID int) (*Profile, error) {
	profile := &Profile{}
	err := r.db.ModelContext(ctx, profile).
		Where(`"t"."userId" = ?`, userID).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

func (r *Repository) CreateProfile(ctx context.Context, profile *Profile) error {
	if _, err := r.db.ModelContext(ctx, profile).Insert(); err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}
