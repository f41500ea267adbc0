package blogicum

import (
	"context"
	"errors"
	"fmt"

	"github.com/daniilsolovey/blogicum/internal/db"
	"golang.org/x/crypto/bcrypt"
)

const usernameTaken = "A user with that username already exists."

// UserByID returns nil when the user does not exist.
func (m *Manager) UserByID(ctx context.Context, userID int) (*User, error) {
	user, err := m.db.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("db get user: %w", err)
	} else if user == nil {
		return nil, nil
	}

	result := NewUser(user)
	return &result, nil
}

func (m *Manager) UpdateProfile(ctx context.Context, userID int, in ProfileInput) (*User, error) {
	user, err := m.db.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("db get user: %w", err)
	} else if user == nil {
		return nil, ErrNotFound
	}

	taken, err := m.db.UsernameTaken(ctx, in.Username, user.ID)
	if err != nil {
		return nil, fmt.Errorf("db check username: %w", err)
	} else if taken {
		return nil, newValidationError("username", usernameTaken)
	}

	user.Username = in.Username
	user.Email = in.Email
	user.FirstName = in.FirstName
	user.LastName = in.LastName

	err = m.db.UpdateUser(ctx, user,
		db.Columns.User.Username,
		db.Columns.User.Email,
		db.Columns.User.FirstName,
		db.Columns.User.LastName,
	)
	if err != nil {
		return nil, fmt.Errorf("db update user: %w", err)
	}

	result := NewUser(user)
	return &result, nil
}

// Register creates a user with an empty profile in one transaction.
func (m *Manager) Register(ctx context.Context, in Registration) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &db.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}

	err = m.db.RunInTransaction(ctx, func(tx *db.Repository) error {
		taken, err := tx.UsernameTaken(ctx, in.Username, 0)
		if err != nil {
			return fmt.Errorf("db check username: %w", err)
		} else if taken {
			return newValidationError("username", usernameTaken)
		}

		if err := tx.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("db create user: %w", err)
		}

		profile := &db.Profile{UserID: user.ID, Bio: in.Bio}
		if err := tx.CreateProfile(ctx, profile); err != nil {
			return fmt.Errorf("db create profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result := NewUser(user)
	return &result, nil
}

// Authenticate returns the user whose password matches or ErrInvalidCredentials.
func (m *Manager) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := m.db.UserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("db get user: %w", err)
	} else if user == nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}

	result := NewUser(user)
	return &result, nil
}

func (m *Manager) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	user, err := m.db.UserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("db get user: %w", err)
	} else if user == nil {
		return ErrNotFound
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return newValidationError("old_password", "Your old password was entered incorrectly. Please enter it again.")
	} else if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	if err := m.db.UpdateUser(ctx, user, db.Columns.User.PasswordHash); err != nil {
		return fmt.Errorf("db update password: %w", err)
	}

	return nil
}
