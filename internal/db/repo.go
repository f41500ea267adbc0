package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"
)

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// RunInTransaction executes fn against a repository bound to a single transaction.
// When the repository is already bound to a transaction the same transaction is reused.
func (r *Repository) RunInTransaction(ctx context.Context, fn func(tx *Repository) error) error {
	if _, ok := r.db.(*pg.Tx); ok {
		return fn(r)
	}

	return r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		return fn(New(tx))
	})
}

func (r *Repository) CategoryBySlug(ctx context.Context, slug string, onlyPublished bool) (*Category, error) {
	category := &Category{}
	query := r.db.ModelContext(ctx, category).
		Where(`"t"."slug" = ?`, slug)

	if onlyPublished {
		query = query.Where(`"t"."isPublished" = TRUE`)
	}

	err := query.Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}

	return category, nil
}

func (r *Repository) CategoryByID(ctx context.Context, categoryID int) (*Category, error) {
	category := &Category{}
	err := r.db.ModelContext(ctx, category).
		Where(`"t"."categoryId" = ?`, categoryID).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return category, nil
}

func (r *Repository) Categories(ctx context.Context, onlyPublished bool) ([]Category, error) {
	var categories []Category
	query := r.db.ModelContext(ctx, &categories)

	if onlyPublished {
		query = query.Where(`"t"."isPublished" = TRUE`)
	}

	err := query.
		OrderExpr(`"t"."title" ASC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	return categories, nil
}

func (r *Repository) CreateCategory(ctx context.Context, category *Category) error {
	if _, err := r.db.ModelContext(ctx, category).Insert(); err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, categoryID int) error {
	_, err := r.db.ModelContext(ctx, &Category{ID: categoryID}).
		WherePK().
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}

func (r *Repository) LocationByID(ctx context.Context, locationID int) (*Location, error) {
	location := &Location{}
	err := r.db.ModelContext(ctx, location).
		Where(`"t"."locationId" = ?`, locationID).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get location by id: %w", err)
	}

	return location, nil
}

func (r *Repository) Locations(ctx context.Context, onlyPublished bool) ([]Location, error) {
	var locations []Location
	query := r.db.ModelContext(ctx, &locations)

	if onlyPublished {
		query = query.Where(`"t"."isPublished" = TRUE`)
	}

	err := query.
		OrderExpr(`"t"."name" ASC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}

	return locations, nil
}

func (r *Repository) CreateLocation(ctx context.Context, location *Location) error {
	if _, err := r.db.ModelContext(ctx, location).Insert(); err != nil {
		return fmt.Errorf("failed to insert location: %w", err)
	}

	return nil
}

func (r *Repository) DeleteLocation(ctx context.Context, locationID int) error {
	_, err := r.db.ModelContext(ctx, &Location{ID: locationID}).
		WherePK().
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	return nil
}
