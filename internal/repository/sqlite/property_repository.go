package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"homestead/internal/domain"
	"homestead/internal/repository"
)

const createPropertiesTable = `
CREATE TABLE IF NOT EXISTS properties (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id INTEGER NOT NULL,
	name TEXT NOT NULL UNIQUE,
	slug TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	price INTEGER NOT NULL DEFAULT 0,
	property_type TEXT NOT NULL,
	property_for TEXT NOT NULL,
	bedrooms INTEGER NOT NULL DEFAULT 0,
	bathrooms INTEGER NOT NULL DEFAULT 0,
	photo_urls TEXT NOT NULL DEFAULT '[]',
	amenities TEXT NOT NULL DEFAULT '{}',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (owner_id) REFERENCES users(id)
);
`

type PropertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPropertiesTable); err != nil {
		return fmt.Errorf("create properties table: %w", err)
	}
	if err := r.ensurePropertyColumns(ctx); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_properties_slug ON properties(slug) WHERE slug != ''`); err != nil {
		return fmt.Errorf("create slug index: %w", err)
	}
	return nil
}

// ensurePropertyColumns upgrades databases created before the slug column
// existed.
func (r *PropertyRepository) ensurePropertyColumns(ctx context.Context) error {
	rows, err := r.db.QueryContext(ctx, `PRAGMA table_info(properties)`)
	if err != nil {
		return fmt.Errorf("describe properties table: %w", err)
	}
	defer rows.Close()

	columns := map[string]struct{}{}
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notnull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scan pragma table info: %w", err)
		}
		columns[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate pragma table info: %w", err)
	}

	if _, exists := columns["slug"]; !exists {
		if _, err := r.db.ExecContext(ctx, `ALTER TABLE properties ADD COLUMN slug TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("add column slug: %w", err)
		}
	}
	return nil
}

func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) (int64, error) {
	now := time.Now().UTC()
	property.CreatedAt = now
	property.UpdatedAt = now

	photos, amenities, err := encodeLists(property)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO properties (owner_id, name, slug, description, address, price, property_type, property_for, bedrooms, bathrooms, photo_urls, amenities, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		property.OwnerID,
		property.Name,
		property.Slug,
		property.Description,
		property.Address,
		property.Price,
		string(property.PropertyType),
		string(property.PropertyFor),
		property.Bedrooms,
		property.Bathrooms,
		photos,
		amenities,
		property.CreatedAt,
		property.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicateName
		}
		return 0, fmt.Errorf("insert property: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("property last insert id: %w", err)
	}
	property.ID = id
	return id, nil
}

const selectProperty = `
SELECT id, owner_id, name, slug, description, address, price, property_type, property_for, bedrooms, bathrooms, photo_urls, amenities, created_at, updated_at
FROM properties
`

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	row := r.db.QueryRowContext(ctx, selectProperty+`WHERE id = ?`, id)
	return scanProperty(row)
}

func (r *PropertyRepository) GetByName(ctx context.Context, name string) (*domain.Property, error) {
	row := r.db.QueryRowContext(ctx, selectProperty+`WHERE name = ?`, name)
	return scanProperty(row)
}

func (r *PropertyRepository) List(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, error) {
	query := selectProperty + `WHERE 1=1`
	var args []any
	if filter.OwnerID != 0 {
		query += ` AND owner_id = ?`
		args = append(args, filter.OwnerID)
	}
	if filter.PropertyID != 0 {
		query += ` AND id = ?`
		args = append(args, filter.PropertyID)
	}
	if filter.Slug != "" {
		query += ` AND slug = ?`
		args = append(args, filter.Slug)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return properties, nil
}

func (r *PropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	property.UpdatedAt = time.Now().UTC()

	photos, amenities, err := encodeLists(property)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE properties
SET name = ?, slug = ?, description = ?, address = ?, price = ?, property_type = ?, property_for = ?, bedrooms = ?, bathrooms = ?, photo_urls = ?, amenities = ?, updated_at = ?
WHERE id = ?`,
		property.Name,
		property.Slug,
		property.Description,
		property.Address,
		property.Price,
		string(property.PropertyType),
		string(property.PropertyFor),
		property.Bedrooms,
		property.Bathrooms,
		photos,
		amenities,
		property.UpdatedAt,
		property.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateName
		}
		return fmt.Errorf("update property: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update property rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete property rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func encodeLists(property *domain.Property) (string, string, error) {
	photoURLs := property.PhotoURLs
	if photoURLs == nil {
		photoURLs = []string{}
	}
	photos, err := json.Marshal(photoURLs)
	if err != nil {
		return "", "", fmt.Errorf("encode photo urls: %w", err)
	}
	amenities, err := json.Marshal(property.Amenities)
	if err != nil {
		return "", "", fmt.Errorf("encode amenities: %w", err)
	}
	return string(photos), string(amenities), nil
}

func scanProperty(row interface {
	Scan(dest ...any) error
}) (*domain.Property, error) {
	var (
		property      domain.Property
		propertyType  string
		propertyFor   string
		photosJSON    string
		amenitiesJSON string
	)
	if err := row.Scan(
		&property.ID,
		&property.OwnerID,
		&property.Name,
		&property.Slug,
		&property.Description,
		&property.Address,
		&property.Price,
		&propertyType,
		&propertyFor,
		&property.Bedrooms,
		&property.Bathrooms,
		&photosJSON,
		&amenitiesJSON,
		&property.CreatedAt,
		&property.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan property: %w", err)
	}

	property.PropertyType = domain.PropertyType(propertyType)
	property.PropertyFor = domain.PropertyFor(propertyFor)
	if err := json.Unmarshal([]byte(photosJSON), &property.PhotoURLs); err != nil {
		return nil, fmt.Errorf("decode photo urls: %w", err)
	}
	if err := json.Unmarshal([]byte(amenitiesJSON), &property.Amenities); err != nil {
		return nil, fmt.Errorf("decode amenities: %w", err)
	}
	return &property, nil
}
