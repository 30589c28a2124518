package service_test

import (
	"context"
	"sync"
	"time"

	"homestead/internal/domain"
	"homestead/internal/repository"
)

// In-memory repositories backing the service tests; they enforce the same
// uniqueness rules as the sqlite implementations.

type memUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (r *memUserRepo) Init(ctx context.Context) error { return nil }

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return 0, repository.ErrDuplicateEmail
		}
	}
	user.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ProfileImageURL == "" {
		user.ProfileImageURL = domain.DefaultProfileImageURL
	}
	clone := *user
	r.users[user.ID] = &clone
	return user.ID, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.UpdatedAt = time.Now().UTC()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type memPropertyRepo struct {
	mu         sync.Mutex
	properties map[int64]*domain.Property
	nextID     int64
}

func newMemPropertyRepo() *memPropertyRepo {
	return &memPropertyRepo{properties: map[int64]*domain.Property{}, nextID: 1}
}

func (r *memPropertyRepo) Init(ctx context.Context) error { return nil }

func (r *memPropertyRepo) Create(ctx context.Context, property *domain.Property) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.properties {
		if existing.Name == property.Name {
			return 0, repository.ErrDuplicateName
		}
	}
	property.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	property.CreatedAt = now
	property.UpdatedAt = now
	clone := cloneProperty(property)
	r.properties[property.ID] = clone
	return property.ID, nil
}

func (r *memPropertyRepo) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	property, ok := r.properties[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneProperty(property), nil
}

func (r *memPropertyRepo) GetByName(ctx context.Context, name string) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, property := range r.properties {
		if property.Name == name {
			return cloneProperty(property), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memPropertyRepo) List(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Property
	for _, property := range r.properties {
		if filter.OwnerID != 0 && property.OwnerID != filter.OwnerID {
			continue
		}
		if filter.PropertyID != 0 && property.ID != filter.PropertyID {
			continue
		}
		if filter.Slug != "" && property.Slug != filter.Slug {
			continue
		}
		out = append(out, *cloneProperty(property))
	}
	return out, nil
}

func (r *memPropertyRepo) Update(ctx context.Context, property *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[property.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.properties {
		if id != property.ID && existing.Name == property.Name {
			return repository.ErrDuplicateName
		}
	}
	property.UpdatedAt = time.Now().UTC()
	r.properties[property.ID] = cloneProperty(property)
	return nil
}

func (r *memPropertyRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.properties, id)
	return nil
}

func cloneProperty(property *domain.Property) *domain.Property {
	clone := *property
	clone.PhotoURLs = append([]string(nil), property.PhotoURLs...)
	clone.Amenities.Essentials = append([]string(nil), property.Amenities.Essentials...)
	clone.Amenities.Features = append([]string(nil), property.Amenities.Features...)
	clone.Amenities.SafetyFeatures = append([]string(nil), property.Amenities.SafetyFeatures...)
	return &clone
}

var (
	_ repository.UserRepository     = (*memUserRepo)(nil)
	_ repository.PropertyRepository = (*memPropertyRepo)(nil)
)
