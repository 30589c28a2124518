package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"homestead/internal/domain"
	"homestead/internal/repository"
)

func openPropertyTestDB(t *testing.T) *PropertyRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// properties reference users; keep foreign keys satisfied
	users := NewUserRepository(db).(*UserRepository)
	if err := users.Init(context.Background()); err != nil {
		t.Fatalf("init users: %v", err)
	}
	if _, err := users.Create(context.Background(), &domain.User{Name: "Owner", Email: "o@b.c", PasswordHash: "h"}); err != nil {
		t.Fatalf("create owner: %v", err)
	}
	if _, err := users.Create(context.Background(), &domain.User{Name: "Other", Email: "x@b.c", PasswordHash: "h"}); err != nil {
		t.Fatalf("create other: %v", err)
	}

	repo := NewPropertyRepository(db).(*PropertyRepository)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("init properties: %v", err)
	}
	return repo
}

func testProperty(name, slug string, ownerID int64) *domain.Property {
	return &domain.Property{
		OwnerID:      ownerID,
		Name:         name,
		Slug:         slug,
		Description:  "desc",
		Address:      "addr",
		Price:        100,
		PropertyType: domain.PropertyTypeHome,
		PropertyFor:  domain.PropertyForRent,
		Bedrooms:     2,
		Bathrooms:    1,
		PhotoURLs:    []string{"https://img/a.jpg"},
		Amenities: domain.Amenities{
			Essentials: []string{"wifi"},
			Features:   []string{"balcony"},
		},
	}
}

func TestPropertyRepository_RoundTrip(t *testing.T) {
	repo := openPropertyTestDB(t)
	ctx := context.Background()

	property := testProperty("Loft", "loft", 1)
	id, err := repo.Create(ctx, property)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Loft" || got.Slug != "loft" || got.OwnerID != 1 {
		t.Fatalf("unexpected property: %+v", got)
	}
	if !reflect.DeepEqual(got.PhotoURLs, []string{"https://img/a.jpg"}) {
		t.Fatalf("photo urls not round-tripped: %#v", got.PhotoURLs)
	}
	if !reflect.DeepEqual(got.Amenities.Essentials, []string{"wifi"}) {
		t.Fatalf("amenities not round-tripped: %#v", got.Amenities)
	}

	byName, err := repo.GetByName(ctx, "Loft")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if byName.ID != id {
		t.Fatalf("get by name returned wrong record: %d != %d", byName.ID, id)
	}
}

func TestPropertyRepository_DuplicateName(t *testing.T) {
	repo := openPropertyTestDB(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, testProperty("Loft", "loft", 1)); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := repo.Create(ctx, testProperty("Loft", "loft-2", 2))
	if !errors.Is(err, repository.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestPropertyRepository_ListFilters(t *testing.T) {
	repo := openPropertyTestDB(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, testProperty("Loft", "loft", 1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, testProperty("Room", "room", 2)); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := repo.List(ctx, repository.PropertyFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(all))
	}

	byOwner, err := repo.List(ctx, repository.PropertyFilter{OwnerID: 1})
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(byOwner) != 1 || byOwner[0].ID != first {
		t.Fatalf("owner filter failed: %+v", byOwner)
	}

	bySlug, err := repo.List(ctx, repository.PropertyFilter{Slug: "room"})
	if err != nil {
		t.Fatalf("list by slug: %v", err)
	}
	if len(bySlug) != 1 || bySlug[0].Name != "Room" {
		t.Fatalf("slug filter failed: %+v", bySlug)
	}

	byID, err := repo.List(ctx, repository.PropertyFilter{PropertyID: first})
	if err != nil {
		t.Fatalf("list by id: %v", err)
	}
	if len(byID) != 1 || byID[0].ID != first {
		t.Fatalf("id filter failed: %+v", byID)
	}
}

func TestPropertyRepository_UpdateAndDelete(t *testing.T) {
	repo := openPropertyTestDB(t)
	ctx := context.Background()

	property := testProperty("Loft", "loft", 1)
	id, err := repo.Create(ctx, property)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	property.Name = "Garden House"
	property.Slug = "garden-house"
	property.PhotoURLs = nil
	if err := repo.Update(ctx, property); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Garden House" || got.Slug != "garden-house" {
		t.Fatalf("update not persisted: %+v", got)
	}
	if len(got.PhotoURLs) != 0 {
		t.Fatalf("expected empty photo list, got %#v", got.PhotoURLs)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, id); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
