package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homestead/internal/domain"
	"homestead/internal/repository"
	"homestead/internal/service"
)

func validInput() service.PropertyInput {
	return service.PropertyInput{
		Name:         "Sunny Loft Downtown",
		Description:  "Bright two-bedroom loft",
		Address:      "12 Main St",
		Price:        250000,
		PropertyType: domain.PropertyTypeHome,
		PropertyFor:  domain.PropertyForSale,
		Bedrooms:     2,
		Bathrooms:    1,
		PhotoURLs:    []string{"https://img.example.com/a.jpg", "https://img.example.com/b.jpg"},
		Amenities: domain.Amenities{
			Essentials:     []string{"wifi", "kitchen"},
			Features:       []string{"balcony"},
			SafetyFeatures: []string{"smoke alarm"},
		},
	}
}

func TestAdd_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := service.NewPropertyService(newMemPropertyRepo())
	ctx := context.Background()

	input := validInput()
	created, err := svc.Add(ctx, 1, input)
	require.NoError(t, err)
	assert.Equal(t, "sunny-loft-downtown", created.Slug)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fetched.OwnerID)
	assert.Equal(t, input.Name, fetched.Name)
	assert.Equal(t, input.Description, fetched.Description)
	assert.Equal(t, input.Address, fetched.Address)
	assert.Equal(t, input.Price, fetched.Price)
	assert.Equal(t, input.PropertyType, fetched.PropertyType)
	assert.Equal(t, input.PropertyFor, fetched.PropertyFor)
	assert.Equal(t, input.Bedrooms, fetched.Bedrooms)
	assert.Equal(t, input.Bathrooms, fetched.Bathrooms)
	assert.Equal(t, input.PhotoURLs, fetched.PhotoURLs)
	assert.Equal(t, input.Amenities, fetched.Amenities)
}

func TestAdd_DuplicateName(t *testing.T) {
	t.Parallel()

	svc := service.NewPropertyService(newMemPropertyRepo())
	ctx := context.Background()

	_, err := svc.Add(ctx, 1, validInput())
	require.NoError(t, err)

	_, err = svc.Add(ctx, 2, validInput())
	assert.ErrorIs(t, err, service.ErrPropertyExists)
}

func TestAdd_Validation(t *testing.T) {
	t.Parallel()

	svc := service.NewPropertyService(newMemPropertyRepo())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*service.PropertyInput)
	}{
		{"empty name", func(in *service.PropertyInput) { in.Name = "  " }},
		{"empty description", func(in *service.PropertyInput) { in.Description = "" }},
		{"zero price", func(in *service.PropertyInput) { in.Price = 0 }},
		{"bad type", func(in *service.PropertyInput) { in.PropertyType = "castle" }},
		{"bad for", func(in *service.PropertyInput) { in.PropertyFor = "lease" }},
		{"negative bedrooms", func(in *service.PropertyInput) { in.Bedrooms = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := svc.Add(ctx, 1, input)
			var validationErr *service.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestEdit_OwnershipAndSlug(t *testing.T) {
	t.Parallel()

	svc := service.NewPropertyService(newMemPropertyRepo())
	ctx := context.Background()

	created, err := svc.Add(ctx, 1, validInput())
	require.NoError(t, err)

	// a stranger cannot edit, payload validity notwithstanding
	_, err = svc.Edit(ctx, 2, created.ID, validInput())
	assert.ErrorIs(t, err, service.ErrNotOwner)

	renamed := validInput()
	renamed.Name = "Quiet Garden House"
	renamed.Price = 180000
	updated, err := svc.Edit(ctx, 1, created.ID, renamed)
	require.NoError(t, err)
	assert.Equal(t, "quiet-garden-house", updated.Slug)
	assert.Equal(t, int64(180000), updated.Price)
}

func TestRemovePhotoURL(t *testing.T) {
	t.Parallel()

	svc := service.NewPropertyService(newMemPropertyRepo())
	ctx := context.Background()

	created, err := svc.Add(ctx, 1, validInput())
	require.NoError(t, err)

	updated, err := svc.RemovePhotoURL(ctx, 1, created.ID, "https://img.example.com/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example.com/b.jpg"}, updated.PhotoURLs)

	// removing a URL that is not in the list is a successful no-op
	unchanged, err := svc.RemovePhotoURL(ctx, 1, created.ID, "https://img.example.com/missing.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example.com/b.jpg"}, unchanged.PhotoURLs)

	_, err = svc.RemovePhotoURL(ctx, 2, created.ID, "https://img.example.com/b.jpg")
	assert.ErrorIs(t, err, service.ErrNotOwner)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	svc := service.NewPropertyService(newMemPropertyRepo())
	ctx := context.Background()

	created, err := svc.Add(ctx, 1, validInput())
	require.NoError(t, err)

	_, err = svc.Delete(ctx, 2, created.ID)
	assert.ErrorIs(t, err, service.ErrNotOwner)

	deleted, err := svc.Delete(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrPropertyNotFound)
}

func TestList_Filters(t *testing.T) {
	t.Parallel()

	svc := service.NewPropertyService(newMemPropertyRepo())
	ctx := context.Background()

	first, err := svc.Add(ctx, 1, validInput())
	require.NoError(t, err)

	second := validInput()
	second.Name = "Cozy Room Uptown"
	second.PropertyType = domain.PropertyTypeRoom
	second.PropertyFor = domain.PropertyForRent
	_, err = svc.Add(ctx, 2, second)
	require.NoError(t, err)

	all, err := svc.List(ctx, repository.PropertyFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.List(ctx, repository.PropertyFilter{OwnerID: 1})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	bySlug, err := svc.List(ctx, repository.PropertyFilter{Slug: "cozy-room-uptown"})
	require.NoError(t, err)
	require.Len(t, bySlug, 1)
	assert.Equal(t, "Cozy Room Uptown", bySlug[0].Name)
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sunny-loft-downtown", service.Slugify("Sunny Loft Downtown"))
	assert.Equal(t, "a-b", service.Slugify("  A B  "))
	assert.Equal(t, "plain", service.Slugify("plain"))
}
