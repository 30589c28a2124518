package service

import (
	"context"
	"errors"
	"strings"

	"homestead/internal/domain"
	"homestead/internal/repository"
)

var (
	// ErrPropertyExists is returned when a listing with the same name exists.
	ErrPropertyExists = errors.New("property already listed")
	// ErrPropertyNotFound is returned when no listing matches the lookup.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrNotOwner indicates the caller does not own the listing it tried to
	// mutate.
	ErrNotOwner = errors.New("caller is not the listing owner")
)

// PropertyInput carries the client-supplied fields of a listing.
type PropertyInput struct {
	Name         string
	Description  string
	Address      string
	Price        int64
	PropertyType domain.PropertyType
	PropertyFor  domain.PropertyFor
	Bedrooms     int
	Bathrooms    int
	PhotoURLs    []string
	Amenities    domain.Amenities
}

// PropertyService describes listing lifecycle operations. Every mutation is
// gated on the caller owning the listing.
type PropertyService interface {
	Add(ctx context.Context, ownerID int64, input PropertyInput) (*domain.Property, error)
	Get(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, error)
	Edit(ctx context.Context, callerID, propertyID int64, input PropertyInput) (*domain.Property, error)
	RemovePhotoURL(ctx context.Context, callerID, propertyID int64, url string) (*domain.Property, error)
	Delete(ctx context.Context, callerID, propertyID int64) (*domain.Property, error)
}

type propertyService struct {
	properties repository.PropertyRepository
}

func NewPropertyService(properties repository.PropertyRepository) PropertyService {
	return &propertyService{properties: properties}
}

func (s *propertyService) Add(ctx context.Context, ownerID int64, input PropertyInput) (*domain.Property, error) {
	if err := validatePropertyInput(&input); err != nil {
		return nil, err
	}

	property := &domain.Property{
		OwnerID:      ownerID,
		Name:         input.Name,
		Slug:         Slugify(input.Name),
		Description:  input.Description,
		Address:      input.Address,
		Price:        input.Price,
		PropertyType: input.PropertyType,
		PropertyFor:  input.PropertyFor,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		PhotoURLs:    input.PhotoURLs,
		Amenities:    input.Amenities,
	}
	if _, err := s.properties.Create(ctx, property); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrPropertyExists
		}
		return nil, err
	}
	return property, nil
}

func (s *propertyService) Get(ctx context.Context, id int64) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return property, nil
}

func (s *propertyService) List(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, error) {
	return s.properties.List(ctx, filter)
}

func (s *propertyService) Edit(ctx context.Context, callerID, propertyID int64, input PropertyInput) (*domain.Property, error) {
	property, err := s.ownedProperty(ctx, callerID, propertyID)
	if err != nil {
		return nil, err
	}
	if err := validatePropertyInput(&input); err != nil {
		return nil, err
	}

	property.Name = input.Name
	property.Slug = Slugify(input.Name)
	property.Description = input.Description
	property.Address = input.Address
	property.Price = input.Price
	property.PropertyType = input.PropertyType
	property.PropertyFor = input.PropertyFor
	property.Bedrooms = input.Bedrooms
	property.Bathrooms = input.Bathrooms
	property.PhotoURLs = input.PhotoURLs
	property.Amenities = input.Amenities

	if err := s.properties.Update(ctx, property); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrPropertyExists
		}
		return nil, err
	}
	return property, nil
}

func (s *propertyService) RemovePhotoURL(ctx context.Context, callerID, propertyID int64, url string) (*domain.Property, error) {
	property, err := s.ownedProperty(ctx, callerID, propertyID)
	if err != nil {
		return nil, err
	}

	kept := property.PhotoURLs[:0]
	removed := false
	for _, existing := range property.PhotoURLs {
		if existing == url {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		// already gone; reconciling an absent URL is a success
		return property, nil
	}
	property.PhotoURLs = kept

	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) Delete(ctx context.Context, callerID, propertyID int64) (*domain.Property, error) {
	property, err := s.ownedProperty(ctx, callerID, propertyID)
	if err != nil {
		return nil, err
	}
	if err := s.properties.Delete(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return property, nil
}

// ownedProperty loads a listing and applies the single ownership predicate
// used by every mutating operation.
func (s *propertyService) ownedProperty(ctx context.Context, callerID, propertyID int64) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	if !isOwner(property, callerID) {
		return nil, ErrNotOwner
	}
	return property, nil
}

func isOwner(property *domain.Property, callerID int64) bool {
	return property.OwnerID == callerID
}

// Slugify derives the URL-safe lookup key from a listing name: lower-cased,
// spaces replaced with hyphens.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

func validatePropertyInput(input *PropertyInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return validationErrorf("property name is required")
	}
	if input.Description == "" {
		return validationErrorf("description is required")
	}
	if input.Price <= 0 {
		return validationErrorf("price must be positive")
	}
	if !input.PropertyType.Valid() {
		return validationErrorf("property type must be %q or %q", domain.PropertyTypeRoom, domain.PropertyTypeHome)
	}
	if !input.PropertyFor.Valid() {
		return validationErrorf("property must be for %q or %q", domain.PropertyForSale, domain.PropertyForRent)
	}
	if input.Bedrooms < 0 || input.Bathrooms < 0 {
		return validationErrorf("room counts cannot be negative")
	}
	return nil
}
