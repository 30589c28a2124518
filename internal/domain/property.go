package domain

import "time"

// PropertyType classifies what is being listed.
type PropertyType string

const (
	PropertyTypeRoom PropertyType = "room"
	PropertyTypeHome PropertyType = "home"
)

func (t PropertyType) Valid() bool {
	return t == PropertyTypeRoom || t == PropertyTypeHome
}

// PropertyFor classifies the kind of deal offered.
type PropertyFor string

const (
	PropertyForSale PropertyFor = "sale"
	PropertyForRent PropertyFor = "rent"
)

func (f PropertyFor) Valid() bool {
	return f == PropertyForSale || f == PropertyForRent
}

// Amenities groups listing attributes the client renders as checklists.
type Amenities struct {
	Essentials     []string
	Features       []string
	SafetyFeatures []string
}

// Property is a single listing. Name is unique across all listings and Slug
// is derived from it; only the owner may mutate a listing.
type Property struct {
	ID           int64
	OwnerID      int64
	Name         string
	Slug         string
	Description  string
	Address      string
	Price        int64
	PropertyType PropertyType
	PropertyFor  PropertyFor
	Bedrooms     int
	Bathrooms    int
	PhotoURLs    []string
	Amenities    Amenities
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
