package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"homestead/internal/domain"
	"homestead/internal/service"
)

// respondError is the single place service errors become HTTP responses.
// Unrecognized errors are logged and collapse to a 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		message = validationErr.Message
	case errors.Is(err, service.ErrEmailTaken):
		status = http.StatusConflict
		message = "This email is already registered."
	case errors.Is(err, service.ErrPropertyExists):
		status = http.StatusConflict
		message = "This property is already added for the listing."
	case errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found."
	case errors.Is(err, service.ErrPropertyNotFound):
		status = http.StatusNotFound
		message = "Property not found."
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid password."
	case errors.Is(err, service.ErrNotOwner):
		status = http.StatusForbidden
		message = "You do not own this resource."
	default:
		if h.logger != nil {
			h.logger.WithError(err).Error("unhandled request error")
		}
	}

	c.JSON(status, gin.H{
		"success":    false,
		"statusCode": status,
		"message":    message,
	})
}

func respondBadRequest(c *gin.Context, err error) {
	respondBadRequestMessage(c, err.Error())
}

func respondBadRequestMessage(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success":    false,
		"statusCode": http.StatusBadRequest,
		"message":    message,
	})
}

type AmenitiesResponse struct {
	Essentials     []string `json:"essentials"`
	Features       []string `json:"features"`
	SafetyFeatures []string `json:"safetyFeatures"`
}

type PropertyResponse struct {
	ID           int64             `json:"id"`
	UserID       int64             `json:"userId"`
	Name         string            `json:"name"`
	Slug         string            `json:"slug"`
	Description  string            `json:"description"`
	Address      string            `json:"address"`
	Price        int64             `json:"price"`
	PropertyType string            `json:"propertyType"`
	PropertyFor  string            `json:"propertyFor"`
	Bedrooms     int               `json:"bedrooms"`
	Bathrooms    int               `json:"bathrooms"`
	PhotoURLs    []string          `json:"photoUrls"`
	Amenities    AmenitiesResponse `json:"amenities"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}

func propertyToResponse(property *domain.Property) PropertyResponse {
	photoURLs := property.PhotoURLs
	if photoURLs == nil {
		photoURLs = []string{}
	}
	return PropertyResponse{
		ID:           property.ID,
		UserID:       property.OwnerID,
		Name:         property.Name,
		Slug:         property.Slug,
		Description:  property.Description,
		Address:      property.Address,
		Price:        property.Price,
		PropertyType: string(property.PropertyType),
		PropertyFor:  string(property.PropertyFor),
		Bedrooms:     property.Bedrooms,
		Bathrooms:    property.Bathrooms,
		PhotoURLs:    photoURLs,
		Amenities: AmenitiesResponse{
			Essentials:     emptyIfNil(property.Amenities.Essentials),
			Features:       emptyIfNil(property.Amenities.Features),
			SafetyFeatures: emptyIfNil(property.Amenities.SafetyFeatures),
		},
		CreatedAt: property.CreatedAt.Format(time.RFC3339),
		UpdatedAt: property.UpdatedAt.Format(time.RFC3339),
	}
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
