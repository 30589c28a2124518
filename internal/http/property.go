package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"homestead/internal/domain"
	"homestead/internal/repository"
	"homestead/internal/service"
	"homestead/internal/storage"
)

type propertyRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Address        string   `json:"address"`
	Price          int64    `json:"price"`
	PropertyType   string   `json:"propertyType"`
	PropertyFor    string   `json:"propertyFor"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      int      `json:"bathrooms"`
	PhotoURLs      []string `json:"photoUrls"`
	Essentials     []string `json:"essentials"`
	Features       []string `json:"features"`
	SafetyFeatures []string `json:"safetyFeatures"`
}

func (r propertyRequest) toInput() service.PropertyInput {
	return service.PropertyInput{
		Name:         r.Name,
		Description:  r.Description,
		Address:      r.Address,
		Price:        r.Price,
		PropertyType: domain.PropertyType(r.PropertyType),
		PropertyFor:  domain.PropertyFor(r.PropertyFor),
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		PhotoURLs:    r.PhotoURLs,
		Amenities: domain.Amenities{
			Essentials:     r.Essentials,
			Features:       r.Features,
			SafetyFeatures: r.SafetyFeatures,
		},
	}
}

func (h *Handler) addProperty(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	property, err := h.properties.Add(c.Request.Context(), callerID(c), req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "New property added successfully.",
		"success":  true,
		"property": propertyToResponse(property),
	})
}

// getProperties is the public listing-search view: optional filters by owner,
// listing id, or slug; no filters returns every listing.
func (h *Handler) getProperties(c *gin.Context) {
	var filter repository.PropertyFilter

	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondBadRequestMessage(c, "invalid filter userId")
			return
		}
		filter.OwnerID = id
	}
	if raw := c.Query("propertyId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondBadRequestMessage(c, "invalid filter propertyId")
			return
		}
		filter.PropertyID = id
	}
	filter.Slug = c.Query("slug")

	properties, err := h.properties.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]PropertyResponse, len(properties))
	for i := range properties {
		resp[i] = propertyToResponse(&properties[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"properties": resp,
		"message":    "Properties fetched successfully.",
		"success":    true,
	})
}

func (h *Handler) editProperty(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Param("propertyId"), 10, 64)
	if err != nil || propertyID <= 0 {
		respondBadRequestMessage(c, "invalid property id")
		return
	}

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	property, err := h.properties.Edit(c.Request.Context(), callerID(c), propertyID, req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Property updated successfully.",
		"success":  true,
		"property": propertyToResponse(property),
	})
}

type removePhotoURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// removeDeletedPhotoURL reconciles a client-side deletion from the blob store
// with the database record.
func (h *Handler) removeDeletedPhotoURL(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Query("propertyId"), 10, 64)
	if err != nil || propertyID <= 0 {
		respondBadRequestMessage(c, "invalid property id")
		return
	}

	var req removePhotoURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	property, err := h.properties.RemovePhotoURL(c.Request.Context(), callerID(c), propertyID, req.URL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Photo removed successfully.",
		"success":  true,
		"property": propertyToResponse(property),
	})
}

func (h *Handler) deleteProperty(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Query("propertyId"), 10, 64)
	if err != nil || propertyID <= 0 {
		respondBadRequestMessage(c, "invalid property id")
		return
	}

	property, err := h.properties.Delete(c.Request.Context(), callerID(c), propertyID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	warnings := h.cleanupPhotoObjects(c.Request.Context(), property)

	resp := gin.H{
		"message": "Property deleted successfully.",
		"success": true,
	}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusOK, resp)
}

// cleanupPhotoObjects best-effort deletes the listing's photos from the
// bucket. Failures are reported as warnings, never as request errors; the
// listing record is already gone.
func (h *Handler) cleanupPhotoObjects(ctx context.Context, property *domain.Property) []string {
	if h.storage == nil || h.storageCfg.Bucket == "" || len(property.PhotoURLs) == 0 {
		return nil
	}

	var keys []string
	for _, rawURL := range property.PhotoURLs {
		if key, ok := h.photoObjectKey(rawURL); ok {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil
	}

	deleteCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := h.storage.DeleteObjects(deleteCtx, h.storageCfg.Bucket, keys); err != nil {
		return []string{fmt.Sprintf("delete photo objects: %v", err)}
	}
	return nil
}

// photoObjectKey recovers the bucket key from a hosted photo URL. URLs that
// point outside the configured bucket are left alone.
func (h *Handler) photoObjectKey(rawURL string) (string, bool) {
	if base := h.storageCfg.PublicBaseURL; base != "" {
		base = strings.TrimSuffix(base, "/") + "/"
		if strings.HasPrefix(rawURL, base) {
			key := strings.TrimPrefix(rawURL, base)
			return key, key != ""
		}
	}
	return storage.KeyFromURL(h.storageCfg.Endpoint, h.storageCfg.Bucket, h.storageCfg.Region, rawURL)
}
