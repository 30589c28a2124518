package http

import (
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homestead/internal/storage"
)

const presignTTL = 15 * time.Minute

type uploadURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType"`
}

// createUploadURL mints a presigned PUT destination so the browser can upload
// a photo straight to the bucket, plus the URL the photo will be served from.
func (h *Handler) createUploadURL(c *gin.Context) {
	if h.storage == nil || h.storageCfg.Bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "storage service not configured"})
		return
	}

	var req uploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	key := h.newObjectKey(req.FileName)
	uploadURL, err := h.storage.PresignPut(c.Request.Context(), h.storageCfg.Bucket, key, req.ContentType, presignTTL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadUrl": uploadURL,
		"publicUrl": h.publicObjectURL(key),
		"key":       key,
		"success":   true,
	})
}

// uploadObject is the server-side upload fallback for clients that cannot PUT
// to a presigned URL directly.
func (h *Handler) uploadObject(c *gin.Context) {
	if h.storage == nil || h.storageCfg.Bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "storage service not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequestMessage(c, "multipart field 'file' is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer file.Close()

	key := h.newObjectKey(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.storage.Upload(c.Request.Context(), h.storageCfg.Bucket, key, file, contentType); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":     h.publicObjectURL(key),
		"key":     key,
		"success": true,
	})
}

func (h *Handler) listObjects(c *gin.Context) {
	if h.storage == nil || h.storageCfg.Bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "storage service not configured"})
		return
	}

	prefix := c.DefaultQuery("prefix", h.storageCfg.KeyPrefix)
	objects, err := h.storage.ListObjects(c.Request.Context(), h.storageCfg.Bucket, prefix)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, gin.H{"objects": resp, "success": true})
}

// newObjectKey namespaces uploads under the configured prefix with a random
// name, keeping the original extension for content-type sniffing.
func (h *Handler) newObjectKey(fileName string) string {
	ext := strings.ToLower(path.Ext(path.Base(fileName)))
	key := uuid.NewString() + ext
	if prefix := strings.Trim(h.storageCfg.KeyPrefix, "/"); prefix != "" {
		key = prefix + "/" + key
	}
	return key
}

func (h *Handler) publicObjectURL(key string) string {
	if base := h.storageCfg.PublicBaseURL; base != "" {
		return strings.TrimSuffix(base, "/") + "/" + key
	}
	return storage.ObjectURL(h.storageCfg.Endpoint, h.storageCfg.Bucket, h.storageCfg.Region, key)
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}
