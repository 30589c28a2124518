package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"homestead/internal/auth"
	"homestead/internal/domain"
	"homestead/internal/service"
	"homestead/internal/storage"
)

// sessionCookie is the HTTP-only cookie carrying the signed session token.
const sessionCookie = "token"

// StorageConfig tells the handler where listing photos live.
type StorageConfig struct {
	Bucket        string
	KeyPrefix     string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	properties service.PropertyService
	tokens     *auth.TokenService
	storage    storage.Service
	storageCfg StorageConfig
	tokenTTL   time.Duration
	logger     *logrus.Logger
}

func NewHandler(
	users service.UserService,
	properties service.PropertyService,
	tokens *auth.TokenService,
	store storage.Service,
	storageCfg StorageConfig,
	tokenTTL time.Duration,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:      users,
		properties: properties,
		tokens:     tokens,
		storage:    store,
		storageCfg: storageCfg,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(h.requestLogger())

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", h.signUp)
			authGroup.POST("/signin", h.signIn)
			authGroup.POST("/signout", h.signOut)
			authGroup.POST("/google", h.google)
		}

		user := api.Group("/user", h.authRequired())
		{
			user.PUT("/update/:userId", h.updateProfile)
			user.DELETE("/delete/:userId", h.deleteUser)
		}

		property := api.Group("/property")
		{
			property.GET("/get-properties", h.getProperties)
			property.POST("/add-property", h.authRequired(), h.addProperty)
			property.PUT("/edit-property/:propertyId", h.authRequired(), h.editProperty)
			property.DELETE("/remove-deleted-photo-url", h.authRequired(), h.removeDeletedPhotoURL)
			property.DELETE("/delete-property", h.authRequired(), h.deleteProperty)
		}

		storageGroup := api.Group("/storage", h.authRequired())
		{
			storageGroup.POST("/upload-url", h.createUploadURL)
			storageGroup.POST("/upload", h.uploadObject)
			storageGroup.GET("/objects", h.listObjects)
		}

		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	name := req.Name
	if name == "" {
		name = req.Username
	}
	if _, err := h.users.Register(c.Request.Context(), name, req.Email, req.Password); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Signup successfully."})
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"user":    userToResponse(user),
		"message": "SignIn successfully.",
		"success": true,
	})
}

func (h *Handler) signOut(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Signout successfully.",
		"success": true,
	})
}

// google is a placeholder for federated login; the client treats it as a
// successful no-op.
func (h *Handler) google(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "SignUp with Google successfully"})
}

type updateProfileRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	ProfileImage *string `json:"profileImage"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		respondBadRequestMessage(c, "invalid user id")
		return
	}
	if callerID(c) != userID {
		h.respondError(c, service.ErrNotOwner)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ProfileImageURL: req.ProfileImage,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    userToResponse(user),
		"success": true,
		"message": "Profile updated successfully.",
	})
}

func (h *Handler) deleteUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		respondBadRequestMessage(c, "invalid user id")
		return
	}
	if callerID(c) != userID {
		h.respondError(c, service.ErrNotOwner)
		return
	}

	if err := h.users.Delete(c.Request.Context(), userID); err != nil {
		h.respondError(c, err)
		return
	}

	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Account deleted successfully.",
		"success": true,
	})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(sessionCookie, token, int(h.tokenTTL/time.Second), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

type UserResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		ProfileImage: user.ProfileImageURL,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    user.UpdatedAt.Format(time.RFC3339),
	}
}
