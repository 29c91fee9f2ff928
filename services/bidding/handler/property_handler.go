package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	bidding "realty-client/internal/biddingService"
	"realty-client/internal/models"
	"realty-client/services/bidding/helpers"
	"realty-client/utils"
)

//go:generate mockgen -source=property_handler.go -destination=mock_property_service.go -package=handler

const maxFormMemory = 32 << 20

type PropertyServiceInterface interface {
	List(q bidding.PropertyQuery, viewerID int64) []models.Property
	Get(id, viewerID int64) (models.Property, error)
	Mine(ownerID int64) []models.Property
	Create(owner models.User, p models.Property) (models.Property, error)
	Delete(id, userID int64) error
	AddFavorite(user models.User, propertyID int64) (models.Favorite, error)
	RemoveFavorite(userID, propertyID int64) error
	Favorites(userID int64) []models.Favorite
}

type PropertyHandler struct {
	service PropertyServiceInterface
}

func NewPropertyHandler(service PropertyServiceInterface) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// ListHandler handles GET /properties/
func (h *PropertyHandler) ListHandler(c *gin.Context) {
	var q bidding.PropertyQuery
	if err := helpers.DecodeForm(&q, c.Request.URL.Query()); err != nil {
		helpers.HandleBindError(c, "ListHandler", err)
		return
	}

	viewer, _ := helpers.CurrentUser(c)
	props := h.service.List(q, viewer.ID)

	utils.JSONResponse(c, http.StatusOK, helpers.NewPage(props))
	helpers.LogSuccess("ListHandler", "properties listed", map[string]any{"count": len(props)})
}

// GetHandler handles GET /properties/:id/
func (h *PropertyHandler) GetHandler(c *gin.Context) {
	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return
	}

	viewer, _ := helpers.CurrentUser(c)
	p, err := h.service.Get(id, viewer.ID)
	if err != nil {
		helpers.RespondError(c, "GetHandler", err, map[string]any{"property_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, p)
}

// MineHandler handles GET /properties/my/
func (h *PropertyHandler) MineHandler(c *gin.Context) {
	owner, _ := helpers.CurrentUser(c)
	utils.JSONResponse(c, http.StatusOK, helpers.NewPage(h.service.Mine(owner.ID)))
}

// CreateHandler handles multipart POST /properties/
func (h *PropertyHandler) CreateHandler(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		helpers.HandleBindError(c, "CreateHandler", err)
		return
	}

	var form helpers.PropertyForm
	if err := helpers.DecodeForm(&form, c.Request.PostForm); err != nil {
		helpers.HandleBindError(c, "CreateHandler", err)
		return
	}

	p := form.Property()
	if mf := c.Request.MultipartForm; mf != nil {
		now := time.Now().UTC()
		for i, fh := range mf.File["images"] {
			p.Images = append(p.Images, models.PropertyImage{
				ID:         int64(i + 1),
				Image:      "/media/properties/" + fh.Filename,
				UploadedAt: now,
			})
		}
	}

	owner, _ := helpers.CurrentUser(c)
	created, err := h.service.Create(owner, p)
	if err != nil {
		helpers.RespondError(c, "CreateHandler", err, map[string]any{"user_id": owner.ID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, created)
	helpers.LogSuccess("CreateHandler", "property created", map[string]any{
		"property_id": created.ID,
		"user_id":     owner.ID,
		"images":      len(created.Images),
	})
}

// DeleteHandler handles DELETE /properties/:id/
func (h *PropertyHandler) DeleteHandler(c *gin.Context) {
	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return
	}

	user, _ := helpers.CurrentUser(c)
	if err := h.service.Delete(id, user.ID); err != nil {
		helpers.RespondError(c, "DeleteHandler", err, map[string]any{"property_id": id})
		return
	}

	c.Status(http.StatusNoContent)
	helpers.LogSuccess("DeleteHandler", "property deleted", map[string]any{"property_id": id})
}

// FavoritesHandler handles GET /properties/favorites/
func (h *PropertyHandler) FavoritesHandler(c *gin.Context) {
	user, _ := helpers.CurrentUser(c)
	utils.JSONResponse(c, http.StatusOK, helpers.NewPage(h.service.Favorites(user.ID)))
}

// AddFavoriteHandler handles POST /properties/favorites/
func (h *PropertyHandler) AddFavoriteHandler(c *gin.Context) {
	var req helpers.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddFavoriteHandler", err)
		return
	}

	user, _ := helpers.CurrentUser(c)
	fav, err := h.service.AddFavorite(user, req.Property)
	if err != nil {
		helpers.RespondError(c, "AddFavoriteHandler", err, map[string]any{"property_id": req.Property})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, fav)
	helpers.LogSuccess("AddFavoriteHandler", "favorite added", map[string]any{"property_id": req.Property, "user_id": user.ID})
}

// RemoveFavoriteHandler handles DELETE /properties/:id/favorite/
func (h *PropertyHandler) RemoveFavoriteHandler(c *gin.Context) {
	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return
	}

	user, _ := helpers.CurrentUser(c)
	if err := h.service.RemoveFavorite(user.ID, id); err != nil {
		helpers.RespondError(c, "RemoveFavoriteHandler", err, map[string]any{"property_id": id})
		return
	}

	c.Status(http.StatusNoContent)
}
