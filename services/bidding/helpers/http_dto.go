package helpers

import (
	"realty-client/internal/models"
)

// Request/Response DTOs
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type FavoriteRequest struct {
	Property int64 `json:"property" binding:"required,gt=0"`
}

type PlaceBidRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

type AccessResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type DetailResponse struct {
	Detail string `json:"detail"`
}

// PropertyForm is the multipart listing form
type PropertyForm struct {
	Title         string   `schema:"title"`
	Description   string   `schema:"description"`
	Address       string   `schema:"address"`
	Type          string   `schema:"type"`
	Status        string   `schema:"status"`
	Price         float64  `schema:"price"`
	PricePerDay   *float64 `schema:"price_per_day"`
	PricePerMonth *float64 `schema:"price_per_month"`
	MinRentalDays int      `schema:"min_rental_days"`
	Rooms         int      `schema:"rooms"`
	Area          float64  `schema:"area"`
	Latitude      *float64 `schema:"latitude"`
	Longitude     *float64 `schema:"longitude"`
	HasFurniture  bool     `schema:"has_furniture"`
	HasWifi       bool     `schema:"has_wifi"`
}

// Property converts the form into a listing record
func (f PropertyForm) Property() models.Property {
	p := models.Property{
		Title:         f.Title,
		Description:   f.Description,
		Address:       f.Address,
		Type:          models.PropertyType(f.Type),
		Status:        f.Status,
		Price:         models.Amount(f.Price),
		MinRentalDays: f.MinRentalDays,
		Rooms:         f.Rooms,
		Area:          f.Area,
		Latitude:      f.Latitude,
		Longitude:     f.Longitude,
		HasFurniture:  f.HasFurniture,
		HasWifi:       f.HasWifi,
	}
	if f.PricePerDay != nil {
		v := models.Amount(*f.PricePerDay)
		p.PricePerDay = &v
	}
	if f.PricePerMonth != nil {
		v := models.Amount(*f.PricePerMonth)
		p.PricePerMonth = &v
	}
	return p
}

// NewPage wraps a list in the paginated envelope; nil becomes an empty list
func NewPage[T any](items []T) models.Page[T] {
	if items == nil {
		items = []T{}
	}
	return models.Page[T]{Count: len(items), Results: items}
}
