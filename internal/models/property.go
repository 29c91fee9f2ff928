package models

import "time"

// PropertyType selects which price field is meaningful.
type PropertyType string

const (
	PropertySale      PropertyType = "sale"
	PropertyRent      PropertyType = "rent"
	PropertyDailyRent PropertyType = "daily_rent"
)

// PropertyImage is one uploaded listing photo.
type PropertyImage struct {
	ID         int64     `json:"id"`
	Image      string    `json:"image"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// PriceDisplay is the backend's precomputed price label. Legacy records
// come without it.
type PriceDisplay struct {
	Amount        float64      `json:"amount"`
	Formatted     string       `json:"formatted"`
	Period        *string      `json:"period"`
	Type          PropertyType `json:"type"`
	MinRentalDays *int         `json:"min_rental_days,omitempty"`
}

// Property represents a listing
type Property struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Address       string          `json:"address"`
	Latitude      *float64        `json:"latitude"`
	Longitude     *float64        `json:"longitude"`
	Area          float64         `json:"area"`
	Rooms         int             `json:"rooms"`
	Type          PropertyType    `json:"type"`
	Status        string          `json:"status"`
	Price         Amount          `json:"price"`
	PricePerDay   *Amount         `json:"price_per_day"`
	PricePerMonth *Amount         `json:"price_per_month"`
	MinRentalDays int             `json:"min_rental_days"`
	Images        []PropertyImage `json:"images"`
	OwnerID       int64           `json:"owner"`
	OwnerName     string          `json:"owner_name"`
	IsFavorited   bool            `json:"is_favorited"`
	PriceDisplay  *PriceDisplay   `json:"price_display,omitempty"`
	HasFurniture  bool            `json:"has_furniture"`
	HasWifi       bool            `json:"has_wifi"`
	Distance      *float64        `json:"distance_from_search,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Coordinates returns the listing position if the backend geocoded it.
func (p *Property) Coordinates() (lat, lng float64, ok bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return 0, 0, false
	}
	return *p.Latitude, *p.Longitude, true
}

// PropertyInput is the multipart create/update form. Fields holds the
// scalar form values; Images are new uploads.
type PropertyInput struct {
	Fields map[string]string
	Images []Upload
}

// Upload is a file part of a multipart request.
type Upload struct {
	FieldName string
	FileName  string
	Content   []byte
}

// ContactStatus is the lifecycle of a buyer's contact request.
type ContactStatus string

const (
	ContactPending   ContactStatus = "pending"
	ContactContacted ContactStatus = "contacted"
	ContactCompleted ContactStatus = "completed"
	ContactCancelled ContactStatus = "cancelled"
)

// OwnerContacts are revealed to the buyer after a contact request.
type OwnerContacts struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// ContactRequest is a buyer's request to reach a listing owner.
type ContactRequest struct {
	ID            int64         `json:"id"`
	PropertyID    int64         `json:"property"`
	PropertyTitle string        `json:"property_title"`
	BuyerID       int64         `json:"buyer"`
	BuyerName     string        `json:"buyer_name"`
	Message       string        `json:"message"`
	Status        ContactStatus `json:"status"`
	OwnerContacts OwnerContacts `json:"owner_contacts"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Favorite links a buyer to a saved listing.
type Favorite struct {
	ID              int64     `json:"id"`
	PropertyID      int64     `json:"property"`
	PropertyDetails *Property `json:"property_details,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// GeocodeResult is the backend geocoder answer.
type GeocodeResult struct {
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	FormattedAddress string  `json:"formatted_address"`
}

// AIAnalysis is the structured interpretation of a free-text query.
type AIAnalysis struct {
	Filters map[string]any `json:"filters"`
}

// AISearchResult may carry ready results, filters to apply, or both.
type AISearchResult struct {
	AIAnalysis *AIAnalysis `json:"ai_analysis"`
	Results    []Property  `json:"results"`
	Count      int         `json:"count"`
	Message    string      `json:"message"`
}
