package bidding

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"realty-client/internal/biddingerrors"
	"realty-client/internal/listing"
	"realty-client/internal/models"
	"realty-client/internal/repository"
)

// PropertyQuery is the subset of list filters the sandbox understands
type PropertyQuery struct {
	Type         string   `schema:"type"`
	Status       string   `schema:"status"`
	Search       string   `schema:"search"`
	MinPrice     *float64 `schema:"min_price"`
	MaxPrice     *float64 `schema:"max_price"`
	Rooms        int      `schema:"rooms"`
	HasFurniture *bool    `schema:"has_furniture"`
	SortBy       string   `schema:"sort_by"`
	SortOrder    string   `schema:"sort_order"`
}

// PropertyService implements listings and favorites
type PropertyService struct {
	repo repository.AuctionDB
	now  func() time.Time
}

// NewPropertyService creates a new PropertyService instance
func NewPropertyService(repo repository.AuctionDB) *PropertyService {
	return &PropertyService{repo: repo, now: time.Now}
}

// List returns listings matching q; viewerID marks favorites (0 for anonymous)
func (s *PropertyService) List(q PropertyQuery, viewerID int64) []models.Property {
	all := s.repo.ListProperties()
	out := make([]models.Property, 0, len(all))
	for _, p := range all {
		if !q.matches(p) {
			continue
		}
		out = append(out, s.present(p, viewerID))
	}
	sortProperties(out, q.SortBy, q.SortOrder)
	return out
}

func (q PropertyQuery) matches(p models.Property) bool {
	if q.Type != "" && string(p.Type) != q.Type {
		return false
	}
	if q.Status != "" && p.Status != q.Status {
		return false
	}
	if q.Rooms > 0 && p.Rooms != q.Rooms {
		return false
	}
	if q.MinPrice != nil && p.Price.Float() < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price.Float() > *q.MaxPrice {
		return false
	}
	if q.HasFurniture != nil && p.HasFurniture != *q.HasFurniture {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		haystack := strings.ToLower(p.Title + " " + p.Description + " " + p.Address)
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

func sortProperties(props []models.Property, by, order string) {
	less := func(i, j int) bool { return props[i].CreatedAt.Before(props[j].CreatedAt) || (props[i].CreatedAt.Equal(props[j].CreatedAt) && props[i].ID < props[j].ID) }
	switch by {
	case "price":
		less = func(i, j int) bool { return props[i].Price < props[j].Price }
	case "area":
		less = func(i, j int) bool { return props[i].Area < props[j].Area }
	case "rooms":
		less = func(i, j int) bool { return props[i].Rooms < props[j].Rooms }
	}
	if order == "asc" {
		sort.SliceStable(props, less)
		return
	}
	sort.SliceStable(props, func(i, j int) bool { return less(j, i) })
}

// Get returns one listing as seen by viewerID
func (s *PropertyService) Get(id, viewerID int64) (models.Property, error) {
	p, err := s.repo.GetProperty(id)
	if err != nil {
		return models.Property{}, fmt.Errorf("service: get property: %w", err)
	}
	return s.present(p, viewerID), nil
}

// Mine returns the listings owned by ownerID
func (s *PropertyService) Mine(ownerID int64) []models.Property {
	var out []models.Property
	for _, p := range s.repo.ListProperties() {
		if p.OwnerID == ownerID {
			out = append(out, s.present(p, ownerID))
		}
	}
	return out
}

// Create stores a listing for a seller
func (s *PropertyService) Create(owner models.User, p models.Property) (models.Property, error) {
	if !owner.IsSeller() {
		return models.Property{}, fmt.Errorf("service: create property: %w", biddingerrors.ErrForbidden)
	}
	if strings.TrimSpace(p.Title) == "" {
		return models.Property{}, fmt.Errorf("service: %w - title is required", biddingerrors.ErrInvalidInput)
	}
	switch p.Type {
	case models.PropertySale, models.PropertyRent, models.PropertyDailyRent:
	case "":
		p.Type = models.PropertySale
	default:
		return models.Property{}, fmt.Errorf("service: %w - unknown type %q", biddingerrors.ErrInvalidInput, p.Type)
	}
	if p.Price < 0 {
		return models.Property{}, fmt.Errorf("service: %w - negative price", biddingerrors.ErrInvalidInput)
	}
	if p.Status == "" {
		p.Status = "active"
	}

	now := s.now().UTC()
	p.OwnerID = owner.ID
	p.OwnerName = owner.FullName
	p.CreatedAt, p.UpdatedAt = now, now

	created, err := s.repo.CreateProperty(p)
	if err != nil {
		return models.Property{}, fmt.Errorf("service: create property: %w", err)
	}
	return s.present(created, owner.ID), nil
}

// Delete removes a listing; only its owner may do so
func (s *PropertyService) Delete(id, userID int64) error {
	p, err := s.repo.GetProperty(id)
	if err != nil {
		return fmt.Errorf("service: delete property: %w", err)
	}
	if p.OwnerID != userID {
		return fmt.Errorf("service: delete property %d: %w", id, biddingerrors.ErrForbidden)
	}
	if err := s.repo.DeleteProperty(id); err != nil {
		return fmt.Errorf("service: delete property: %w", err)
	}
	return nil
}

// AddFavorite saves a listing for a buyer
func (s *PropertyService) AddFavorite(user models.User, propertyID int64) (models.Favorite, error) {
	if !user.IsBuyer() {
		return models.Favorite{}, fmt.Errorf("service: add favorite: %w", biddingerrors.ErrForbidden)
	}
	fav, err := s.repo.AddFavorite(user.ID, propertyID)
	if err != nil {
		return models.Favorite{}, fmt.Errorf("service: add favorite: %w", err)
	}
	if fav.PropertyDetails != nil {
		p := s.present(*fav.PropertyDetails, user.ID)
		fav.PropertyDetails = &p
	}
	return fav, nil
}

// RemoveFavorite drops a saved listing
func (s *PropertyService) RemoveFavorite(userID, propertyID int64) error {
	if err := s.repo.RemoveFavorite(userID, propertyID); err != nil {
		return fmt.Errorf("service: remove favorite: %w", err)
	}
	return nil
}

// Favorites lists a user's saved listings, skipping ones deleted since
func (s *PropertyService) Favorites(userID int64) []models.Favorite {
	favs := s.repo.ListFavorites(userID)
	out := make([]models.Favorite, 0, len(favs))
	for _, f := range favs {
		p, err := s.repo.GetProperty(f.PropertyID)
		if errors.Is(err, biddingerrors.ErrPropertyNotFound) {
			continue
		}
		p = s.present(p, userID)
		f.PropertyDetails = &p
		out = append(out, f)
	}
	return out
}

// present fills the fields computed per viewer
func (s *PropertyService) present(p models.Property, viewerID int64) models.Property {
	p.IsFavorited = viewerID != 0 && s.repo.IsFavorite(viewerID, p.ID)
	p.PriceDisplay = priceDisplay(p)
	return p
}

// priceDisplay labels the price by listing type: sale total, monthly rent
// or daily rent, preferring the per-period price when set.
func priceDisplay(p models.Property) *models.PriceDisplay {
	var (
		amount float64
		period *string
		unit   string
	)
	switch p.Type {
	case models.PropertySale:
		amount = p.Price.Float()
	case models.PropertyRent:
		amount, unit = p.Price.Float(), "/мес"
		if p.PricePerMonth != nil {
			amount = p.PricePerMonth.Float()
		}
		month := "month"
		period = &month
	case models.PropertyDailyRent:
		amount, unit = p.Price.Float(), "/сутки"
		if p.PricePerDay != nil {
			amount = p.PricePerDay.Float()
		}
		day := "day"
		period = &day
	default:
		return nil
	}
	if amount <= 0 {
		return nil
	}

	d := &models.PriceDisplay{
		Amount:    amount,
		Formatted: listing.FormatAmount(amount) + unit,
		Period:    period,
		Type:      p.Type,
	}
	if p.Type == models.PropertyDailyRent {
		days := max(p.MinRentalDays, 1)
		d.MinRentalDays = &days
	} else if p.Type == models.PropertyRent && p.MinRentalDays > 0 {
		days := p.MinRentalDays
		d.MinRentalDays = &days
	}
	return d
}
