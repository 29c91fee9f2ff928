package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"realty-client/internal/models"
)

func propertyPath(id int64) string {
	return fmt.Sprintf("/properties/%d/", id)
}

// ListProperties returns listings matching filters, already serialized as
// query parameters.
func (c *Client) ListProperties(ctx context.Context, filters url.Values) (*models.Page[models.Property], error) {
	var page models.Page[models.Property]
	if err := c.get(ctx, "/properties/", filters, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	var p models.Property
	if err := c.get(ctx, propertyPath(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// MyProperties lists the current seller's listings.
func (c *Client) MyProperties(ctx context.Context) (*models.Page[models.Property], error) {
	var page models.Page[models.Property]
	if err := c.get(ctx, "/properties/my/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateProperty(ctx context.Context, in models.PropertyInput) (*models.Property, error) {
	var p models.Property
	body := &Multipart{Fields: in.Fields, Files: in.Images}
	if err := c.post(ctx, "/properties/", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProperty sends a partial update; new images are appended to the
// existing ones.
func (c *Client) UpdateProperty(ctx context.Context, id int64, in models.PropertyInput) (*models.Property, error) {
	var p models.Property
	body := &Multipart{Fields: in.Fields, Files: in.Images}
	if err := c.Do(ctx, http.MethodPatch, propertyPath(id), body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProperty(ctx context.Context, id int64) error {
	return c.delete(ctx, propertyPath(id))
}

func (c *Client) DeletePropertyImage(ctx context.Context, propertyID, imageID int64) error {
	return c.delete(ctx, fmt.Sprintf("/properties/%d/images/%d/", propertyID, imageID))
}

// ContactOwner creates a contact request and returns it with the owner's
// contact details.
func (c *Client) ContactOwner(ctx context.Context, propertyID int64, message string) (*models.ContactRequest, error) {
	var cr models.ContactRequest
	body := map[string]string{"message": message}
	if err := c.post(ctx, fmt.Sprintf("/properties/%d/contact/", propertyID), body, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}

func (c *Client) ContactRequests(ctx context.Context) (*models.Page[models.ContactRequest], error) {
	var page models.Page[models.ContactRequest]
	if err := c.get(ctx, "/properties/contact-requests/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) UpdateContactStatus(ctx context.Context, requestID int64, status models.ContactStatus) (*models.ContactRequest, error) {
	var cr models.ContactRequest
	body := map[string]models.ContactStatus{"status": status}
	path := fmt.Sprintf("/properties/contact-requests/%d/status/", requestID)
	if err := c.Do(ctx, http.MethodPatch, path, body, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}

func (c *Client) Favorites(ctx context.Context) (*models.Page[models.Favorite], error) {
	var page models.Page[models.Favorite]
	if err := c.get(ctx, "/properties/favorites/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) AddFavorite(ctx context.Context, propertyID int64) (*models.Favorite, error) {
	var fav models.Favorite
	body := map[string]int64{"property": propertyID}
	if err := c.post(ctx, "/properties/favorites/", body, &fav); err != nil {
		return nil, err
	}
	return &fav, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, propertyID int64) error {
	return c.delete(ctx, fmt.Sprintf("/properties/%d/favorite/", propertyID))
}

// Geocode resolves a free-form address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	var res models.GeocodeResult
	body := map[string]string{"address": address}
	if err := c.post(ctx, "/properties/geocode/", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SuggestAddresses returns address completions for a partial query.
func (c *Client) SuggestAddresses(ctx context.Context, query string) ([]string, error) {
	var res struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.get(ctx, "/properties/suggest/", url.Values{"query": {query}}, &res); err != nil {
		return nil, err
	}
	return res.Suggestions, nil
}

func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	var res struct {
		Address string `json:"address"`
	}
	body := map[string]float64{"lat": lat, "lon": lon}
	if err := c.post(ctx, "/properties/reverse-geocode/", body, &res); err != nil {
		return "", err
	}
	return res.Address, nil
}

// AISearch asks the backend to interpret a natural-language query.
func (c *Client) AISearch(ctx context.Context, query string) (*models.AISearchResult, error) {
	var res models.AISearchResult
	body := map[string]string{"query": query}
	if err := c.post(ctx, "/properties/ai-search/", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// NearbySearch lists listings within radiusKm of a point, optionally
// narrowed to one property type.
func (c *Client) NearbySearch(ctx context.Context, lat, lng, radiusKm float64, typ models.PropertyType) (*models.Page[models.Property], error) {
	q := url.Values{
		"lat":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lng":    {strconv.FormatFloat(lng, 'f', -1, 64)},
		"radius": {strconv.FormatFloat(radiusKm, 'f', -1, 64)},
	}
	if typ != "" {
		q.Set("type", string(typ))
	}

	var page models.Page[models.Property]
	if err := c.get(ctx, "/properties/nearby/", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
