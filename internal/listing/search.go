package listing

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"realty-client/internal/models"
	"realty-client/utils"
)

const defaultNearbyRadiusKm = 1.0

// SearchAPI is the backend surface the search pipeline calls.
type SearchAPI interface {
	ListProperties(ctx context.Context, filters url.Values) (*models.Page[models.Property], error)
	AISearch(ctx context.Context, query string) (*models.AISearchResult, error)
	Geocode(ctx context.Context, address string) (*models.GeocodeResult, error)
	NearbySearch(ctx context.Context, lat, lng, radiusKm float64, typ models.PropertyType) (*models.Page[models.Property], error)
}

// Source names the step that produced a search result.
type Source string

const (
	SourceAI     Source = "ai"
	SourceNearby Source = "nearby"
	SourceList   Source = "list"
)

// SearchResult is what one submission of the filter form yields.
type SearchResult struct {
	Properties []models.Property
	Count      int
	Source     Source
	// Query is what was sent to the list endpoint; nil for other sources.
	Query     url.Values
	AIMessage string
}

// Searcher runs the filter form submission.
type Searcher struct {
	api SearchAPI
}

func NewSearcher(api SearchAPI) *Searcher {
	return &Searcher{api: api}
}

// Search resolves filters in three steps:
//
//  1. ai_search: listings returned directly by the AI endpoint win;
//     otherwise its filters override the form's. If the AI call fails the
//     query becomes a plain text search.
//  2. nearby_location: the place is geocoded and listings around it
//     returned. Failures here fall through to step 3.
//  3. the regular list call with the normalized filters.
func (s *Searcher) Search(ctx context.Context, filters FilterState) (*SearchResult, error) {
	final := filters.Clone()

	if query := final.String(KeyAISearch); query != "" {
		res, err := s.api.AISearch(ctx, query)
		switch {
		case err != nil:
			utils.Warn("listing: ai search failed, using text search", map[string]any{"error": err.Error()})
			final["search"] = query
		case len(res.Results) > 0:
			return &SearchResult{
				Properties: res.Results,
				Count:      len(res.Results),
				Source:     SourceAI,
				AIMessage:  res.Message,
			}, nil
		case res.AIAnalysis != nil:
			for k, v := range res.AIAnalysis.Filters {
				final[k] = v
			}
		}
		delete(final, KeyAISearch)
	}

	if place := final.String(KeyNearbyLocation); place != "" {
		if res, ok := s.nearby(ctx, place, final); ok {
			return res, nil
		}
	}

	query := listQuery(final)
	page, err := s.api.ListProperties(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing: search: %w", err)
	}
	return &SearchResult{
		Properties: page.Results,
		Count:      page.Count,
		Source:     SourceList,
		Query:      query,
	}, nil
}

func (s *Searcher) nearby(ctx context.Context, place string, filters FilterState) (*SearchResult, bool) {
	geo, err := s.api.Geocode(ctx, place)
	if err != nil {
		utils.Warn("listing: nearby geocode failed", map[string]any{"place": place, "error": err.Error()})
		return nil, false
	}

	radius := defaultNearbyRadiusKm
	if r, err := strconv.ParseFloat(filters.String(KeyNearbyRadius), 64); err == nil && r > 0 {
		radius = r
	}

	typ := models.PropertyType(filters.String("type"))
	if typ == "" {
		typ = models.PropertyRent
	}

	page, err := s.api.NearbySearch(ctx, geo.Lat, geo.Lon, radius, typ)
	if err != nil {
		utils.Warn("listing: nearby search failed", map[string]any{"place": place, "error": err.Error()})
		return nil, false
	}

	return &SearchResult{
		Properties: page.Results,
		Count:      len(page.Results),
		Source:     SourceNearby,
	}, true
}

// listQuery drops client-only keys and defaults to active listings.
func listQuery(filters FilterState) url.Values {
	q := filters.QueryParams()
	q.Del(KeyAISearch)
	q.Del(KeyNearbyLocation)
	q.Del(KeyNearbyRadius)
	if q.Get("status") == "" {
		q.Set("status", "active")
	}
	return q
}
