package places

import (
	"context"
	"strings"

	"github.com/caribeway/caribeway-backend/pkg/errors"
	"github.com/caribeway/caribeway-backend/pkg/maps"
)

// Service exposes the pickup/dropoff helpers the booking funnel needs.
type Service interface {
	Suggest(ctx context.Context, req SuggestRequest) ([]Suggestion, error)
	Resolve(ctx context.Context, placeID string) (*Place, error)
	Distance(ctx context.Context, req DistanceRequest) (*Distance, error)
}

type service struct {
	maps *maps.Client
}

func NewService(client *maps.Client) Service {
	return &service{maps: client}
}

type SuggestRequest struct {
	Query    string
	Country  string
	Language string
}

type Suggestion struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// Place is a resolved pickup or dropoff point. Resort zones and beach roads
// frequently come back without street numbers or postal codes, so only the
// coordinates and a display address are mandatory.
type Place struct {
	PlaceID    string  `json:"place_id"`
	Address    string  `json:"address"`
	City       string  `json:"city,omitempty"`
	Province   string  `json:"province,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	Country    string  `json:"country"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

type DistanceRequest struct {
	OriginPlaceID      string
	DestinationPlaceID string
}

type Distance struct {
	Origin          *Place  `json:"origin"`
	Destination     *Place  `json:"destination"`
	DistanceKM      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	StraightLine    bool    `json:"straight_line"`
}

const defaultCountry = "DO"

func (s *service) Suggest(ctx context.Context, req SuggestRequest) ([]Suggestion, error) {
	if s == nil || s.maps == nil {
		return nil, errors.New(errors.CodeDependency, "maps client unavailable")
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, errors.New(errors.CodeValidation, "query is required")
	}

	payload := maps.AutocompleteRequest{Input: req.Query}
	country := strings.TrimSpace(req.Country)
	if country == "" {
		country = defaultCountry
	}
	payload.IncludedRegionCodes = []string{strings.ToUpper(country)}
	if lang := strings.TrimSpace(req.Language); lang != "" {
		payload.LanguageCode = lang
	}

	resp, err := s.maps.Autocomplete(ctx, payload)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(resp))
	for _, item := range resp {
		suggestions = append(suggestions, Suggestion{
			PlaceID:     item.PlaceID,
			Description: item.Description,
		})
	}
	return suggestions, nil
}

func (s *service) Resolve(ctx context.Context, placeID string) (*Place, error) {
	if s == nil || s.maps == nil {
		return nil, errors.New(errors.CodeDependency, "maps client unavailable")
	}
	if strings.TrimSpace(placeID) == "" {
		return nil, errors.New(errors.CodeValidation, "place_id is required")
	}

	details, err := s.maps.ResolvePlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	return mapPlaceDetails(details)
}

func (s *service) Distance(ctx context.Context, req DistanceRequest) (*Distance, error) {
	if s == nil || s.maps == nil {
		return nil, errors.New(errors.CodeDependency, "maps client unavailable")
	}

	origin, err := s.Resolve(ctx, req.OriginPlaceID)
	if err != nil {
		return nil, err
	}
	destination, err := s.Resolve(ctx, req.DestinationPlaceID)
	if err != nil {
		return nil, err
	}

	estimate, err := s.maps.DrivingEstimate(ctx,
		maps.LatLng{Latitude: origin.Lat, Longitude: origin.Lng},
		maps.LatLng{Latitude: destination.Lat, Longitude: destination.Lng})
	if err != nil {
		return nil, err
	}

	return &Distance{
		Origin:          origin,
		Destination:     destination,
		DistanceKM:      estimate.DistanceKM,
		DurationMinutes: estimate.Duration.Minutes(),
		StraightLine:    estimate.StraightLine,
	}, nil
}

func mapPlaceDetails(details *maps.PlaceDetails) (*Place, error) {
	if details == nil {
		return nil, errors.New(errors.CodeDependency, "place details missing")
	}
	if details.Location.Latitude == 0 && details.Location.Longitude == 0 {
		return nil, errors.New(errors.CodeDependency, "place location missing")
	}
	address := strings.TrimSpace(details.FormattedAddress)
	if address == "" {
		return nil, errors.New(errors.CodeDependency, "formatted address missing")
	}

	find := func(kind string) string {
		for _, comp := range details.AddressComponents {
			for _, typ := range comp.Types {
				if typ == kind && comp.LongName != "" {
					return comp.LongName
				}
			}
		}
		return ""
	}

	city := find("locality")
	if city == "" {
		city = find("administrative_area_level_2")
	}
	country := find("country")
	if country == "" {
		country = defaultCountry
	}

	return &Place{
		PlaceID:    details.PlaceID,
		Address:    address,
		City:       city,
		Province:   find("administrative_area_level_1"),
		PostalCode: find("postal_code"),
		Country:    country,
		Lat:        details.Location.Latitude,
		Lng:        details.Location.Longitude,
	}, nil
}
