package controllers

import (
	"net/http"
	"strings"

	"github.com/caribeway/caribeway-backend/api/responses"
	"github.com/caribeway/caribeway-backend/api/validators"
	"github.com/caribeway/caribeway-backend/internal/places"
	pkgerrors "github.com/caribeway/caribeway-backend/pkg/errors"
	"github.com/caribeway/caribeway-backend/pkg/logger"
)

// PlacesSuggest returns autocomplete suggestions for pickup/dropoff inputs.
func PlacesSuggest(svc places.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "places service unavailable"))
			return
		}

		req := places.SuggestRequest{
			Query:    strings.TrimSpace(r.URL.Query().Get("query")),
			Country:  strings.TrimSpace(r.URL.Query().Get("country")),
			Language: strings.TrimSpace(r.URL.Query().Get("language")),
		}

		suggestions, err := svc.Suggest(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"suggestions": suggestions})
	}
}

type resolvePlacePayload struct {
	PlaceID string `json:"place_id"`
}

// PlacesResolve resolves a place ID into a normalized location.
func PlacesResolve(svc places.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "places service unavailable"))
			return
		}

		var payload resolvePlacePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		place, err := svc.Resolve(ctx, payload.PlaceID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, place)
	}
}

type distancePayload struct {
	OriginPlaceID      string `json:"origin_place_id"`
	DestinationPlaceID string `json:"destination_place_id"`
}

// PlacesDistance estimates the driving distance between two resolved places.
func PlacesDistance(svc places.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "places service unavailable"))
			return
		}

		var payload distancePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		distance, err := svc.Distance(ctx, places.DistanceRequest{
			OriginPlaceID:      payload.OriginPlaceID,
			DestinationPlaceID: payload.DestinationPlaceID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, distance)
	}
}
