package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/caribeway/caribeway-backend/api/responses"
	"github.com/caribeway/caribeway-backend/api/validators"
	"github.com/caribeway/caribeway-backend/internal/bookings"
	pkgerrors "github.com/caribeway/caribeway-backend/pkg/errors"
	"github.com/caribeway/caribeway-backend/pkg/logger"
)

// BookingCreate submits a booking from the public funnel. The total is
// recomputed server-side; client-sent prices are never trusted.
func BookingCreate(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		var body bookings.CreateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, booking)
	}
}

// BookingLookup returns one booking by reference. The customer email must
// match; the endpoint is unauthenticated.
func BookingLookup(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		reference := strings.TrimSpace(chi.URLParam(r, "reference"))
		email := strings.TrimSpace(r.URL.Query().Get("email"))
		if reference == "" || email == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "reference and email are required"))
			return
		}

		booking, err := svc.GetByReference(r.Context(), reference, email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, booking)
	}
}
