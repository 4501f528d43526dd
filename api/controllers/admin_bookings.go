package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/caribeway/caribeway-backend/api/responses"
	"github.com/caribeway/caribeway-backend/api/validators"
	"github.com/caribeway/caribeway-backend/internal/bookings"
	"github.com/caribeway/caribeway-backend/pkg/enums"
	pkgerrors "github.com/caribeway/caribeway-backend/pkg/errors"
	"github.com/caribeway/caribeway-backend/pkg/logger"
	"github.com/caribeway/caribeway-backend/pkg/pagination"
)

// AdminBookingList returns a filtered, cursor-paginated page of bookings.
func AdminBookingList(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		filters, err := buildBookingFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		list, err := svc.ListBookings(r.Context(), *filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AdminBookingConfirm moves a pending booking to confirmed. Used for the
// record-and-confirm branch and as a manual override for paid bookings.
func AdminBookingConfirm(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return bookingTransition(svc, logg, func(r *http.Request, id uuid.UUID) (any, error) {
		return svc.Confirm(r.Context(), id)
	})
}

// AdminBookingCancel cancels a pending or confirmed booking.
func AdminBookingCancel(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return bookingTransition(svc, logg, func(r *http.Request, id uuid.UUID) (any, error) {
		return svc.Cancel(r.Context(), id)
	})
}

type assignDriverBody struct {
	DriverID uuid.UUID `json:"driver_id" validate:"required"`
}

// AdminBookingAssignDriver attaches a driver to a confirmed booking.
func AdminBookingAssignDriver(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "bookingId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid booking id"))
			return
		}

		var body assignDriverBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.AssignDriver(r.Context(), id, body.DriverID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, booking)
	}
}

// AdminBookingExport streams the filtered bookings as CSV.
func AdminBookingExport(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		filters, err := buildBookingFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="bookings-%s.csv"`, time.Now().UTC().Format("20060102")))

		if err := svc.ExportCSV(r.Context(), *filters, w); err != nil {
			// Headers may already be out; log instead of rewriting the status.
			if logg != nil {
				logg.Error(r.Context(), "booking export failed", err)
			}
		}
	}
}

func bookingTransition(svc bookings.Service, logg *logger.Logger, apply func(r *http.Request, id uuid.UUID) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "bookingId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid booking id"))
			return
		}

		booking, err := apply(r, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, booking)
	}
}

func buildBookingFilters(r *http.Request) (*bookings.Filters, error) {
	filters := &bookings.Filters{
		CustomerEmail: strings.TrimSpace(r.URL.Query().Get("email")),
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseBookingStatus(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		filters.Status = &status
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		category, err := enums.ParseServiceCategory(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		filters.Category = &category
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("driver_id")); raw != "" {
		driverID, err := uuid.Parse(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid driver id")
		}
		filters.DriverID = &driverID
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid from timestamp")
		}
		filters.DateFrom = &from
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid to timestamp")
		}
		filters.DateTo = &to
	}

	return filters, nil
}
