package bookings

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/caribeway/caribeway-backend/pkg/errors"
)

var exportHeader = []string{
	"reference", "status", "category", "customer_name", "customer_email",
	"pickup_address", "dropoff_address", "route_name", "payment_branch",
	"price_source", "total", "currency", "driver_id", "created_at",
}

// ExportCSV streams the filtered bookings as CSV, one row per booking.
func (s *service) ExportCSV(ctx context.Context, filters Filters, w io.Writer) error {
	rows, err := s.repo.ListAll(ctx, filters)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bookings for export")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export header")
	}
	for i := range rows {
		b := &rows[i]
		record := []string{
			b.Reference,
			b.Status.String(),
			b.Category.String(),
			b.CustomerName,
			b.CustomerEmail,
			b.PickupAddress,
			b.DropoffAddress,
			stringOrEmpty(b.RouteName),
			b.PaymentBranch.String(),
			b.PriceSource.String(),
			formatCents(b.TotalCents),
			b.Currency,
			driverIDOrEmpty(b.DriverID),
			b.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush export")
	}
	return nil
}

func formatCents(cents int) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func driverIDOrEmpty(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
