package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuoteHotelDeluxeExample(t *testing.T) {
	t.Parallel()

	res := QuoteHotel(HotelOptions{
		NightlyRate: decimal.NewFromInt(100),
		CheckIn:     day(2024, 6, 1),
		CheckOut:    day(2024, 6, 4),
		Rooms:       3,
		RoomType:    enums.RoomTypeDeluxe,
	})

	if !res.Submittable {
		t.Fatal("three-night stay should be submittable")
	}
	// 100 * 3 nights * 3 rooms * 1.3 = 1170
	if !res.Total.Equal(decimal.NewFromInt(1170)) {
		t.Fatalf("total %s, want 1170", res.Total)
	}
}

func TestQuoteHotelNeverZeroWhenSubmittable(t *testing.T) {
	t.Parallel()

	for rooms := 1; rooms <= 4; rooms++ {
		for nights := 1; nights <= 7; nights++ {
			res := QuoteHotel(HotelOptions{
				NightlyRate: decimal.NewFromInt(80),
				CheckIn:     day(2024, 3, 1),
				CheckOut:    day(2024, 3, 1+nights),
				Rooms:       rooms,
				RoomType:    enums.RoomTypeStandard,
			})
			if !res.Submittable {
				t.Fatalf("rooms=%d nights=%d should be submittable", rooms, nights)
			}
			floor := decimal.NewFromInt(80).Mul(decimal.NewFromInt(int64(nights)))
			if res.Total.LessThan(floor) {
				t.Fatalf("total %s below nightly floor %s", res.Total, floor)
			}
		}
	}
}

func TestQuoteHotelInvertedDatesNotSubmittable(t *testing.T) {
	t.Parallel()

	res := QuoteHotel(HotelOptions{
		NightlyRate: decimal.NewFromInt(100),
		CheckIn:     day(2024, 6, 4),
		CheckOut:    day(2024, 6, 1),
		Rooms:       1,
		RoomType:    enums.RoomTypeSuite,
	})

	if res.Submittable {
		t.Fatal("inverted date range must not be submittable")
	}
	if res.Total.Sign() != 0 {
		t.Fatalf("inverted date range must price at zero, got %s", res.Total)
	}
}

func TestNightsBetweenCeilsPartialDays(t *testing.T) {
	t.Parallel()

	checkIn := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)

	if n := nightsBetween(checkIn, checkOut); n != 2 {
		t.Fatalf("expected 2 nights for a partial span, got %d", n)
	}
	if n := nightsBetween(checkOut, checkIn); n != 0 {
		t.Fatalf("inverted span must clamp to 0, got %d", n)
	}
}
