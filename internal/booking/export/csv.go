// Package export flattens bookings into the admin CSV download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/GROOT-07/geriatric-daycare-backend/internal/booking"
	"github.com/GROOT-07/geriatric-daycare-backend/internal/schedule"
)

var header = []string{"ID", "Name", "Age", "Phone", "Day", "Time Slot", "Booked At"}

// WriteCSV writes one row per (booking, slot) pair. Bookings are expected in
// the order the repository lists them (booked_at descending, slots in
// submission order) and that order is preserved in the output.
func WriteCSV(w io.Writer, bookings []*booking.Booking) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header failed: %w", err)
	}

	for _, b := range bookings {
		for _, key := range b.Slots {
			day, window, ok := schedule.SplitKey(key)
			if !ok {
				// Pre-vocabulary rows: show the raw key rather than drop it.
				day = key
			}
			row := []string{
				b.ID,
				b.Name,
				strconv.Itoa(b.Age),
				b.Phone,
				day,
				window,
				b.BookedAt.Format(time.RFC3339),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row failed: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// Filename returns the attachment name for an export taken at t,
// e.g. "bookings-2026-08-29.csv".
func Filename(t time.Time) string {
	return fmt.Sprintf("bookings-%s.csv", t.Format("2006-01-02"))
}
