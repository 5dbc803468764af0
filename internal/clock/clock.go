package clock

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day and no zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a date in the YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// String formats the date as zero-padded YYYY-MM-DD.
func (d Date) String() string {
	return d.time().Format(dateLayout)
}

// AddDays returns the date n calendar days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	t := d.time().AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Sub returns the number of whole calendar days from other to d.
func (d Date) Sub(other Date) int {
	return int(d.time().Sub(other.time()) / (24 * time.Hour))
}

func (d Date) Before(other Date) bool { return d.time().Before(other.time()) }

func (d Date) After(other Date) bool { return d.time().After(other.time()) }

func (d Date) IsZero() bool { return d == Date{} }

// time anchors the date at midnight UTC so day arithmetic is unaffected
// by DST transitions in any wall-clock zone.
func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// ResolveZone returns the zone named by the TZ env var when it is set and
// valid, otherwise the host's local zone. An invalid override is logged
// as a warning, not an error.
func ResolveZone(logger zerolog.Logger) *time.Location {
	name := os.Getenv("TZ")
	if name == "" {
		return time.Local
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn().
			Str("tz", name).
			Msg("invalid TZ env var value, defaulting to the host's time zone")
		return time.Local
	}
	return loc
}

// Clock resolves "today" in a fixed location.
type Clock struct {
	loc *time.Location
	// now is swappable for tests.
	now func() time.Time
}

func New(loc *time.Location) *Clock {
	return &Clock{loc: loc, now: time.Now}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today floors the current instant in the clock's zone to a calendar date.
func (c *Clock) Today() Date {
	t := c.Now()
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}
