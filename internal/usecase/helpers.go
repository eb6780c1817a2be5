package usecase

import (
	"errors"
	"strings"
	"time"

	"clinic-management/pkg/dateutil"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
)

// clock holds the time source and the clinic time zone used to decide "today".
type clock struct {
	now func() time.Time
	loc *time.Location
}

func newClock(loc *time.Location) clock {
	if loc == nil {
		loc = time.UTC
	}
	return clock{now: time.Now, loc: loc}
}

func (c clock) today() time.Time {
	return dateutil.Today(c.now, c.loc)
}

func parseDate(value string) (time.Time, error) {
	date, err := dateutil.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return date, nil
}

func parseTimeOfDay(value string) (datatypes.Time, error) {
	t, err := time.Parse(dateutil.TimeLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	return datatypes.NewTime(t.Hour(), t.Minute(), 0, 0), nil
}

// isDuplicateKeyError checks if the error is a unique violation on a
// constraint containing constraintName. PostgreSQL reports it through
// pgconn (code 23505); SQLite through the translated gorm error.
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") &&
		strings.Contains(strings.ToLower(err.Error()), strings.ToLower(constraintName))
}
