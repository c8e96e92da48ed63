package domain

import (
	"strconv"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// CronSpec is a parsed 5-field POSIX cron expression
// (minute hour day-of-month month day-of-week), evaluated in UTC at
// minute resolution.
type CronSpec struct {
	raw    string
	minute cronField
	hour   cronField
	dom    cronField
	month  cronField
	dow    cronField

	domStar bool
	dowStar bool
}

// cronField is a bitset over the allowed values of one cron field.
type cronField struct {
	bits uint64
}

func (f cronField) has(v int) bool {
	return f.bits&(1<<uint(v)) != 0
}

// ParseCron parses a cron expression supporting *, lists, ranges, and steps.
func ParseCron(raw string) (CronSpec, error) {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) != 5 {
		return CronSpec{}, zerr.With(ErrInvalidCronSpec, "expression", raw)
	}

	spec := CronSpec{raw: strings.Join(fields, " ")}

	var err error
	if spec.minute, err = parseCronField(fields[0], 0, 59); err != nil {
		return CronSpec{}, zerr.With(err, "expression", raw)
	}
	if spec.hour, err = parseCronField(fields[1], 0, 23); err != nil {
		return CronSpec{}, zerr.With(err, "expression", raw)
	}
	if spec.dom, err = parseCronField(fields[2], 1, 31); err != nil {
		return CronSpec{}, zerr.With(err, "expression", raw)
	}
	if spec.month, err = parseCronField(fields[3], 1, 12); err != nil {
		return CronSpec{}, zerr.With(err, "expression", raw)
	}
	if spec.dow, err = parseCronField(fields[4], 0, 7); err != nil {
		return CronSpec{}, zerr.With(err, "expression", raw)
	}

	// Day-of-week 7 is an alias for Sunday.
	if spec.dow.has(7) {
		spec.dow.bits |= 1
	}

	spec.domStar = fields[2] == "*"
	spec.dowStar = fields[4] == "*"

	return spec, nil
}

// parseCronField parses one comma-separated field into a bitset.
func parseCronField(field string, lo, hi int) (cronField, error) {
	var out cronField

	for part := range strings.SplitSeq(field, ",") {
		rangePart, stepPart, hasStep := strings.Cut(part, "/")

		step := 1
		if hasStep {
			n, err := strconv.Atoi(stepPart)
			if err != nil || n <= 0 {
				return cronField{}, zerr.With(ErrInvalidCronSpec, "field", part)
			}
			step = n
		}

		start, end := lo, hi
		switch {
		case rangePart == "*":
			// full range
		case strings.Contains(rangePart, "-"):
			a, b, _ := strings.Cut(rangePart, "-")
			var err error
			if start, err = strconv.Atoi(a); err != nil {
				return cronField{}, zerr.With(ErrInvalidCronSpec, "field", part)
			}
			if end, err = strconv.Atoi(b); err != nil {
				return cronField{}, zerr.With(ErrInvalidCronSpec, "field", part)
			}
		default:
			n, err := strconv.Atoi(rangePart)
			if err != nil {
				return cronField{}, zerr.With(ErrInvalidCronSpec, "field", part)
			}
			start, end = n, n
			// "N/S" means "N-hi/S" per POSIX extension usage.
			if hasStep {
				end = hi
			}
		}

		if start < lo || end > hi || start > end {
			return cronField{}, zerr.With(ErrInvalidCronSpec, "field", part)
		}

		for v := start; v <= end; v += step {
			out.bits |= 1 << uint(v)
		}
	}

	return out, nil
}

// String returns the normalized expression string.
func (s CronSpec) String() string {
	return s.raw
}

// Matches reports whether the schedule fires at the given instant,
// truncated to the minute in UTC.
func (s CronSpec) Matches(t time.Time) bool {
	t = t.UTC()

	if !s.minute.has(t.Minute()) || !s.hour.has(t.Hour()) || !s.month.has(int(t.Month())) {
		return false
	}

	return s.dayMatches(t)
}

// dayMatches applies the POSIX day rule: when both day fields are
// restricted, the schedule fires if either matches.
func (s CronSpec) dayMatches(t time.Time) bool {
	domOK := s.dom.has(t.Day())
	dowOK := s.dow.has(int(t.Weekday()))

	switch {
	case s.domStar && s.dowStar:
		return true
	case s.domStar:
		return dowOK
	case s.dowStar:
		return domOK
	default:
		return domOK || dowOK
	}
}

// nextSearchLimit bounds the Next scan; any sane expression fires within
// five years.
const nextSearchLimit = 5 * 366 * 24 * time.Hour

// Next returns the first instant strictly after the given time at which
// the schedule fires. The zero time is returned if no instant is found
// within the search window.
func (s CronSpec) Next(after time.Time) time.Time {
	t := after.UTC().Truncate(time.Minute).Add(time.Minute)
	limit := t.Add(nextSearchLimit)

	for t.Before(limit) {
		if !s.month.has(int(t.Month())) {
			// Jump to the first minute of the next month.
			t = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
			continue
		}
		if !s.dayMatches(t) {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
			continue
		}
		if !s.hour.has(t.Hour()) {
			t = t.Truncate(time.Hour).Add(time.Hour)
			continue
		}
		if !s.minute.has(t.Minute()) {
			t = t.Add(time.Minute)
			continue
		}
		return t
	}

	return time.Time{}
}
