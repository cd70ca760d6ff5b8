package codec

import (
	"time"

	"github.com/reoring/termpose"
	"github.com/reoring/termpose/term"
)

var (
	// Time encodes instants as RFC3339 text in UTC.
	Time = TimeRFC3339{}
	// Duration encodes durations the way time.Duration.String does.
	Duration = DurationText{}
)

// TimeRFC3339 converts between RFC3339 leaves and time.Time.
type TimeRFC3339 struct{}

func (TimeRFC3339) Encode(v time.Time) term.Term { return term.NewLeaf(formatRFC3339Canonical(v)) }

func (TimeRFC3339) Decode(t term.Term) (time.Time, error) {
	l, ok := t.(term.Leaf)
	if !ok {
		return time.Time{}, termpose.NewError(t, termpose.CodeInvalidType, "expected an RFC3339 time, found list")
	}
	v, err := parseRFC3339(l.Text)
	if err != nil {
		return time.Time{}, termpose.WrapError(t, termpose.CodeInvalidFormat, err, "invalid RFC3339 time")
	}
	return v, nil
}

// DurationText converts between leaves like "1h30m" and time.Duration.
type DurationText struct{}

func (DurationText) Encode(v time.Duration) term.Term { return term.NewLeaf(v.String()) }

func (DurationText) Decode(t term.Term) (time.Duration, error) {
	l, ok := t.(term.Leaf)
	if !ok {
		return 0, termpose.NewError(t, termpose.CodeInvalidType, "expected a duration, found list")
	}
	d, err := time.ParseDuration(l.Text)
	if err != nil {
		return 0, termpose.WrapError(t, termpose.CodeInvalidFormat, err, "couldn't parse duration")
	}
	return d, nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
