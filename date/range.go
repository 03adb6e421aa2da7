package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// Contains returns true if date is included in the range, boundaries included.
// A zero boundary is unbounded.
func (r Range) Contains(date Date) bool {
	return (r.From.IsZero() || !date.Before(r.From)) && (r.To.IsZero() || !date.After(r.To))
}

// Days returns the number of calendar days between From and To.
func (r Range) Days() int { return r.To.Sub(r.From) }

// String formats the range as "from..to".
func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }

// ParseRange parses optional boundaries. An empty 'from' is unbounded to the
// past, an empty 'to' unbounded to the future.
func ParseRange(from, to string) (Range, error) {
	r := Range{From: New(1, 1, 1), To: New(9999, 12, 31)}
	var err error
	if from != "" {
		if r.From, err = Parse(from); err != nil {
			return Range{}, err
		}
	}
	if to != "" {
		if r.To, err = Parse(to); err != nil {
			return Range{}, err
		}
	}
	if r.To.Before(r.From) {
		return Range{}, fmt.Errorf("invalid range %s: end is before start", r)
	}
	return r, nil
}
