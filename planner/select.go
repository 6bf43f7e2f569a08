package planner

import (
	"strconv"
	"strings"
)

type Status string

const (
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
)

// Preference selects the ordering used to pick the best record.
type Preference string

const (
	Cheapest      Preference = "cheapest"
	Fastest       Preference = "fastest"
	HighestRating Preference = "highest_rating"
)

// SelectionResult is either Found (Result set) or NotFound (Result nil).
// Callers branch on Status, never on the payload.
type SelectionResult[P any] struct {
	Status  Status `json:"status"`
	Result  *P     `json:"result,omitempty"`
	Message string `json:"message"`
}

func found[P any](p P, msg string) SelectionResult[P] {
	return SelectionResult[P]{Status: StatusFound, Result: &p, Message: msg}
}

func notFound[P any](msg string) SelectionResult[P] {
	return SelectionResult[P]{Status: StatusNotFound, Message: msg}
}

func (r SelectionResult[P]) IsFound() bool { return r.Status == StatusFound && r.Result != nil }

// Get returns the payload and whether the result is Found.
func (r SelectionResult[P]) Get() (P, bool) {
	if !r.IsFound() {
		var zero P
		return zero, false
	}
	return *r.Result, true
}

// Select filters records with match and returns the best survivor according
// to better. better(a, b) must report whether a is strictly preferable to b.
//
// Ties keep the earliest record in input order, so the choice is stable for a
// fixed dataset.
func Select[T any](records []T, match func(T) bool, better func(a, b T) bool) (T, bool) {
	var best T
	ok := false
	for _, r := range records {
		if !match(r) {
			continue
		}
		if !ok || better(r, best) {
			best = r
			ok = true
		}
	}
	return best, ok
}

// sameKey is the exact-match rule for every string key: trimmed, case-insensitive.
func sameKey(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
