package service

import (
	"sort"
	"strings"

	"github.com/helpfurr/adopt-api/internal/models"
)

// DeriveView computes the catalog view a prospective adopter sees:
// search match, then attribute filters, then ordering. The input slice
// is never mutated and the result is always freshly allocated, so
// calling it twice with the same inputs yields identical output.
//
// Search keeps a listing when its name, color, or gender contains the
// term case-insensitively; an empty term matches everything. Color and
// gender filters are exact case-insensitive matches and compose with
// search by AND. A listing missing the field a criterion references
// simply does not match it. Listings without a parsable age sort after
// every aged listing in both age directions.
func DeriveView(catalog []models.Listing, criteria models.FilterCriteria) []models.Listing {
	view := make([]models.Listing, 0, len(catalog))
	search := strings.ToLower(criteria.Search)
	color := strings.ToLower(criteria.Color)
	gender := strings.ToLower(criteria.Gender)

	for _, listing := range catalog {
		if search != "" && !matchesSearch(listing, search) {
			continue
		}
		if color != "" && strings.ToLower(listing.Color) != color {
			continue
		}
		if gender != "" && strings.ToLower(listing.Gender) != gender {
			continue
		}
		view = append(view, listing)
	}

	if less := comparatorFor(criteria.Sort); less != nil {
		sort.SliceStable(view, func(i, j int) bool {
			return less(view[i], view[j])
		})
	}

	return view
}

func matchesSearch(l models.Listing, term string) bool {
	return strings.Contains(strings.ToLower(l.Name), term) ||
		strings.Contains(strings.ToLower(l.Color), term) ||
		strings.Contains(strings.ToLower(l.Gender), term)
}

func comparatorFor(key models.SortKey) func(a, b models.Listing) bool {
	switch key {
	case models.SortKeyAgeAsc:
		return func(a, b models.Listing) bool { return ageLess(a, b, false) }
	case models.SortKeyAgeDesc:
		return func(a, b models.Listing) bool { return ageLess(a, b, true) }
	case models.SortKeyNameAsc:
		return func(a, b models.Listing) bool { return nameCompare(a, b) < 0 }
	case models.SortKeyNameDesc:
		return func(a, b models.Listing) bool { return nameCompare(a, b) > 0 }
	default:
		return nil
	}
}

// ageLess orders by the parsed leading integer of the age field.
// Unparsable ages are never "less" than parsable ones, which combined
// with a stable sort pins them to the tail for both directions.
func ageLess(a, b models.Listing, desc bool) bool {
	av, aok := ageOf(a)
	bv, bok := ageOf(b)
	switch {
	case aok && bok:
		if desc {
			return av > bv
		}
		return av < bv
	case aok:
		return true
	default:
		return false
	}
}

func ageOf(l models.Listing) (int, bool) {
	if l.AgeYears != nil {
		return *l.AgeYears, true
	}
	return models.ParseAgeYears(l.Age)
}

// nameCompare folds case before comparing, which matches how the
// catalog's own data is capitalised; full locale collation is not
// needed for the site's single-language corpus.
func nameCompare(a, b models.Listing) int {
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}
