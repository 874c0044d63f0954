package models

// SortKey enumerates the orderings a catalog view can request.
type SortKey string

const (
	SortKeyNone     SortKey = ""
	SortKeyAgeAsc   SortKey = "age-asc"
	SortKeyAgeDesc  SortKey = "age-desc"
	SortKeyNameAsc  SortKey = "name-asc"
	SortKeyNameDesc SortKey = "name-desc"
)

// ParseSortKey maps raw input onto a known sort key. Unknown values
// fall back to no ordering, matching the original picker's behaviour.
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortKeyAgeAsc, SortKeyAgeDesc, SortKeyNameAsc, SortKeyNameDesc:
		return SortKey(raw)
	default:
		return SortKeyNone
	}
}

// FilterCriteria captures a catalog view request: a free-text search
// term, exact-match attribute filters, and an optional sort key. The
// zero value matches the whole catalog in source order.
type FilterCriteria struct {
	Search string  `json:"search"`
	Color  string  `json:"color"`
	Gender string  `json:"gender"`
	Sort   SortKey `json:"sort"`
}

// IsZero reports whether the criteria would pass the catalog through
// untouched.
func (c FilterCriteria) IsZero() bool {
	return c.Search == "" && c.Color == "" && c.Gender == "" && c.Sort == SortKeyNone
}
