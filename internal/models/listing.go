package models

import (
	"strconv"
	"strings"
	"time"
)

// ListingStatus tracks where a listing sits in the moderation workflow.
type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "Pending"
	ListingStatusApproved ListingStatus = "Approved"
	ListingStatusRejected ListingStatus = "Rejected"
)

// Listing represents a dog posted for adoption, as served by the
// upstream HelpFurr API. Age arrives as free text ("2 years"); AgeYears
// carries the parsed leading integer used for numeric sorting and is
// nil when the text does not start with a number.
type Listing struct {
	ID         string        `json:"_id"`
	Name       string        `json:"name"`
	Age        string        `json:"age"`
	AgeYears   *int          `json:"ageYears,omitempty"`
	Gender     string        `json:"gender"`
	Color      string        `json:"color"`
	Shelter    string        `json:"shelter"`
	Condition  string        `json:"condition"`
	Vaccinated string        `json:"vaccinated"`
	Urgent     string        `json:"urgent"`
	Neutered   string        `json:"neutered"`
	Images     []string      `json:"image"`
	PostedBy   string        `json:"postedBy"`
	OwnerEmail string        `json:"clientEmail"`
	OwnerPhone string        `json:"phone"`
	Status     ListingStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// ParseAgeYears extracts the leading integer of a free-text age field.
// The second return is false when no leading integer exists; such
// listings sort after every parsable age regardless of direction.
func ParseAgeYears(age string) (int, bool) {
	fields := strings.Fields(age)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

// WithAgeYears returns a copy of the listing with AgeYears populated
// from the free-text age field.
func (l Listing) WithAgeYears() Listing {
	if n, ok := ParseAgeYears(l.Age); ok {
		l.AgeYears = &n
	} else {
		l.AgeYears = nil
	}
	return l
}
