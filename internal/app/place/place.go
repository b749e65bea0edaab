/*
Package place contains the core data structures for places, ratings, and comments.

A place is a tourist or business location published by an organization account.
Individual accounts rate places (1 to 5 stars, one rating per account) and leave
comments on them.
*/
package place

import (
	"strings"
	"time"
)

// Categories is the closed list of place categories offered by the platform.
var Categories = []string{
	"Historical Sites",
	"Museums",
	"Parks",
	"Shopping",
	"Entertainment",
	"Restaurants",
}

// Place represents a published location.
type Place struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Rating is a single account's star rating of a place.
type Rating struct {
	ID        string    `json:"id"`
	PlaceID   string    `json:"placeId"`
	AccountID string    `json:"accountId"`
	Stars     int       `json:"stars"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a free-form remark left on a place.
type Comment struct {
	ID         string    `json:"id"`
	PlaceID    string    `json:"placeId"`
	AccountID  string    `json:"accountId"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Filter narrows a place listing. Zero values mean "no constraint".
type Filter struct {
	// Category restricts results to one category.
	Category string

	// Query matches case-insensitively against name and location.
	Query string

	// MinRating keeps only places with an average rating at or above it.
	MinRating float64
}

// ValidCategory reports whether c names one of the platform categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// ValidStars reports whether n is a legal star rating.
func ValidStars(n int) bool {
	return n >= 1 && n <= 5
}

// Matches reports whether p satisfies the filter. Listing is normally
// filtered in SQL; this is used by clients filtering an in-memory page.
func (f Filter) Matches(p Place) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Location), q) {
			return false
		}
	}
	return true
}
