/*
Package store implements PostgreSQL persistence for accounts, places, ratings, and comments.

Handlers depend on the narrow interfaces defined here rather than the concrete
pgx-backed implementation, so tests can substitute in-memory fakes.
*/
package store

import (
	"context"
	"time"

	"placerank/internal/app/account"
	"placerank/internal/app/place"
)

// Account is the stored form of an identity, including the credential hash
// that never leaves the server.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         account.Role
	Bio          string
	Location     string
	Description  string
	Website      string
	Phone        string
	CreatedAt    time.Time
}

// Identity strips an Account down to its client-visible form.
func (a Account) Identity() account.Identity {
	return account.Identity{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Role:        a.Role,
		Bio:         a.Bio,
		Location:    a.Location,
		Description: a.Description,
		Website:     a.Website,
		Phone:       a.Phone,
		JoinedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}

// AccountStore persists accounts and their profile fields.
type AccountStore interface {
	CreateAccount(ctx context.Context, a Account) (Account, error)
	GetAccountByEmail(ctx context.Context, email string) (Account, error)
	GetAccountByID(ctx context.Context, id string) (Account, error)
	UpdateProfile(ctx context.Context, id string, update account.ProfileUpdate) (Account, error)
}

// PlaceStore persists places and their ratings and comments.
type PlaceStore interface {
	CreatePlace(ctx context.Context, p place.Place) (place.Place, error)
	GetPlace(ctx context.Context, id string) (place.Place, error)
	ListPlaces(ctx context.Context, f place.Filter) ([]place.Place, error)
	ListPlacesByOwner(ctx context.Context, ownerID string) ([]place.Place, error)
	UpdatePlace(ctx context.Context, p place.Place) (place.Place, error)
	DeletePlace(ctx context.Context, id string) error

	// UpsertRating records or replaces the account's rating of a place and
	// returns the place with its recomputed average.
	UpsertRating(ctx context.Context, r place.Rating) (place.Place, error)

	AddComment(ctx context.Context, c place.Comment) (place.Comment, error)
	ListComments(ctx context.Context, placeID string) ([]place.Comment, error)
	ListRatingsByAccount(ctx context.Context, accountID string) ([]place.Rating, error)
	ListCommentsByAccount(ctx context.Context, accountID string) ([]place.Comment, error)
}
