/*
Package handler provides HTTP handler functions for places, ratings, and comments.
*/
package handler

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"placerank/internal/app/live"
	"placerank/internal/app/place"
	"placerank/internal/app/store"
	"placerank/internal/pkg/auth/jwt"
	"placerank/internal/pkg/errs"
	"placerank/internal/pkg/logx"
	"placerank/internal/pkg/randx"
	"placerank/internal/pkg/req"
	"placerank/internal/pkg/resp"
)

// MaxCommentRunes caps comment length.
const MaxCommentRunes = 1000

// HandleListPlaces returns places matching the optional category, q, and
// min_rating query parameters.
func HandleListPlaces(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filter := place.Filter{
			Category: query.Get("category"),
			Query:    query.Get("q"),
		}

		if minStr := query.Get("min_rating"); minStr != "" {
			min, err := strconv.ParseFloat(minStr, 64)
			if err != nil || min < 0 || min > 5 {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
				return
			}
			filter.MinRating = min
		}

		if filter.Category != "" && !place.ValidCategory(filter.Category) {
			resp.RespondError(w, r, errs.NewError(errs.ErrCategoryInvalid))
			return
		}

		places, err := deps.Places.ListPlaces(r.Context(), filter)
		if err != nil {
			logx.Error(err, "list_places: store query failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"places": places,
		})
	}
}

// HandleGetPlace returns one place with its comments.
func HandleGetPlace(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !randx.IsValidID(id) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		p, err := deps.Places.GetPlace(r.Context(), id)
		if err != nil {
			if err == store.ErrNotFound {
				resp.RespondError(w, r, errs.NewError(errs.ErrPlaceNotFound))
				return
			}
			logx.Error(err, "get_place: store query failed", "place_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		comments, err := deps.Places.ListComments(r.Context(), id)
		if err != nil {
			logx.Error(err, "get_place: failed to list comments", "place_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"place":    p,
			"comments": comments,
		})
	}
}

type PlaceInput struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
}

// validate checks the required fields and category membership.
func (in PlaceInput) validate() *errs.CustomError {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Location) == "" ||
		strings.TrimSpace(in.Category) == "" {
		return errs.NewError(errs.ErrPlaceFieldsMissing)
	}
	if !place.ValidCategory(in.Category) {
		return errs.NewError(errs.ErrCategoryInvalid)
	}
	return nil
}

// HandleCreatePlace publishes a new place. The route is gated to
// organization accounts.
func HandleCreatePlace(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input PlaceInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := input.validate(); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		created, err := deps.Places.CreatePlace(r.Context(), place.Place{
			ID:          randx.NewID(),
			OwnerID:     identity.ID,
			Name:        strings.TrimSpace(input.Name),
			Location:    strings.TrimSpace(input.Location),
			Category:    input.Category,
			Description: input.Description,
			PhotoURL:    input.PhotoURL,
		})
		if err != nil {
			logx.Error(err, "create_place: store insert failed", "owner_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		deps.Hub.Publish(live.Event{Type: live.EventPlaceCreated, Place: &created})

		resp.RespondSuccess(w, r, map[string]any{
			"place": created,
		})
	}
}

// HandleUpdatePlace rewrites a place's editable fields. Only the owning
// organization may update it.
func HandleUpdatePlace(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		id := chi.URLParam(r, "id")

		existing, customErr := fetchOwnedPlace(deps, r, id, identity.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input PlaceInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := input.validate(); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		existing.Name = strings.TrimSpace(input.Name)
		existing.Location = strings.TrimSpace(input.Location)
		existing.Category = input.Category
		existing.Description = input.Description
		existing.PhotoURL = input.PhotoURL

		updated, err := deps.Places.UpdatePlace(r.Context(), existing)
		if err != nil {
			logx.Error(err, "update_place: store update failed", "place_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"place": updated,
		})
	}
}

// HandleDeletePlace removes a place owned by the requesting organization.
func HandleDeletePlace(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		id := chi.URLParam(r, "id")

		if _, customErr := fetchOwnedPlace(deps, r, id, identity.ID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Places.DeletePlace(r.Context(), id); err != nil {
			logx.Error(err, "delete_place: store delete failed", "place_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		deps.Hub.Publish(live.Event{Type: live.EventPlaceDeleted, PlaceID: id})

		resp.RespondSuccess(w, r, map[string]any{
			"deleted": id,
		})
	}
}

type RatingInput struct {
	Stars int `json:"stars"`
}

// HandleAddRating records the authenticated account's star rating of a place.
// Re-rating the same place replaces the previous value.
func HandleAddRating(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		id := chi.URLParam(r, "id")

		var input RatingInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !place.ValidStars(input.Stars) {
			resp.RespondError(w, r, errs.NewError(errs.ErrRatingInvalid))
			return
		}

		if _, err := deps.Places.GetPlace(r.Context(), id); err != nil {
			if err == store.ErrNotFound {
				resp.RespondError(w, r, errs.NewError(errs.ErrPlaceNotFound))
				return
			}
			logx.Error(err, "add_rating: place lookup failed", "place_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		updated, err := deps.Places.UpsertRating(r.Context(), place.Rating{
			ID:        randx.NewID(),
			PlaceID:   id,
			AccountID: identity.ID,
			Stars:     input.Stars,
		})
		if err != nil {
			logx.Error(err, "add_rating: store upsert failed", "place_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		deps.Hub.Publish(live.Event{Type: live.EventRatingAdded, Place: &updated})

		resp.RespondSuccess(w, r, map[string]any{
			"place": updated,
		})
	}
}

type CommentInput struct {
	Text string `json:"text"`
}

// HandleAddComment stores a comment on a place.
func HandleAddComment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		id := chi.URLParam(r, "id")

		var input CommentInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		text := strings.TrimSpace(input.Text)
		if text == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrCommentEmpty))
			return
		}
		if utf8.RuneCountInString(text) > MaxCommentRunes {
			resp.RespondError(w, r, errs.NewError(errs.ErrCommentTooLong))
			return
		}

		p, err := deps.Places.GetPlace(r.Context(), id)
		if err != nil {
			if err == store.ErrNotFound {
				resp.RespondError(w, r, errs.NewError(errs.ErrPlaceNotFound))
				return
			}
			logx.Error(err, "add_comment: place lookup failed", "place_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		created, err := deps.Places.AddComment(r.Context(), place.Comment{
			ID:         randx.NewID(),
			PlaceID:    id,
			AccountID:  identity.ID,
			AuthorName: identity.Name,
			Text:       text,
		})
		if err != nil {
			logx.Error(err, "add_comment: store insert failed", "place_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		deps.Hub.Publish(live.Event{Type: live.EventCommentAdded, Place: &p})

		resp.RespondSuccess(w, r, map[string]any{
			"comment": created,
		})
	}
}

// fetchOwnedPlace loads a place and verifies the requester owns it.
func fetchOwnedPlace(deps *AppDeps, r *http.Request, id, ownerID string) (place.Place, *errs.CustomError) {
	if !randx.IsValidID(id) {
		return place.Place{}, errs.NewError(errs.ErrInvalidParams)
	}

	p, err := deps.Places.GetPlace(r.Context(), id)
	if err != nil {
		if err == store.ErrNotFound {
			return place.Place{}, errs.NewError(errs.ErrPlaceNotFound)
		}
		logx.Error(err, "place lookup failed", "place_id", id)
		return place.Place{}, errs.NewError(errs.ErrUnknown)
	}

	if p.OwnerID != ownerID {
		return place.Place{}, errs.NewError(errs.ErrNotPlaceOwner)
	}

	return p, nil
}
