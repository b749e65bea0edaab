/*
Package handler provides HTTP handler functions for authentication and account management.

This file covers the profile endpoints: fetching the signed-in account's
profile (including its activity) and applying partial profile updates.
*/
package handler

import (
	"net/http"

	"placerank/internal/app/account"
	"placerank/internal/app/store"
	"placerank/internal/pkg/auth/jwt"
	"placerank/internal/pkg/errs"
	"placerank/internal/pkg/logx"
	"placerank/internal/pkg/req"
	"placerank/internal/pkg/resp"
)

// HandleGetProfile returns the authenticated account's full profile. The
// response also carries role-specific activity: ratings and comments for
// individuals, published places for organizations.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		acct, err := deps.Accounts.GetAccountByID(r.Context(), identity.ID)
		if err != nil {
			logx.Warn("get_profile: account not found", "id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrAccountNotFound))
			return
		}

		data := map[string]any{
			"user": acct.Identity(),
		}

		switch acct.Role {
		case account.RoleIndividual:
			ratings, err := deps.Places.ListRatingsByAccount(r.Context(), acct.ID)
			if err != nil {
				logx.Error(err, "get_profile: failed to list ratings", "id", acct.ID)
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
				return
			}
			comments, err := deps.Places.ListCommentsByAccount(r.Context(), acct.ID)
			if err != nil {
				logx.Error(err, "get_profile: failed to list comments", "id", acct.ID)
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
				return
			}
			data["ratings"] = ratings
			data["comments"] = comments

		case account.RoleOrganization:
			places, err := deps.Places.ListPlacesByOwner(r.Context(), acct.ID)
			if err != nil {
				logx.Error(err, "get_profile: failed to list places", "id", acct.ID)
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
				return
			}
			data["places"] = places
		}

		resp.RespondSuccess(w, r, data)
	}
}

// HandleUpdateProfile applies a shallow partial update to the profile.
// Fields absent from the request body are preserved; id, email, and role
// cannot be changed through this endpoint.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var update account.ProfileUpdate
		if customErr := req.BindJSON(w, r, &update); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if update.Name != nil && *update.Name == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		updated, err := deps.Accounts.UpdateProfile(r.Context(), identity.ID, update)
		if err != nil {
			if err == store.ErrNotFound {
				resp.RespondError(w, r, errs.NewError(errs.ErrAccountNotFound))
				return
			}
			logx.Error(err, "update_profile: store update failed", "id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		merged := updated.Identity()

		// Re-issue the token so the embedded name stays in sync with the profile.
		token, err := issueToken(deps, merged)

		data := map[string]any{
			"user": merged,
		}
		if err != nil {
			logx.Error(err, "update_profile: token refresh failed, client keeps old token", "id", identity.ID)
		} else {
			data["token"] = token
		}

		resp.RespondSuccess(w, r, data)
	}
}
