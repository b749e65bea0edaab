/*
Package handler provides the HTTP handler for presigned photo uploads.

Organization accounts request a presigned URL here, upload the photo directly
to object storage, and then reference the returned public URL when creating
or updating a place.
*/
package handler

import (
	"net/http"
	"path"
	"strings"
	"time"

	"placerank/internal/pkg/errs"
	"placerank/internal/pkg/logx"
	"placerank/internal/pkg/randx"
	"placerank/internal/pkg/req"
	"placerank/internal/pkg/resp"
)

const (
	// PresignUploadDuration is the lifetime of an issued upload URL.
	PresignUploadDuration = 10 * time.Minute

	// MaxPhotoBytes caps photo uploads at 10 MB.
	MaxPhotoBytes int64 = 10 << 20
)

// allowedPhotoTypes is the closed set of accepted image MIME types.
var allowedPhotoTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type PresignPhotoInput struct {
	PlaceID  string `json:"placeId"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// HandlePresignPhotoURL issues a presigned upload URL for a place photo.
// The route is gated to organization accounts.
func HandlePresignPhotoURL(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Storage == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrPhotoStorageFailed))
			return
		}

		var input PresignPhotoInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ext, ok := allowedPhotoTypes[input.MimeType]
		if !ok || input.FileSize <= 0 || input.FileSize > MaxPhotoBytes {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if !randx.IsValidID(input.PlaceID) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		key, err := randx.PhotoKey(input.PlaceID, ext)
		if err != nil {
			logx.Error(err, "presign_photo: key generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		uploadURL, err := deps.Storage.PresignUpload(r.Context(), key, input.MimeType, input.FileSize, PresignUploadDuration)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrPhotoStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"uploadUrl": uploadURL,
			"key":       key,
			"photoUrl":  publicPhotoURL(deps, key),
		})
	}
}

// publicPhotoURL maps a storage key to its public URL. Without a configured
// public base, the bare key is returned and clients presign downloads instead.
func publicPhotoURL(deps *AppDeps, key string) string {
	base := deps.Config.S3PublicBaseURL
	if base == "" {
		return key
	}
	return strings.TrimRight(base, "/") + "/" + path.Clean(key)
}
