/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the CustomError corresponding to every application error code.
// Entries without an explicit Status default to HTTP 200 with a non-zero business code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Place, Rating, and Comment Errors
	ErrPlaceNotFound:      {Code: ErrPlaceNotFound, Message: "Place not found.", Status: http.StatusNotFound},
	ErrCategoryInvalid:    {Code: ErrCategoryInvalid, Message: "Please select a valid category."},
	ErrPlaceFieldsMissing: {Code: ErrPlaceFieldsMissing, Message: "Name, location, and category are required."},
	ErrNotPlaceOwner:      {Code: ErrNotPlaceOwner, Message: "You can only manage places you created.", Status: http.StatusForbidden},
	ErrRatingInvalid:      {Code: ErrRatingInvalid, Message: "Rating must be between 1 and 5 stars."},
	ErrCommentEmpty:       {Code: ErrCommentEmpty, Message: "Comment cannot be empty."},
	ErrCommentTooLong:     {Code: ErrCommentTooLong, Message: "Comment is too long."},

	// 3xxx: Account, Session, and Authorization Errors
	ErrInvalidEmail:       {Code: ErrInvalidEmail, Message: "Please enter a valid email address."},
	ErrInvalidPassword:    {Code: ErrInvalidPassword, Message: "Password must be between 6 and 50 characters."},
	ErrInvalidRole:        {Code: ErrInvalidRole, Message: "Invalid account type."},
	ErrEmailTaken:         {Code: ErrEmailTaken, Message: "An account with this email already exists."},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect email or password."},
	ErrAccountNotFound:    {Code: ErrAccountNotFound, Message: "Account not found."},
	ErrAlreadyLoggedIn:    {Code: ErrAlreadyLoggedIn, Message: "You are already signed in."},
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrOrganizationOnly:   {Code: ErrOrganizationOnly, Message: "Only organization accounts can do this.", Status: http.StatusForbidden},

	// 5xxx: Internal System Errors
	ErrUnknown:            {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrPhotoStorageFailed: {Code: ErrPhotoStorageFailed, Message: "Photo upload failed. Please try again."},
}
