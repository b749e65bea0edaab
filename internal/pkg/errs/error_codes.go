/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally within
the server and in responses sent to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON is malformed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate exceeded the configured limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Place, Rating, and Comment Errors
const (
	// ErrPlaceNotFound indicates that the requested place does not exist.
	ErrPlaceNotFound = 2001

	// ErrCategoryInvalid indicates a category outside the platform's category list.
	ErrCategoryInvalid = 2002

	// ErrPlaceFieldsMissing indicates that name, location, or category was left empty.
	ErrPlaceFieldsMissing = 2003

	// ErrNotPlaceOwner indicates an attempt to modify a place owned by another organization.
	ErrNotPlaceOwner = 2004

	// ErrRatingInvalid indicates a star rating outside the 1..5 range.
	ErrRatingInvalid = 2101

	// ErrCommentEmpty indicates a comment with no text.
	ErrCommentEmpty = 2201

	// ErrCommentTooLong indicates comment text over the maximum length.
	ErrCommentTooLong = 2202
)

// 3xxx: Account, Session, and Authorization Errors
const (
	// ErrInvalidEmail indicates an email address that failed basic shape checks.
	ErrInvalidEmail = 3001

	// ErrInvalidPassword indicates a password outside the accepted length bounds.
	ErrInvalidPassword = 3002

	// ErrInvalidRole indicates a role outside the closed {individual, organization} set.
	ErrInvalidRole = 3003

	// ErrEmailTaken indicates a registration attempt with an email already in use.
	ErrEmailTaken = 3004

	// ErrInvalidCredentials indicates a failed email/password verification.
	ErrInvalidCredentials = 3005

	// ErrAccountNotFound indicates that the referenced account does not exist.
	ErrAccountNotFound = 3006

	// ErrAlreadyLoggedIn indicates an auth request carrying a valid identity token.
	ErrAlreadyLoggedIn = 3007

	// ErrUnauthorized indicates a request without a valid identity.
	ErrUnauthorized = 3101

	// ErrOrganizationOnly indicates an operation reserved for organization accounts.
	ErrOrganizationOnly = 3102
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server internal error.
	ErrUnknown = 5000

	// ErrPhotoStorageFailed indicates a failure talking to the photo storage backend.
	ErrPhotoStorageFailed = 5001
)
