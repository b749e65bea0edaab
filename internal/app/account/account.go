/*
Package account contains core data structures for identities on the Place Rank platform.

This file defines the Identity struct, the authenticated principal exchanged between
the API service and clients. Profile fields beyond id/name/email/role are optional
and role-specific.
*/
package account

// Identity represents an authenticated account as seen by clients.
// ID, Name, Email, and Role form the authentication contract; the remaining
// fields are profile data owned by the profile views.
type Identity struct {

	// ID is the stable account identifier (UUID string).
	ID string `json:"id"`

	// Name is the display name shown in navigation and profiles.
	Name string `json:"name"`

	// Email is the sign-in address.
	Email string `json:"email"`

	// Role distinguishes individual accounts from organizations.
	Role Role `json:"role"`

	// Bio is a free-form self description (individual accounts).
	Bio string `json:"bio,omitempty"`

	// Location is the account's stated home location.
	Location string `json:"location,omitempty"`

	// Description is the public blurb shown on organization profiles.
	Description string `json:"description,omitempty"`

	// Website is the organization's public URL.
	Website string `json:"website,omitempty"`

	// Phone is the organization's contact number.
	Phone string `json:"phone,omitempty"`

	// JoinedAt is the account creation date in RFC 3339 form.
	JoinedAt string `json:"joinedAt,omitempty"`
}

// ProfileUpdate carries a shallow partial update of profile fields.
// Nil pointers mean "leave unchanged"; the id, email, and role of an
// identity are never updatable through this path.
type ProfileUpdate struct {
	Name        *string `json:"name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}

// Apply merges the update onto a copy of the identity and returns it.
// Fields not mentioned by the update survive untouched.
func (u ProfileUpdate) Apply(id Identity) Identity {
	if u.Name != nil {
		id.Name = *u.Name
	}
	if u.Bio != nil {
		id.Bio = *u.Bio
	}
	if u.Location != nil {
		id.Location = *u.Location
	}
	if u.Description != nil {
		id.Description = *u.Description
	}
	if u.Website != nil {
		id.Website = *u.Website
	}
	if u.Phone != nil {
		id.Phone = *u.Phone
	}
	return id
}
