/*
Package account contains core data structures for identities on the Place Rank platform.

It defines the closed Role enumeration (individual traveller vs. organization) and the
Identity struct shared between the API service, the session layer, and clients.
*/
package account

import (
	"encoding/json"
	"fmt"
)

// Role identifies which of the two account kinds an identity belongs to.
// The set is closed: there are exactly two valid values, and JSON decoding
// rejects anything else.
type Role string

const (
	// RoleIndividual is a personal account that browses, rates, and comments.
	RoleIndividual Role = "individual"

	// RoleOrganization is a business account that owns and manages places.
	RoleOrganization Role = "organization"
)

// Valid reports whether r is one of the two defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleIndividual, RoleOrganization:
		return true
	}
	return false
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}

// ParseRole converts a wire string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", fmt.Errorf("unknown account role %q", s)
	}
	return role, nil
}

// UnmarshalJSON enforces the closed role set during decoding.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	role, err := ParseRole(s)
	if err != nil {
		return err
	}

	*r = role
	return nil
}
