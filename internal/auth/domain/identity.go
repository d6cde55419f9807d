// Package domain defines the data model for the credential lifecycle:
// identities, token records, signing keys, and revocations.
package domain

// Identity describes an authenticated caller. It is supplied by the
// external identity collaborator and immutable once embedded in a token.
type Identity struct {
	// Subject is the opaque subject identifier.
	Subject string

	// Roles are the caller's role/permission labels.
	Roles []string

	// Tenant is an optional tenant/scope tag.
	Tenant string
}
