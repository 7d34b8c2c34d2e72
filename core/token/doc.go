// Package token issues and validates the JWT bearer tokens members
// authenticate with.
//
// Tokens are HS256-signed and carry the member id as a custom claim. The
// service is stateless; refresh simply issues a new token for the same
// member. Parse failures are reported as Unauthorized errors from the apperr
// taxonomy so the HTTP layer maps them to 401 responses.
package token
