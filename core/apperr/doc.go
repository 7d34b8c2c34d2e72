// Package apperr defines the application error taxonomy.
//
// Services return *apperr.Error values classified by Kind. The HTTP layer
// maps kinds to status codes via HTTPStatus and decides with IsClient whether
// the message may be surfaced verbatim or must be replaced by a generic one.
//
// # Kinds
//
//   - NotFound: a referenced store or product id has no active row (404)
//   - Validation: malformed batch shape, e.g. a flat-batch item without a
//     store_id (422)
//   - ScopeConflict: an update item resolves to a row owned by a different
//     store than the one being reconciled (409)
//   - Unauthorized: missing or invalid credentials/token (401)
//   - Persistence: a repository write affected zero rows when one was
//     expected; surfaced as a generic 500
package apperr
