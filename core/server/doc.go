// Package server holds the HTTP server configuration.
//
// Besides the listen port it owns the pagination policy for listing
// endpoints: the default page size and the hard cap a client may request.
// ClampPageSize applies that policy to the per_page query parameter.
package server
