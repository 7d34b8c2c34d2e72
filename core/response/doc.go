// Package response renders the API's JSON envelope.
//
// Every endpoint answers with {code, is_success, message, data}. Success and
// Created build the happy-path envelope; FromError translates a service error
// into the right status using the apperr taxonomy, keeping internal failure
// details out of the payload.
package response
