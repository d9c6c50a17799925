// Package rfc9110 implements the parts of HTTP Semantics (RFC 9110) needed for
// building responses and evaluating conditional requests.
//
// Files are named after the RFC sections they implement. Quoted RFC text is
// marked with `§`.
package rfc9110
