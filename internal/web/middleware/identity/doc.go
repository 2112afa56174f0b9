// Package identity provides fiber middlewares that read the caller identity
// asserted by the upstream gateway and check capabilities against the guard.
//
// The gateway authenticates the user and forwards two headers:
//
//	X-User-ID:   pastor.ana
//	X-User-Role: supervisor
//
// Requests without a known role are rejected with 401.
package identity
