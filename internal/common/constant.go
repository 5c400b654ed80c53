// Package common contains shared constants and sentinel errors used across
// authsvc components.
package common

// SessionTokenHeaderName is the gRPC metadata key used to carry the
// session token on authenticated requests.
const SessionTokenHeaderName = "session_token"
