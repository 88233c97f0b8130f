// Package common contains shared constants and sentinel errors used across
// bookswap components.
package common

// AuthHeaderName is the HTTP header used to carry the bearer credential on
// outbound requests.
const AuthHeaderName = "Authorization"

// BearerPrefix is prepended to the credential in the authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName carries a per-request id for log correlation.
const RequestIDHeaderName = "X-Request-Id"

// CredentialSlot is the single logical key under which the auth token is
// persisted in the local client database.
const CredentialSlot = "authToken"
