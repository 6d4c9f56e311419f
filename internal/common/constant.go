// Package common contains shared constants and sentinel errors used across
// AuthKeeper components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme expected in AuthorizationHeaderName.
const BearerScheme = "Bearer"

// DefaultRole is assigned to users registered without an explicit role.
const DefaultRole = "user"

// AdminRole is the role required by admin-only routes.
const AdminRole = "admin"
