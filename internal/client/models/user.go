// Package models holds the client-side views of server responses.
package models

// User is the public part of an account as returned by /register and /login.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AccessClaims is the decoded token echoed back by the protected routes.
type AccessClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Iat  int64  `json:"iat"`
	Exp  int64  `json:"exp"`
}

// AccessResult is the body of a successful /user or /admin call.
type AccessResult struct {
	Message string       `json:"message"`
	User    AccessClaims `json:"user"`
}
