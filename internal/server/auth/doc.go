// Package auth implements the credential and token lifecycle: bcrypt
// password hashing, HS256 access tokens carrying the user id and role, and
// the gate that admits or rejects requests based on those tokens.
//
// Tokens are stateless. A token stays valid for its whole window even if
// the user's role changes in storage; the new role only takes effect once
// a fresh token is minted at the next login.
//
// The iat and exp claims are whole Unix seconds, so the mint time is
// truncated and a token expires up to one second before mint time plus the
// configured lifetime.
package auth
