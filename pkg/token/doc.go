// Package token issues and verifies profile-scoped access tokens.
//
// Tokens are HS256 JWTs signed with the configured API token. A scoped token
// lets a study client save progress for one profile without handing it the
// master token:
//
//	tok, err := token.Issue(secret, "alice", 24*time.Hour)
//	profile, err := token.Verify(secret, tok) // "alice"
package token
