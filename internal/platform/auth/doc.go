// Package auth issues and verifies bearer tokens, hashes passwords,
// tracks revoked tokens and answers role based access questions
package auth
