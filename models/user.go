package models

import "github.com/golang-jwt/jwt/v5"

// User is the authenticated-user blob persisted by the session gate. Shape
// matches what the web client stores.
type User struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Type      string `json:"type"`
	LoginTime string `json:"loginTime"`
}

// SessionClaims are the claims carried by a session token issued after the
// passcode gate. The gate is a demo gate, not access control; the token just
// gives the HTTP surface a bearer shape.
type SessionClaims struct {
	Name     string `json:"name"`
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}
