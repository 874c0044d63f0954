package models

import "github.com/golang-jwt/jwt/v5"

// User is the upstream account record consumed as an opaque identity.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// JWTClaims represents the JWT payload carried by bearer tokens issued
// alongside the upstream API.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AsUser converts claims into the explicit acting identity handed to
// the workflow services.
func (c *JWTClaims) AsUser() *User {
	if c == nil {
		return nil
	}
	return &User{ID: c.UserID, Name: c.Name, Email: c.Email}
}
