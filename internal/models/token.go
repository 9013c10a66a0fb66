package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the payload of the bearer tokens accepted on session routes.
// The subject names the operator driving the table.
type TokenClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
