package model

import "github.com/golang-jwt/jwt/v5"

// RepClaims are JWT claims for sales-rep authentication
type RepClaims struct {
	RepID string `json:"repId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for rep login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token string `json:"token"`
	RepID string `json:"repId"`
}
