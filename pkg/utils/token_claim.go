package utils

import (
	"errors"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the identity carried by an access token.
type TokenClaims struct {
	UserID   uuid.UUID
	Email    string
	UserRole string
}

// ExtractClaimsFromHeader parses an Authorization header (Bearer <token>) and
// returns the identity claims from the JWT.
func ExtractClaimsFromHeader(authHeader string) (TokenClaims, error) {
	var tc TokenClaims

	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return tc, errors.New("missing or invalid Authorization header")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return tc, errors.New("JWT secret not set")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) { return []byte(secret), nil })
	if err != nil || !token.Valid {
		return tc, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return tc, errors.New("invalid token claims")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return tc, errors.New("invalid token payload")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return tc, errors.New("invalid user id in token")
	}
	tc.UserID = userID

	if email, ok := claims["email"].(string); ok {
		tc.Email = email
	}
	if role, ok := claims["user_role"].(string); ok {
		tc.UserRole = role
	}
	return tc, nil
}

// ExtractUserIDFromHeader is a shortcut for handlers that only need the id.
func ExtractUserIDFromHeader(authHeader string) (uuid.UUID, error) {
	tc, err := ExtractClaimsFromHeader(authHeader)
	if err != nil {
		return uuid.Nil, err
	}
	return tc.UserID, nil
}
