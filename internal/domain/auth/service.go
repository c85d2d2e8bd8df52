package auth

import "context"

type AuthService interface {
	// Login verifies credentials and issues the token pair. The response
	// carries the role-resolved landing path.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// LoginWithGoogle resolves a verified Google account to a local user
	// and issues the token pair.
	LoginWithGoogle(ctx context.Context, googleID string, email string) (TokenResponse, error)

	// Refresh rotates the token pair from a valid refresh token.
	Refresh(ctx context.Context, req RefreshTokenRequest) (TokenResponse, error)

	// Logout revokes a refresh token.
	Logout(ctx context.Context, refreshToken string) error
}
