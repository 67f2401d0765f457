package handlers

import (
	"hotel-backend/internal/config"
	"hotel-backend/internal/domain"
	"hotel-backend/internal/services"
	"hotel-backend/internal/sessions"
)

// Package-level wiring, set once from main before the router starts.
var (
	depositFraction = domain.DefaultDepositFraction
	jwtSecret       = []byte("super-secret-key-change-me")
	notifier        services.Notifier
	chatSessions    sessions.Store
	generative      services.GenerativeClient
)

// Configure installs runtime dependencies for the handler package.
func Configure(env config.Env, store sessions.Store, gen services.GenerativeClient, n services.Notifier) {
	depositFraction = env.DepositFraction
	jwtSecret = []byte(env.JWTSecret)
	chatSessions = store
	generative = gen
	notifier = n
}
