package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/daybook/daybook-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/me", handlers.GetMe)
	r.Put("/api/auth/email", handlers.UpdateEmail)
	r.Put("/api/auth/password", handlers.UpdatePassword)

	// Daily entry routes
	r.Get("/api/entries/today", handlers.GetTodayEntry)
	r.Put("/api/entries/today", handlers.SaveTodayEntry)
	r.Get("/api/entries/history", handlers.GetHistory)

	// Profile routes
	r.Get("/api/profile", handlers.GetProfile)
	r.Put("/api/profile", handlers.UpdateProfile)

	// Onboarding routes
	r.Get("/api/onboarding/steps", handlers.GetOnboardingSteps)
	r.Post("/api/onboarding/complete", handlers.CompleteOnboarding)
	r.Post("/api/onboarding/skip", handlers.SkipOnboarding)
}
