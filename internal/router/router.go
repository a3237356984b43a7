package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"lifepulse-backend/internal/handlers"
	"lifepulse-backend/internal/middleware"
	"lifepulse-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	hospitalHandler *handlers.HospitalHandler,
	profileHandler *handlers.ProfileHandler,
	pregnancyHandler *handlers.PregnancyHandler,
	reminderHandler *handlers.ReminderHandler,
	sosHandler *handlers.SOSHandler,
	wsHub *websocket.Hub,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	// Chat endpoints are public and call a paid upstream; keep the per-IP
	// limit tighter than auth.
	chatLimiter := middleware.NewRateLimiter(20, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Chat Routes (public; the assistant works without an account) ────
		r.Group(func(r chi.Router) {
			r.Use(chatLimiter.Middleware)
			r.Post("/chat", chatHandler.Ask)
			r.Post("/chat/pregnancy", chatHandler.AskPregnancy)
		})

		// ──── Hospital Lookup (public) ────
		r.Get("/hospitals/nearby", hospitalHandler.Nearby)

		// ──── Profile Routes ────
		r.Route("/profile", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", profileHandler.Get)
			r.Post("/", profileHandler.Save)
		})

		// ──── Pregnancy Tracker Routes ────
		r.Route("/pregnancy", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Put("/", pregnancyHandler.SetLMP)
			r.Get("/", pregnancyHandler.Status)
			r.Post("/logs", pregnancyHandler.AddLog)
			r.Get("/logs", pregnancyHandler.Logs)
		})

		// ──── Medicine Reminder Routes ────
		r.Route("/reminders", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", reminderHandler.Create)
			r.Get("/", reminderHandler.List)
			r.Put("/{id}", reminderHandler.Update)
			r.Delete("/{id}", reminderHandler.Delete)
		})

		// ──── SOS Routes ────
		r.Route("/sos", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", sosHandler.Trigger)
			r.Get("/history", sosHandler.History)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
