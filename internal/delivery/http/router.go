package http

import (
	"log/slog"
	"net/http"

	"skillsharehub/internal/delivery/http/controllers"
	"skillsharehub/internal/delivery/http/middleware"
	"skillsharehub/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	topicController *controllers.TopicController,
	healthController *controllers.HealthController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)
	optionalAuth := middleware.OptionalAuth(verifier, logger)

	// Events
	mux.HandleFunc("GET /events", optionalAuth(eventController.ListEvents))
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/myevents", requireAuth(eventController.ListMyEvents))
	mux.HandleFunc("GET /events/mybookmarks", requireAuth(eventController.ListMyBookmarks))
	mux.HandleFunc("GET /events/{eventID}", optionalAuth(eventController.GetEvent))
	mux.HandleFunc("PUT /events/{eventID}", requireAuth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.DeleteEvent))

	// Bookmarks
	mux.HandleFunc("POST /events/{eventID}/bookmark", requireAuth(eventController.AddBookmark))
	mux.HandleFunc("DELETE /events/{eventID}/bookmark", requireAuth(eventController.RemoveBookmark))

	// Hosts
	mux.HandleFunc("POST /events/{eventID}/hosts", requireAuth(eventController.RegisterHost))
	mux.HandleFunc("DELETE /events/{eventID}/hosts", requireAuth(eventController.UnregisterHost))

	// Topics
	mux.HandleFunc("PUT /events/{eventID}/topics", requireAuth(eventController.SetEventTopics))
	mux.HandleFunc("GET /topics", optionalAuth(topicController.ListTopics))
	mux.HandleFunc("POST /topics", requireAuth(topicController.CreateTopic))

	mux.HandleFunc("GET /healthz", healthController.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
