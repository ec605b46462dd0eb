package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"meetapp/internal/delivery/http/controllers"
	"meetapp/internal/delivery/http/middleware"
	"meetapp/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	User         *controllers.UserController
	Meetup       *controllers.MeetupController
	Subscription *controllers.SubscriptionController
	File         *controllers.FileController
}

// NewRouter initializes the HTTP router with all application routes, wrapped in
// request logging and CORS.
func NewRouter(logger *slog.Logger, verifier domain.TokenVerifier, c Controllers, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.User.SignUp)
	mux.HandleFunc("POST /auth/login", c.User.Login)

	// Users
	mux.HandleFunc("GET /users/me", auth(c.User.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(c.User.UpdateMe))

	// Files
	mux.HandleFunc("POST /files", auth(c.File.Upload))
	mux.HandleFunc("GET /files/{path}", c.File.Serve)

	// Meetups
	mux.HandleFunc("GET /meetups", auth(c.Meetup.List))
	mux.HandleFunc("POST /meetups", auth(c.Meetup.Create))
	mux.HandleFunc("GET /meetups/{meetupID}", auth(c.Meetup.Get))
	mux.HandleFunc("PUT /meetups/{meetupID}", auth(c.Meetup.Update))
	mux.HandleFunc("DELETE /meetups/{meetupID}", auth(c.Meetup.Delete))
	mux.HandleFunc("GET /organizing", auth(c.Meetup.ListOrganizing))

	// Subscriptions
	mux.HandleFunc("GET /subscriptions", auth(c.Subscription.List))
	mux.HandleFunc("POST /meetups/{meetupID}/subscriptions", auth(c.Subscription.Subscribe))
	mux.HandleFunc("DELETE /meetups/{meetupID}/subscriptions", auth(c.Subscription.Unsubscribe))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.CORS(allowedOrigins, middleware.LoggingMiddleware(logger, mux))
}
