package api

import (
	"net/http"

	"github.com/Agungajipradana/contact-management-api/internal/api/handlers"
	"github.com/Agungajipradana/contact-management-api/internal/api/middleware"
	"github.com/Agungajipradana/contact-management-api/internal/repository"
	"github.com/Agungajipradana/contact-management-api/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, repos *repository.Repositories) http.Handler {
	r := chi.NewRouter()

	// Global middleware. Authenticate never rejects; handlers that need
	// an identity ask for it through middleware.RequireUser.
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)
	r.Use(middleware.Authenticate(repos.User))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	userHandler := handlers.NewUserHandler(services.User)
	contactHandler := handlers.NewContactHandler(services.Contact)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.Register)
			r.Post("/login", userHandler.Login)

			r.Route("/current", func(r chi.Router) {
				r.Get("/", userHandler.Current)
				r.Patch("/", userHandler.Update)
				r.Delete("/", userHandler.Logout)
			})
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", contactHandler.Create)
			r.Get("/", contactHandler.List)
			r.Get("/{contactId}", contactHandler.Get)
			r.Put("/{contactId}", contactHandler.Update)
			r.Delete("/{contactId}", contactHandler.Delete)
		})
	})

	return r
}
