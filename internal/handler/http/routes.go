package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	router.Get("/healthz", h.healthz)
	router.Get("/api/version", h.getServerVersion)
	router.Get("/api/build", h.getBuildInfo)

	// the socket authenticates with the token query parameter
	router.Get("/ws", h.realtime)

	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}

		r.Post("/v2/account/authenticate/custom", h.authenticateCustom)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/v2/account", h.getAccount)
			r.Put("/v2/account", h.updateAccount)
			r.Get("/v2/user", h.getUsers)

			r.Post("/v2/storage", h.readStorageObjects)
			r.Put("/v2/storage", h.writeStorageObjects)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
