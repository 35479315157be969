package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tg_giftbuyer/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", handler(s.getV1State))
		r.Post("/pause", handler(s.postV1Pause))
		r.Post("/resume", handler(s.postV1Resume))
		r.Put("/policy", handler(s.putV1Policy))

		r.Route("/peers", func(r chi.Router) {
			r.Post("/", handler(s.postV1Peers))
			r.Delete("/last", handler(s.deleteV1PeersLast))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
