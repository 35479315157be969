package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tg_giftbuyer/internal/metrics"
	"tg_giftbuyer/pkg/logx"
	"tg_giftbuyer/pkg/middlewarex"
)

const logFieldMaxLen = 4096

// Server объединяет HTTP сервера конкретных сущностей. Сейчас он один: управление движком.
type Server struct {
	EngineServer
}

func NewServer(
	engineServer EngineServer,
) Server {
	return Server{
		EngineServer: engineServer,
	}
}

// Handler собирает роутер со стандартной цепочкой middleware.
func (s Server) Handler() http.Handler {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()
	r.Use(
		middlewarex.TraceID,
		middlewarex.Recovery,
		metrics.Middleware,
		middlewarex.Logging(masker, logFieldMaxLen),
	)

	s.RegisterRoutes(r)

	return r
}
