package modules

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"tg_giftbuyer/pkg/httpx"
)

// HTTPServer запускает admin API с плавной остановкой.
type HTTPServer struct {
	ListenAddress   string
	ShutdownTimeout time.Duration
}

func (h HTTPServer) Run(ctx context.Context, g *errgroup.Group, handler http.Handler) {
	g.Go(func() error {
		return httpx.Serve(ctx, "admin", &http.Server{ //nolint:exhaustruct
			Addr:    h.ListenAddress,
			Handler: handler,
		}, h.ShutdownTimeout)
	})
}
