// Package probe отдаёт liveness и readiness для оркестратора.
package probe

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"tg_giftbuyer/pkg/httpx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Check сообщает, готов ли компонент. nil: готов.
type Check func(ctx context.Context) error

type Server struct {
	listenAddress string
	options       Options
	checks        map[string]Check
}

type Options struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type status struct {
	Options

	Failed map[string]string `json:"failed,omitempty"`
}

func NewServer(
	listenAddress string,
	options Options,
	checks map[string]Check,
) Server {
	return Server{
		listenAddress: listenAddress,
		options:       options,
		checks:        checks,
	}
}

func (s Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handlerHealthz)
	mux.HandleFunc("/ready", s.handlerReady)

	return mux
}

func (s Server) Run(ctx context.Context) error {
	return httpx.Serve(ctx, "probe", &http.Server{ //nolint:exhaustruct
		Addr:    s.listenAddress,
		Handler: s.Handler(),
	}, 0)
}

func (s Server) handlerHealthz(w http.ResponseWriter, _ *http.Request) {
	s.write(w, http.StatusOK, status{Options: s.options})
}

func (s Server) handlerReady(w http.ResponseWriter, r *http.Request) {
	st := status{Options: s.options}

	for name, check := range s.checks {
		if err := check(r.Context()); err != nil {
			if st.Failed == nil {
				st.Failed = make(map[string]string, len(s.checks))
			}
			st.Failed[name] = err.Error()
		}
	}

	code := http.StatusOK
	if len(st.Failed) > 0 {
		code = http.StatusServiceUnavailable
	}

	s.write(w, code, st)
}

func (s Server) write(w http.ResponseWriter, code int, st status) {
	body, _ := json.Marshal(st) //nolint:errcheck,errchkjson

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body) //nolint:errcheck
}
