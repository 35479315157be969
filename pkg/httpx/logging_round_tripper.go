package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/rs/xid"

	"tg_giftbuyer/pkg/logx"
)

type sensitiveDataMasker interface {
	Mask([]byte) []byte
}

// LoggingRoundTripper журналирует исходящие запросы. URL проходит через маскер,
// поэтому токен Bot API в пути в журнал не попадает.
type LoggingRoundTripper struct {
	next                http.RoundTripper
	sensitiveDataMasker sensitiveDataMasker
	logFieldMaxLen      int
	dumpBodies          bool
	level               slog.Level
}

func NewLoggingRoundTripper(
	next http.RoundTripper,
	opts ...Option,
) LoggingRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	rt := LoggingRoundTripper{
		next:                next,
		sensitiveDataMasker: logx.NewNopSensitiveDataMasker(),
		level:               slog.LevelDebug,
	}

	for _, opt := range opts {
		opt(&rt)
	}

	return rt
}

func (rt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	log := logger(ctx).With(
		slog.String(logx.FieldRequestID, xid.New().String()),
		slog.String(logx.FieldHTTPMethod, req.Method),
		slog.String(logx.FieldURL, string(rt.sensitiveDataMasker.Mask([]byte(req.URL.String())))),
	)

	if rt.dumpBodies {
		dump, err := httputil.DumpRequestOut(req, true)
		if err != nil {
			log.Error("httputil.DumpRequestOut", logx.Error(err))
		}

		log.Log(ctx, rt.level, logx.FieldHTTPRequest, slog.String(logx.FieldRequestBody, rt.field(dump)))
	}

	start := time.Now()

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		log.Warn("http request failed",
			slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
			logx.Error(err),
		)
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	attrs := []any{
		slog.Int(logx.FieldResponseStatus, resp.StatusCode),
		slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
	}

	if rt.dumpBodies {
		dump, err := httputil.DumpResponse(resp, true)
		if err != nil {
			log.Error("httputil.DumpResponse", logx.Error(err))
		}

		attrs = append(attrs, slog.String(logx.FieldResponseBody, rt.field(dump)))
	}

	log.Log(ctx, rt.level, logx.FieldHTTPResponse, attrs...)

	return resp, nil
}

func (rt LoggingRoundTripper) field(dump []byte) string {
	if rt.logFieldMaxLen > 0 && len(dump) > rt.logFieldMaxLen {
		dump = dump[:rt.logFieldMaxLen]
	}

	return string(rt.sensitiveDataMasker.Mask(dump))
}
