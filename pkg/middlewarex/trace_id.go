package middlewarex

import (
	"net/http"

	"tg_giftbuyer/pkg/contextx"
	"tg_giftbuyer/pkg/logx"
)

const headerNameTraceID = "X-Trace-Id"

// TraceID берёт trace id из заголовка или выдаёт новый и добавляет его в логгер запроса.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := contextx.TraceID(r.Header.Get(headerNameTraceID))
		if traceID == "" {
			traceID = contextx.NewTraceID()
		}

		ctx := contextx.WithTraceID(r.Context(), traceID)
		ctx = contextx.WithLogger(ctx, logger(ctx).With(logx.Stringer(logx.FieldTraceID, traceID)))

		w.Header().Set(headerNameTraceID, traceID.String())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
