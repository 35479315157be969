package middlewarex

import (
	"bytes"
	"cmp"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/zenazn/goji/web/mutil"

	"tg_giftbuyer/pkg/logx"
)

// Logging пишет одну запись на запрос: метод, путь, статус, длительность и
// усечённые тела запроса и ответа после маскера.
func Logging(
	sensitiveDataMasker logx.SensitiveDataMaskerInterface,
	logFieldMaxLen int,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			start := time.Now()

			// Префикс тела читается до обработчика и возвращается в поток,
			// поэтому в лог попадает тело независимо от того, читал ли его обработчик.
			var reqBody []byte
			if r.Body != nil && r.Body != http.NoBody {
				reqBody = peekBody(r, logFieldMaxLen)
			}

			var respBody bytes.Buffer
			lw := mutil.WrapWriter(w)
			lw.Tee(&respBody)

			next.ServeHTTP(lw, r)

			// Без явного WriteHeader mutil отдаёт 0.
			status := cmp.Or(lw.Status(), http.StatusOK)

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			logger(ctx).Log(ctx, level, logx.FieldHTTPResponse,
				slog.String(logx.FieldHTTPMethod, r.Method),
				slog.String(logx.FieldURL, r.URL.Path),
				slog.String(logx.FieldIP, r.RemoteAddr),
				slog.Int(logx.FieldResponseStatus, status),
				slog.String(logx.FieldRequestBody, truncate(sensitiveDataMasker, reqBody, logFieldMaxLen)),
				slog.String(logx.FieldResponseBody, truncate(sensitiveDataMasker, respBody.Bytes(), logFieldMaxLen)),
				slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
			)
		})
	}
}

func truncate(masker logx.SensitiveDataMaskerInterface, data []byte, maxLen int) string {
	if maxLen > 0 && len(data) > maxLen {
		data = data[:maxLen]
	}

	return string(masker.Mask(data))
}

// peekBody читает не больше maxLen байт тела (всё тело при maxLen <= 0) и
// подменяет r.Body так, что обработчик получает тело целиком.
func peekBody(r *http.Request, maxLen int) []byte {
	var src io.Reader = r.Body
	if maxLen > 0 {
		src = io.LimitReader(r.Body, int64(maxLen))
	}

	prefix, _ := io.ReadAll(src)

	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(prefix), r.Body), r.Body}

	return prefix
}
