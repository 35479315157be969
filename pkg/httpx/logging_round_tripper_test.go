package httpx_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tg_giftbuyer/pkg/contextx"
	"tg_giftbuyer/pkg/httpx"
	"tg_giftbuyer/pkg/logx"
)

const testToken = "123456:AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw"

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func captureContext(buf *bytes.Buffer) context.Context {
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return contextx.WithLogger(context.Background(), log)
}

func TestLoggingRoundTripper(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true,"result":{"message_id":42},"password":"qwerty"}`)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	testCases := []struct {
		name  string
		opts  []httpx.Option
		check func(rq *require.Assertions, log string)
	}{
		{
			name: "Token is masked in url",
			opts: []httpx.Option{httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker())},
			check: func(rq *require.Assertions, log string) {
				rq.Contains(log, "/bot[MASKED]/sendMessage")
				rq.NotContains(log, testToken)
				rq.Contains(log, "response-status=200")
				rq.NotContains(log, "message_id")
			},
		},
		{
			name: "Bodies are dumped and masked",
			opts: []httpx.Option{
				httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
				httpx.WithBodies(),
			},
			check: func(rq *require.Assertions, log string) {
				rq.Contains(log, "message_id")
				rq.NotContains(log, "qwerty")
				rq.NotContains(log, testToken)
			},
		},
		{
			name: "Bodies are truncated",
			opts: []httpx.Option{httpx.WithBodies(), httpx.WithLogFieldMaxLen(12)},
			check: func(rq *require.Assertions, log string) {
				rq.Contains(log, "HTTP/1.1 200")
				rq.NotContains(log, "message_id")
			},
		},
		{
			name: "Level below handler threshold is dropped",
			opts: []httpx.Option{httpx.WithLevel(slog.LevelDebug - 4)},
			check: func(rq *require.Assertions, log string) {
				rq.Empty(log)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			var buf bytes.Buffer
			ctx := captureContext(&buf)

			client := http.Client{Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport, tc.opts...)}

			req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL+"/bot"+testToken+"/sendMessage", strings.NewReader(`{"chat_id":1}`))
			rq.NoError(err)

			resp, err := client.Do(req)
			rq.NoError(err)
			rq.NoError(resp.Body.Close())
			rq.Equal(http.StatusOK, resp.StatusCode)

			tc.check(rq, buf.String())
		})
	}
}

func TestLoggingRoundTripperTransportError(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer
	ctx := captureContext(&buf)

	errDial := errors.New("dial failed")
	rt := httpx.NewLoggingRoundTripper(roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, errDial
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.invalid/getMe", http.NoBody)
	rq.NoError(err)

	resp, err := rt.RoundTrip(req) //nolint:bodyclose
	rq.Nil(resp)
	rq.ErrorIs(err, errDial)
	rq.Contains(buf.String(), "level=WARN")
	rq.Contains(buf.String(), "dial failed")
}
