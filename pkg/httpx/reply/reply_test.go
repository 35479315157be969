package reply_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"tg_giftbuyer/pkg/contextx"
	"tg_giftbuyer/pkg/errcodes"
	"tg_giftbuyer/pkg/httpx/reply"
	"tg_giftbuyer/pkg/rest"
)

func TestError(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		statusCode int
		code       rest.ErrorCode
	}{
		{
			name: "Invalid argument keeps its code",
			err: fmt.Errorf("engine.SetPolicy: %w", failure.NewInvalidArgumentError("min > max",
				failure.WithCode(errcodes.InvalidPolicy),
			)),
			statusCode: http.StatusBadRequest,
			code:       rest.ErrorCode(errcodes.InvalidPolicy),
		},
		{
			name:       "Unclassified error",
			err:        errors.New("boom"),
			statusCode: http.StatusInternalServerError,
			code:       rest.ErrorCode(errcodes.InternalServerError),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			ctx := contextx.WithTraceID(context.Background(), "trace-1")
			rec := httptest.NewRecorder()

			reply.Error(ctx, rec, tc.err)

			rq.Equal(tc.statusCode, rec.Code)

			var body rest.Error
			rq.NoError(jsoniter.Unmarshal(rec.Body.Bytes(), &body))
			rq.Equal(tc.code, body.Code)
			rq.Equal("trace-1", body.SupportID)
		})
	}
}
