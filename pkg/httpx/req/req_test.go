package req_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"tg_giftbuyer/pkg/httpx/req"
)

type payload struct {
	Kind  string `json:"kind" validate:"required,oneof=self user"`
	Quota int    `json:"quota" validate:"gt=0"`
}

func TestRead(t *testing.T) {
	testCases := []struct {
		name  string
		body  string
		valid bool
	}{
		{name: "Valid", body: `{"kind":"self","quota":3}`, valid: true},
		{name: "Broken JSON", body: `{"kind":`},
		{name: "Unknown field", body: `{"kind":"self","quota":3,"qouta":4}`},
		{name: "Validation failed", body: `{"kind":"bot","quota":3}`},
		{name: "Too large", body: `{"kind":"` + strings.Repeat("a", 70<<10) + `","quota":1}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))

			var dest payload
			err := req.Read(r, &dest)

			if tc.valid {
				rq.NoError(err)
				rq.Equal(payload{Kind: "self", Quota: 3}, dest)
				return
			}

			rq.Error(err)
			rq.True(failure.IsInvalidArgumentError(err))
		})
	}
}
