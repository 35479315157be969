package purchase_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/internal/domain/service/purchase"
)

func supply(v int) entity.Listing {
	return entity.Listing{ID: 1, Price: 1, TotalSupply: &v}
}

func TestDefaultTiers(t *testing.T) {
	rq := require.New(t)

	tiers := purchase.DefaultTiers()

	rq.Equal(10, tiers.UnitsFor(supply(500)))
	rq.Equal(10, tiers.UnitsFor(supply(99999)))
	rq.Equal(50, tiers.UnitsFor(supply(100000)))
	rq.Equal(50, tiers.UnitsFor(supply(1000000)))
	rq.Equal(50, tiers.UnitsFor(entity.Listing{ID: 1, Price: 1}))
	rq.Zero(purchase.Tiers{}.UnitsFor(supply(1)))
}

func TestParseTiers(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		input   string
		want    purchase.Tiers
		wantErr bool
	}{
		{name: "Empty is default", input: "", want: purchase.DefaultTiers()},
		{name: "Reference table", input: "100000:10,*:50", want: purchase.DefaultTiers()},
		{
			name:  "Three tiers",
			input: "1000:1, 50000:5, *:20",
			want: purchase.Tiers{
				{Below: 1000, Units: 1},
				{Below: 50000, Units: 5},
				{Below: purchase.Unbounded, Units: 20},
			},
		},
		{name: "No separator", input: "100000", wantErr: true},
		{name: "Bad threshold", input: "abc:10", wantErr: true},
		{name: "Bad units", input: "10:-1", wantErr: true},
		{name: "Descending", input: "500:1,100:2", wantErr: true},
		{name: "Star not last", input: "*:1,100:2", wantErr: true},
	}

	for _, tc := range testCases {
		got, err := purchase.ParseTiers(tc.input)
		if tc.wantErr {
			rq.Error(err, tc.name)
			continue
		}
		rq.NoError(err, tc.name)
		rq.Equal(tc.want, got, tc.name)
	}

	rq.Equal("100000:10,*:50", purchase.DefaultTiers().String())
}
