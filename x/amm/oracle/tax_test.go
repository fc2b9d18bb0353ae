package oracle

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestComputeTax(t *testing.T) {
	cases := []struct {
		name   string
		amount int64
		rate   string
		cap    int64
		want   int64
	}{
		{"one percent under cap", 98712, "0.01", 1_000, 978},
		{"capped", 1_000_000, "0.01", 1_000, 1_000},
		{"zero rate", 98712, "0", 1_000, 0},
		{"zero amount", 0, "0.01", 1_000, 0},
		{"zero cap", 98712, "0.01", 0, 0},
		{"small amount rounds toward payer", 100, "0.01", 1_000, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTax(math.NewInt(tc.amount), math.LegacyMustNewDecFromStr(tc.rate), math.NewInt(tc.cap))
			require.Equal(t, math.NewInt(tc.want).String(), got.String())
		})
	}
}
