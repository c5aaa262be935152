package token

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, s)
	return v
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		raw      string
		decimals uint8
		want     string
	}{
		{"0", 18, "0.0"},
		{"1000000000000000000", 18, "1.0"},
		{"1500000000000000000", 18, "1.5"},
		{"1", 18, "0.000000000000000001"},
		{"123456789", 6, "123.456789"},
		{"120000", 6, "0.12"},
		{"42", 0, "42"},
		{"0", 0, "0"},
		{"-1500000", 6, "-1.5"},
		// 2^256 - 1
		{"115792089237316195423570985008687907853269984665640564039457584007913129639935", 18,
			"115792089237316195423570985008687907853269984665640564039457.584007913129639935"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUnits(mustBig(t, tt.raw), tt.decimals))
		})
	}
}

func TestFormatUnitsNil(t *testing.T) {
	assert.Equal(t, "0.0", FormatUnits(nil, 18))
}

func TestFormatUnitsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	limit := new(big.Int).Lsh(big.NewInt(1), 256)

	for i := 0; i < 500; i++ {
		raw := new(big.Int).Rand(rng, limit)
		decimals := uint8(rng.Intn(40))

		parsed, err := decimal.NewFromString(FormatUnits(raw, decimals))
		require.NoError(t, err)

		want := decimal.NewFromBigInt(raw, -int32(decimals))
		assert.True(t, want.Equal(parsed), "raw=%s decimals=%d got=%s", raw, decimals, parsed)
	}
}

func TestFormatLocale(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.0", "0"},
		{"1.0", "1"},
		{"1000000.0", "1,000,000"},
		{"1234567.891", "1,234,567.891"},
		{"1234.5678", "1,234.568"},
		{"0.0005", "0.001"},
		{"0.0004", "0"},
		{"999.9999", "1,000"},
		{"10.12", "10.12"},
		{"115792089237316195423570985008687907853269984665640564039457.584007913129639935",
			"115,792,089,237,316,195,423,570,985,008,687,907,853,269,984,665,640,564,039,457.584"},
		{"not-a-number", "not-a-number"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLocale(tt.in))
		})
	}
}
