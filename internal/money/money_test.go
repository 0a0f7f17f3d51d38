package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "29.99", want: 2999},
		{in: "10", want: 1000},
		{in: "0.5", want: 50},
		{in: "0.05", want: 5},
		{in: " 100.00 ", want: 10000},
		{in: "+3.10", want: 310},
		{in: "-1.15", want: -115},
		{in: "0", want: 0},
		{in: "", wantErr: true},
		{in: ".", wantErr: true},
		{in: "1.", wantErr: true},
		{in: "1.234", wantErr: true},
		{in: "1.2.3", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "12,50", wantErr: true},
		// int64 boundary: the cent conversion must not wrap
		{in: "92233720368547757.99", want: 9223372036854775799},
		{in: "92233720368547758", wantErr: true},
		{in: "200000000000000000", wantErr: true},
		{in: "9223372036854775807", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCents(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCents(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "70.00", FormatCents(7000))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "199.99", FormatCents(19999))
	assert.Equal(t, "-1.15", FormatCents(-115))
}

func TestParseFormatRoundTrip(t *testing.T) {
	t.Parallel()

	for _, cents := range []int64{0, 1, 99, 100, 2999, 1000000} {
		got, err := ParseCents(FormatCents(cents))
		require.NoError(t, err)
		assert.Equal(t, cents, got)
	}
}
