package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "0.1", want: "100000000000000000"},
		{in: "1", want: "1000000000000000000"},
		{in: ".5", want: "500000000000000000"},
		{in: "10000", want: "10000000000000000000000"},
		{in: "0.000000000000000001", want: "1"},
		{in: "0.0000000000000000001", wantErr: true},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEther(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatEther(t *testing.T) {
	tests := []struct {
		wei  string
		want string
	}{
		{"0", "0.0"},
		{"100000000000000000", "0.1"},
		{"1000000000000000000", "1.0"},
		{"1500000000000000000", "1.5"},
		{"1", "0.000000000000000001"},
		{"-100000000000000000", "-0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			wei, ok := new(big.Int).SetString(tt.wei, 10)
			require.True(t, ok)
			assert.Equal(t, tt.want, FormatEther(wei))
		})
	}

	assert.Equal(t, "0.0", FormatEther(nil))
}
