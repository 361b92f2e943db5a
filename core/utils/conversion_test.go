package utils

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"Nil", nil, 0},
		{"Int64", int64(-150), -150},
		{"Int", 42, 42},
		{"FloatHalfUp", 2.5, 3},
		{"FloatHalfDown", -2.5, -3},
		{"Rat", big.NewRat(2401, 2), 1201},
		{"NilRat", (*big.Rat)(nil), 0},
		{"Decimal", decimal.RequireFromString("99.4"), 99},
		{"String", " 1200 ", 1200},
		{"Bytes", []byte("7"), 7},
		{"Garbage", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt64(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "A001", ToString("A001"))
	assert.Equal(t, "A001", ToString([]byte("A001")))
	assert.Equal(t, "12", ToString(int64(12)))
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 20, ToInt("20"))
	assert.Equal(t, 0, ToInt(""))
	assert.Equal(t, 3, ToInt(int64(3)))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool(""))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))
}
