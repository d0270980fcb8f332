package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatNOK(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "kr 0,00"},
		{in: "250", want: "kr 250,00"},
		{in: "1250", want: "kr 1 250,00"},
		{in: "1234567.891", want: "kr 1 234 567,89"},
		{in: "-99.995", want: "-kr 100,00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNOK(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "12.35", FormatWithPrecision(decimal.RequireFromString("12.3456"), 2))
	assert.Equal(t, "12", FormatWithPrecision(decimal.RequireFromString("12.3456"), 0))
}

func TestFormatDateNO(t *testing.T) {
	d := time.Date(2024, time.January, 5, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, "5. januar 2024", FormatDateLongNO(d))
	assert.Equal(t, "05.01.2024", FormatDateShortNO(d))
	assert.Equal(t, "31. desember 2023", FormatDateLongNO(time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)))
}
