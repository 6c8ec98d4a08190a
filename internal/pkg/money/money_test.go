package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "1,234.50", Format(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0.00", Format(decimal.Zero))
	assert.Equal(t, "5,000,000.00", Format(decimal.NewFromInt(5000000)))
	assert.Equal(t, "12.35", Format(decimal.RequireFromString("12.345")))
}
