package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMatches(t *testing.T) {
	order := Order{
		ID:     102,
		Status: StatusDelivered,
		Total:  decimal.NewFromInt(240),
		Items: []OrderItem{
			{ProductID: 3, Name: "Mint", Quantity: 6, UnitPrice: decimal.NewFromInt(40)},
			{ProductID: 1, Name: "Tomato", Quantity: 1, UnitPrice: decimal.NewFromInt(80)},
		},
	}

	assert.True(t, order.Matches(""))
	assert.True(t, order.Matches("  "))
	assert.True(t, order.Matches("102"))
	assert.True(t, order.Matches("10"))
	assert.True(t, order.Matches("MINT"))
	assert.True(t, order.Matches("toma"))
	assert.False(t, order.Matches("orange"))
	assert.False(t, order.Matches("103"))
}

func TestCountByClassTotals(t *testing.T) {
	history := sampleHistory()
	require.Len(t, history, 3)

	counts := CountByClass(history)
	assert.Equal(t, TabCounts{All: 3, Active: 1, Delivered: 1, Cancelled: 1}, counts)

	assert.Equal(t, TabCounts{}, CountByClass(nil))
}
