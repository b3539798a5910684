package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumQuantityAndTotalPrice(t *testing.T) {
	items := map[int]LineItem{
		1: {Product: testGuitar(1, 100), Quantity: 2, TotalPrice: 200},
		2: {Product: testGuitar(2, 50), Quantity: 3, TotalPrice: 150},
	}

	assert.Equal(t, 5, SumQuantity(items))
	assert.Equal(t, 350.0, SumTotalPrice(items))
}

func TestSumOverEmptyItems(t *testing.T) {
	assert.Zero(t, SumQuantity(nil))
	assert.Zero(t, SumTotalPrice(nil))
	assert.Zero(t, SumQuantity(map[int]LineItem{}))
	assert.Zero(t, SumTotalPrice(map[int]LineItem{}))
}

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name              string
		total             float64
		percent           float64
		wantDiscount      float64
		wantTotalDiscount float64
	}{
		{"no discount", 200, 0, 0, 200},
		{"ten percent", 200, 10, 20, 180},
		{"full discount", 200, 100, 200, 0},
		{"zero total", 0, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, totalWithDiscount := ApplyDiscount(tt.total, tt.percent)

			assert.Equal(t, tt.wantDiscount, discount)
			assert.Equal(t, tt.wantTotalDiscount, totalWithDiscount)
		})
	}
}
