package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0"},
		{500, "₹500"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{13570, "₹13,570"},
		{100000, "₹1,00,000"},
		{123456.78, "₹1,23,457"},
		{10000000, "₹1,00,00,000"},
		{-500, "₹-500"},
		{-123456, "₹-1,23,456"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatINR(tt.amount), "amount=%v", tt.amount)
	}
}
