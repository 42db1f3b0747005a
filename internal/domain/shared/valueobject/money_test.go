package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		result   Money
		expected int64
	}{
		{"add", NewMoney(300).Add(NewMoney(400)), 700},
		{"sub", NewMoney(500).Sub(NewMoney(200)), 300},
		{"sub below zero", NewMoney(100).Sub(NewMoney(250)), -150},
		{"neg", NewMoney(150).Neg(), -150},
		{"min takes smaller", NewMoney(500).Min(NewMoney(700)), 500},
		{"min takes other", NewMoney(700).Min(NewMoney(500)), 500},
		{"zero", Zero(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.MinorUnits())
		})
	}
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, NewMoney(-1).IsNegative())
	assert.True(t, NewMoney(1).IsPositive())
	assert.True(t, NewMoney(0).IsZero())
	assert.False(t, NewMoney(0).IsNegative())
	assert.False(t, NewMoney(0).IsPositive())
}

func TestMoney_String(t *testing.T) {
	tests := []struct {
		minorUnits int64
		expected   string
	}{
		{700, "7.00"},
		{25, "0.25"},
		{-150, "-1.50"},
		{0, "0.00"},
		{123456789, "1234567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewMoney(tt.minorUnits).String())
		})
	}
}

func TestMoney_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewMoney(20000))
	require.NoError(t, err)
	assert.Equal(t, `"200.00"`, string(data))
}
