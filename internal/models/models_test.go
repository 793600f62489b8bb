package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"String amount", `"£1,234.56"`, "£1,234.56"},
		{"Plain string", `"1000"`, "1000"},
		{"Number", `-987.5`, "-987.5"},
		{"Integer", `42`, "42"},
		{"Null", `null`, ""},
		{"Empty string", `""`, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var a FlexAmount
			require.NoError(t, json.Unmarshal([]byte(tc.input), &a))
			assert.Equal(t, tc.expected, a.Raw)
		})
	}
}

func TestFlexAmountIsEmpty(t *testing.T) {
	assert.True(t, FlexAmount{}.IsEmpty())
	assert.True(t, FlexAmount{Raw: "   "}.IsEmpty())
	assert.False(t, FlexAmount{Raw: "0"}.IsEmpty())
}

func TestFlexAmountMarshalRoundTrip(t *testing.T) {
	tx := Transaction{Date: "2025-01-02", Description: "WIRE IN", Amount: FlexAmount{Raw: "$500.00"}}
	data, err := json.Marshal(tx)
	require.NoError(t, err)

	var back Transaction
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "$500.00", back.Amount.Raw)
}

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected StringList
	}{
		{"List of strings", `["a","b"]`, StringList{"a", "b"}},
		{"Single string", `"just one finding"`, StringList{"just one finding"}},
		{"Empty string", `""`, nil},
		{"Mixed list", `["top left", 3, true]`, StringList{"top left", "3", "true"}},
		{"Null", `null`, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var l StringList
			require.NoError(t, json.Unmarshal([]byte(tc.input), &l))
			assert.Equal(t, tc.expected, l)
		})
	}
}

func TestFinancialDataDecode(t *testing.T) {
	payload := `{
		"opening_balance": {"amount": "£10,000.00", "date": "01 Jan 2025"},
		"closing_balance": {"amount": 12500, "date": "31 Jan 2025"},
		"transactions": [
			{"date": "05 Jan 2025", "description": "INVOICE 42", "amount": "2,500.00", "running_balance": "12,500.00"}
		],
		"confidence": 0.92
	}`

	var data FinancialData
	require.NoError(t, json.Unmarshal([]byte(payload), &data))

	assert.Equal(t, "£10,000.00", data.OpeningBalance.Amount.Raw)
	assert.Equal(t, "12500", data.ClosingBalance.Amount.Raw)
	require.Len(t, data.Transactions, 1)
	assert.Equal(t, "2,500.00", data.Transactions[0].Amount.Raw)
	assert.InDelta(t, 0.92, data.Confidence, 1e-9)
}

func TestReconciliationResultAttempted(t *testing.T) {
	assert.True(t, ReconciliationResult{Matches: true}.Attempted())
	assert.False(t, ReconciliationResult{Err: "opening balance: invalid amount"}.Attempted())
}
