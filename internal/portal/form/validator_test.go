package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idms/internal/wiredate"
)

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"under cap", "monthly office rent", "monthly office rent"},
		{"exact cap keeps spacing", "a  b c d e f", "a  b c d e f"},
		{"over cap", "one two three four five six seven eight", "one two three four five six"},
		{"collapses whitespace when truncating", " one\ttwo  three four five six seven ", "one two three four five six"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateWords(tc.in, MaxDescriptionWords)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want, TruncateWords(got, MaxDescriptionWords), "truncation is idempotent")
			assert.LessOrEqual(t, WordCount(got), MaxDescriptionWords)
		})
	}
}

func TestValidatorRequired(t *testing.T) {
	var v Validator
	v.Required("date", "2025-06-01")
	v.Required("description", "   ")
	err := v.Err()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	reason, ok := verr.Field("description")
	assert.True(t, ok)
	assert.Equal(t, ReasonRequired, reason)
	_, ok = verr.Field("date")
	assert.False(t, ok)
}

func TestValidatorAmountLeniency(t *testing.T) {
	var v Validator
	amount, ok := v.Amount("amount", "-12.5")
	assert.True(t, ok)
	assert.Equal(t, -12.5, amount)
	assert.NoError(t, v.Err())

	_, ok = v.Amount("amount", "twelve")
	assert.False(t, ok)
	assert.Error(t, v.Err())
}

func TestValidatorDateOrder(t *testing.T) {
	var v Validator
	v.DateOrder("startDate", wiredate.New(2025, 6, 10), wiredate.New(2025, 6, 1))
	err := v.Err()
	require.Error(t, err)
	assert.Equal(t, "startDate Start Date cannot be after End Date.", err.Error())

	var same Validator
	same.DateOrder("startDate", wiredate.New(2025, 6, 1), wiredate.New(2025, 6, 1))
	assert.NoError(t, same.Err())
}

func TestValidatorDate(t *testing.T) {
	var v Validator
	d, ok := v.Date("date", "2025-06-01")
	assert.True(t, ok)
	assert.Equal(t, wiredate.New(2025, 6, 1), d)

	_, ok = v.Date("date", "06/01/2025")
	assert.False(t, ok)
	assert.Error(t, v.Err())
}
