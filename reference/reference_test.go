package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupProcedure(t *testing.T) {
	proc, ok := LookupProcedure("99285")
	require.True(t, ok)
	assert.Equal(t, "99285", proc.Code)
	assert.Equal(t, 710.00, proc.FairPrice)

	_, ok = LookupProcedure("00000")
	assert.False(t, ok)
}

func TestProcedureTableConsistency(t *testing.T) {
	assert.Greater(t, ProcedureCount(), 40)
	for code, proc := range procedures {
		assert.Equal(t, code, proc.Code, "key and code differ")
		assert.Positive(t, proc.FairPrice, code)
		assert.NotEmpty(t, proc.Description, code)
	}
}

func TestStateAveragePremium(t *testing.T) {
	p, ok := StateAveragePremium(CoverageCollision)
	require.True(t, ok)
	assert.Equal(t, 450.00, p)

	_, ok = StateAveragePremium(CoverageRental)
	assert.False(t, ok, "rental has no published average")
}

func TestCoverageLabel(t *testing.T) {
	assert.Equal(t, "Bodily Injury Liability", CoverageLabel(CoverageBodilyInjury))
	assert.Equal(t, "towing", CoverageLabel(CoverageType("towing")))
}

func TestLookupFeeRule(t *testing.T) {
	tests := []struct {
		key        string
		max        float64
		prohibited bool
	}{
		{"admin_fee", 0, true},
		{"amenity_fee", 25, false},
		{"trash_fee", 15, false},
		{"digital_fee", 0, true},
		{"insurance_fee", 0, true},
		{"parking_fee", 50, false},
		{"cam_fee", 75, false},
		{"cam_reconciliation", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			rule, ok := LookupFeeRule(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.max, rule.MaxReasonable)
			assert.Equal(t, tt.prohibited, rule.Prohibited())
			assert.NotEmpty(t, rule.LegalNote)
		})
	}

	_, ok := LookupFeeRule("pet_fee")
	assert.False(t, ok)
}
