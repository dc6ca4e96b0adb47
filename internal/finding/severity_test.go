package finding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Severity
	}{
		{"uppercase critical", "CRITICAL", SeverityCritical},
		{"lowercase high", "high", SeverityHigh},
		{"mixed case medium", "Medium", SeverityMedium},
		{"whitespace", "  LOW  ", SeverityLow},
		{"info", "INFO", SeverityInfo},
		{"unknown defaults to medium", "WARNING", SeverityMedium},
		{"empty defaults to medium", "", SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSeverity(tt.raw))
		})
	}
}

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 0, SeverityCritical.Rank())
	assert.Equal(t, 1, SeverityHigh.Rank())
	assert.Equal(t, 2, SeverityMedium.Rank())
	assert.Equal(t, 3, SeverityLow.Rank())
	assert.Equal(t, 4, SeverityInfo.Rank())
	assert.Equal(t, 5, Severity("URGENT").Rank())
}

func TestSeverityIsValid(t *testing.T) {
	assert.True(t, SeverityCritical.IsValid())
	assert.True(t, SeverityInfo.IsValid())
	assert.False(t, Severity("WARNING").IsValid())
	assert.False(t, Severity("").IsValid())
}
