package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSeverity(t *testing.T) {
	assert.Equal(t, SeverityLow, NormalizeSeverity(""), "empty severity defaults to LOW")
	assert.Equal(t, SeverityHigh, NormalizeSeverity("high"))
	assert.Equal(t, SeverityEmergency, NormalizeSeverity(" emergency "))
	assert.Equal(t, Severity("BOGUS"), NormalizeSeverity("bogus"), "unknown values pass through uppercased")
}
