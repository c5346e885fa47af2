package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrollmentStatusIsDecision(t *testing.T) {
	assert.True(t, EnrollmentApproved.IsDecision())
	assert.True(t, EnrollmentRejected.IsDecision())

	// A decided enrollment never moves back to pendente.
	assert.False(t, EnrollmentPending.IsDecision())
	assert.False(t, EnrollmentStatus("cancelado").IsDecision())
	assert.False(t, EnrollmentStatus("").IsDecision())
}
