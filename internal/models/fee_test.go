package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveFeeStatus(t *testing.T) {
	tests := []struct {
		name string
		paid float64
		due  float64
		want FeeStatus
	}{
		{"nothing paid", 0, 500, FeeStatusUnpaid},
		{"partially paid", 100, 500, FeeStatusPartial},
		{"fully paid", 500, 500, FeeStatusPaid},
		{"paid above due", 600, 500, FeeStatusPaid},
		{"zero due", 0, 0, FeeStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveFeeStatus(tt.paid, tt.due))
		})
	}
}

func TestStudentFeeRemaining(t *testing.T) {
	entry := StudentFee{AmountDue: 500, AmountPaid: 120.50}
	assert.InDelta(t, 379.50, entry.Remaining(), 0.001)
}
