package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCostPerCredit(t *testing.T) {
	course := Course{CreditHours: 4, SemesterFee: 500}
	assert.InDelta(t, 125, course.CostPerCredit(), 0.001)

	zero := Course{CreditHours: 0, SemesterFee: 500}
	assert.Equal(t, 0.0, zero.CostPerCredit())
}

func TestTuitionFeeName(t *testing.T) {
	assert.Equal(t, "Tuition: Algorithms", TuitionFeeName("Algorithms"))
}
