package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Grade
	}{
		{100, GradeS},
		{95, GradeS},
		{94.9, GradeA},
		{85, GradeA},
		{84.9, GradeB},
		{70, GradeB},
		{69.9, GradeC},
		{50, GradeC},
		{49.9, GradeF},
		{0, GradeF},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeFor(tt.score), "score %.1f", tt.score)
	}
}
