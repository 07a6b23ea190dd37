package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusApproved.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, SubmissionStatus("archived").Valid())
	assert.False(t, SubmissionStatus("").Valid())
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from SubmissionStatus
		to   SubmissionStatus
		want bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"approved to pending", StatusApproved, StatusPending, true},
		{"rejected to pending", StatusRejected, StatusPending, true},
		{"approved to rejected", StatusApproved, StatusRejected, false},
		{"rejected to approved", StatusRejected, StatusApproved, false},
		{"pending to pending", StatusPending, StatusPending, false},
		{"approved to approved", StatusApproved, StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &Submission{Status: tt.from}
			assert.Equal(t, tt.want, sub.CanTransitionTo(tt.to))
		})
	}
}

func TestDeclaresCountry(t *testing.T) {
	sub := &Submission{Countries: []string{"Portugal", " Spain "}}

	assert.True(t, sub.DeclaresCountry("portugal"))
	assert.True(t, sub.DeclaresCountry("Spain"))
	assert.False(t, sub.DeclaresCountry("France"))
}

func TestDeclaresCity(t *testing.T) {
	sub := &Submission{CitiesRegions: []CityRegion{
		{Name: "NYC"},
		{Name: "Boston"},
	}}

	assert.True(t, sub.DeclaresCity("nyc"))
	assert.True(t, sub.DeclaresCity(" Boston "))
	// Raw declared names only; canonical equivalents do not match here.
	assert.False(t, sub.DeclaresCity("New York"))
}

func TestInitTimestampsAndTouch(t *testing.T) {
	sub := &Submission{}
	sub.InitTimestamps()

	assert.False(t, sub.CreatedAt.IsZero())
	assert.Equal(t, sub.CreatedAt, sub.UpdatedAt)

	before := sub.UpdatedAt
	sub.Touch()
	assert.False(t, sub.UpdatedAt.Before(before))
}
