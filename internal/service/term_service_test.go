package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/lesson_scheduler/internal/calendar"
	"github.com/Freeeeeet/lesson_scheduler/internal/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func termInput(label string, start, end time.Time) TermInput {
	return TermInput{Label: label, StartDate: start, EndDate: end}
}

func TestTermService_Register(t *testing.T) {
	f := newFixture()
	svc := f.termService()
	ctx := context.Background()

	autumn, err := svc.Register(ctx, termInput("Autumn",
		time.Date(2022, 9, 1, 15, 0, 0, 0, time.UTC), calendar.Date(2022, 12, 16)))
	require.NoError(t, err)
	assert.Equal(t, calendar.Date(2022, 9, 1), autumn.StartDate)
	assert.Equal(t, 1, f.terms.locked)

	tests := []struct {
		name     string
		in       TermInput
		expected []string
	}{
		{
			name:     "shares end boundary",
			in:       termInput("Winter", calendar.Date(2022, 12, 16), calendar.Date(2023, 1, 20)),
			expected: []string{scheduling.FieldStartDate},
		},
		{
			name:     "inside existing term",
			in:       termInput("Half", calendar.Date(2022, 10, 1), calendar.Date(2022, 10, 20)),
			expected: []string{scheduling.FieldStartDate},
		},
		{
			name:     "start not before end",
			in:       termInput("Spring", calendar.Date(2023, 3, 1), calendar.Date(2023, 1, 9)),
			expected: []string{scheduling.FieldStartDate},
		},
		{
			name:     "missing label",
			in:       termInput("", calendar.Date(2023, 1, 9), calendar.Date(2023, 3, 31)),
			expected: []string{"label"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			violations, ok := scheduling.AsViolations(err)
			require.True(t, ok)
			assert.Equal(t, tt.expected, violations.Fields())
		})
	}

	spring, err := svc.Register(ctx, termInput("Spring", calendar.Date(2022, 12, 17), calendar.Date(2023, 3, 31)))
	require.NoError(t, err)

	terms, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Equal(t, autumn.ID, terms[0].ID)
	assert.Equal(t, spring.ID, terms[1].ID)
}

func TestTermService_UpdateIgnoresItself(t *testing.T) {
	f := newFixture()
	svc := f.termService()
	ctx := context.Background()

	autumn, err := svc.Register(ctx, termInput("Autumn", calendar.Date(2022, 9, 1), calendar.Date(2022, 12, 16)))
	require.NoError(t, err)
	_, err = svc.Register(ctx, termInput("Spring", calendar.Date(2023, 1, 9), calendar.Date(2023, 3, 31)))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, autumn.ID, termInput("Autumn 2022", calendar.Date(2022, 9, 5), calendar.Date(2022, 12, 20)))
	require.NoError(t, err)
	assert.Equal(t, "Autumn 2022", updated.Label)

	stored, err := svc.Get(ctx, autumn.ID)
	require.NoError(t, err)
	assert.Equal(t, calendar.Date(2022, 12, 20), stored.EndDate)

	_, err = svc.Update(ctx, autumn.ID, termInput("Autumn", calendar.Date(2022, 9, 5), calendar.Date(2023, 1, 9)))
	violations, ok := scheduling.AsViolations(err)
	require.True(t, ok)
	assert.Equal(t, []string{scheduling.FieldStartDate}, violations.Fields())

	_, err = svc.Update(ctx, 99, termInput("Summer", calendar.Date(2023, 4, 17), calendar.Date(2023, 7, 21)))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTermService_Delete(t *testing.T) {
	f := newFixture()
	term := f.addAutumnTerm()
	svc := f.termService()
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, term.ID))
	assert.ErrorIs(t, svc.Delete(ctx, term.ID), ErrNotFound)

	_, err := svc.Get(ctx, term.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTermService_DefaultTermForBookings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	autumn := f.addAutumnTerm()
	spring := termInput("Spring", calendar.Date(2022, 12, 1), calendar.Date(2023, 3, 31))
	_, err := f.termService().Register(ctx, spring)
	require.NoError(t, err)

	tests := []struct {
		name     string
		today    time.Time
		expected string
	}{
		{"before any term", calendar.Date(2022, 8, 1), "Autumn"},
		{"early in term", calendar.Date(2022, 10, 1), "Autumn"},
		{"close to term end", calendar.Date(2022, 11, 20), "Spring"},
		{"after every term", calendar.Date(2023, 5, 1), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today := tt.today
			svc := NewTermService(f.tx, f.terms, func() time.Time { return today }, f.logger)

			term, err := svc.DefaultTermForBookings(ctx)
			require.NoError(t, err)
			if tt.expected == "" {
				assert.Nil(t, term)
				return
			}
			require.NotNil(t, term)
			assert.Equal(t, tt.expected, term.Label)
		})
	}

	assert.Equal(t, int64(1), autumn.ID)
}
