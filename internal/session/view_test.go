// ABOUTME: Tests for the derived session view and duration formatting.
// ABOUTME: Durations come from the clock at read time.
package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/liftlog/internal/clock"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00"},
		{-500, "00:00"},
		{999, "00:00"},
		{1000, "00:01"},
		{65_000, "01:05"},
		{59*60_000 + 59_000, "59:59"},
		{3_600_000, "1:00:00"},
		{3*3_600_000 + 7*60_000 + 9_000, "3:07:09"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.ms); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestViewSetupPhase(t *testing.T) {
	clk := clock.NewManual(base)
	s := New(clk)
	clk.Advance(time.Hour)

	v := s.View()
	assert.Equal(t, PhaseSetup, v.Phase)
	assert.Equal(t, int64(0), v.ElapsedMs)
	assert.Nil(t, v.ActiveExercise)
	assert.Nil(t, v.ActiveSet)
	assert.NotNil(t, v.Exercises)
}

func TestViewLiveDurations(t *testing.T) {
	s, clk := newActive(t, "Push Day")
	require.NoError(t, s.SelectExercise(bench))
	clk.Advance(10 * time.Second)
	require.NoError(t, s.StartSet())
	clk.Advance(42 * time.Second)

	v := s.View()
	assert.Equal(t, int64(52_000), v.ElapsedMs)
	assert.Equal(t, "00:52", v.ElapsedText())
	assert.Equal(t, int64(42_000), v.SetMs)
	assert.Equal(t, "00:42", v.SetText())
	assert.False(t, v.RestActive)

	require.NoError(t, s.EndSet())
	clk.Advance(75 * time.Second)

	v = s.View()
	assert.Equal(t, int64(42_000), v.SetMs, "ended set keeps its own duration")
	assert.True(t, v.RestActive)
	assert.Equal(t, "01:15", v.RestText())
}

func TestViewTicksDoNotMutateRest(t *testing.T) {
	s, clk := newActive(t, "Push Day")
	require.NoError(t, s.SelectExercise(bench))
	doSet(t, s, clk, time.Second, SetUpdate{})

	before := s.Rest()
	for i := 0; i < 5; i++ {
		clk.Advance(time.Second)
		_ = s.View()
	}
	assert.Equal(t, before, s.Rest())
	assert.Equal(t, int64(5000), s.View().RestMs)
}

func TestViewElapsedFrozenAfterComplete(t *testing.T) {
	s, clk := newActive(t, "Push Day")
	require.NoError(t, s.SelectExercise(bench))
	doSet(t, s, clk, 30*time.Second, SetUpdate{})
	require.NoError(t, s.CompleteExercise())

	_, err := s.CompleteWorkout()
	require.NoError(t, err)
	clk.Advance(time.Minute)
	assert.Equal(t, int64(30_000), s.View().ElapsedMs, "saving")

	require.NoError(t, s.SaveFailed(errors.New("disk full")))
	clk.Advance(time.Minute)
	assert.Equal(t, int64(30_000), s.View().ElapsedMs, "error")

	saved, err := s.Finish(context.Background(), &fakeBackend{})
	require.NoError(t, err)
	clk.Advance(time.Hour)
	v := s.View()
	assert.Equal(t, PhaseCompleted, v.Phase)
	assert.Equal(t, saved.DurationMs(), v.ElapsedMs)
}

func TestViewSavedIsDetached(t *testing.T) {
	s, clk := newActive(t, "Push Day")
	require.NoError(t, s.SelectExercise(bench))
	doSet(t, s, clk, time.Second, SetUpdate{Repetitions: ptr(5)})
	require.NoError(t, s.CompleteExercise())
	_, err := s.Finish(context.Background(), &fakeBackend{})
	require.NoError(t, err)

	v := s.View()
	require.NotNil(t, v.Saved)
	require.NotSame(t, s.Saved(), v.Saved)
	v.Saved.WorkoutType = "Leg Day"
	sets, _ := v.Saved.Exercises[0].Sets()
	*sets.Sets[0].Repetitions = 99
	v.Saved.Exercises = nil

	assert.Equal(t, "Push Day", s.Saved().WorkoutType)
	require.Len(t, s.Saved().Exercises, 1)
	sets, _ = s.Saved().Exercises[0].Sets()
	assert.Equal(t, 5, *sets.Sets[0].Repetitions)
}
