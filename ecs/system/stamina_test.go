package system

import (
	"testing"

	"github.com/milk9111/fpscontroller/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaminaDrain(t *testing.T) {
	r := newRig(t, NewStaminaSystem())

	r.tick(sprint, 0.5)
	assert.InDelta(t, 97.5, r.stam.Current, 1e-9)
	assert.Nil(t, r.stam.Regen)
	assert.Equal(t, []float64{97.5}, r.values(ecs.EventStaminaChanged))

	sprintInPlace := sprint
	sprintInPlace.Move[1] = 0
	r.tick(sprintInPlace, 0.5)
	assert.InDelta(t, 97.5, r.stam.Current, 1e-9, "no drain without movement")
	assert.Nil(t, r.stam.Regen, "sprint held blocks regeneration")
}

func TestStaminaExhaustion(t *testing.T) {
	r := newRig(t, NewStaminaSystem())
	r.stam.Current = 1

	r.tick(sprint, 0.5)
	assert.Zero(t, r.stam.Current)
	assert.False(t, r.stam.CanSprint)

	// exhausted sprint input is ordinary walking and starts regeneration
	r.tick(sprint, 0.5)
	require.NotNil(t, r.stam.Regen)
	assert.False(t, r.stam.CanSprint, "timer start does not restore sprinting")

	r.ticks(9, idle, 0.5)
	assert.False(t, r.stam.CanSprint)
	assert.Zero(t, r.stam.Current)

	r.tick(idle, 0.5)
	assert.True(t, r.stam.CanSprint)
	assert.Greater(t, r.stam.Current, 0.0)
}

func TestStaminaRegenNeverOvershoots(t *testing.T) {
	r := newRig(t, NewStaminaSystem())
	r.stam.Current = 95

	r.ticks(200, idle, 0.05)
	assert.Equal(t, 100.0, r.stam.Current)
	assert.Nil(t, r.stam.Regen)
	assert.Equal(t, []float64{97, 99, 100}, r.values(ecs.EventStaminaChanged))
}

func TestStaminaSprintCancelsRegen(t *testing.T) {
	r := newRig(t, NewStaminaSystem())
	r.stam.Current = 50

	r.ticks(10, idle, 0.6)
	require.NotNil(t, r.stam.Regen)
	before := r.stam.Current

	r.tick(sprint, 0.1)
	assert.Nil(t, r.stam.Regen)
	assert.InDelta(t, before-0.5, r.stam.Current, 1e-9)
}

func TestStaminaStartedTimerWaitsForNextTick(t *testing.T) {
	r := newRig(t, NewStaminaSystem())
	r.stam.Current = 50
	r.stam.RegenDelay = 0

	r.tick(idle, 1)
	require.NotNil(t, r.stam.Regen)
	assert.Equal(t, 50.0, r.stam.Current)

	r.tick(idle, 0.01)
	assert.Equal(t, 52.0, r.stam.Current)
}
