package system

import (
	"testing"

	"github.com/milk9111/fpscontroller/ecs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthRegenScenario(t *testing.T) {
	r := newRig(t, NewHealthRegenSystem())

	require.True(t, ApplyDamage(r.w, r.e, 15, zerolog.Nop()))
	assert.Equal(t, 85.0, r.health.Current)
	assert.Equal(t, []float64{85}, r.values(ecs.EventDamageApplied))

	// 2.9 s of quiet
	r.ticks(29, idle, 0.1)
	assert.Empty(t, r.values(ecs.EventHealed))
	assert.Equal(t, 85.0, r.health.Current)

	r.ticks(30, idle, 0.1)
	healed := r.values(ecs.EventHealed)
	require.Len(t, healed, 15)
	for i, v := range healed {
		assert.InDelta(t, 86+float64(i), v, 1e-9)
	}
	assert.Equal(t, 100.0, r.health.Current)
	assert.Nil(t, r.health.Regen)
}

func TestHealthRegenClampsAtMax(t *testing.T) {
	r := newRig(t, NewHealthRegenSystem())
	r.health.RegenAmount = 4

	ApplyDamage(r.w, r.e, 10, zerolog.Nop())
	r.ticks(100, idle, 0.1)
	assert.Equal(t, []float64{94, 98, 100}, r.values(ecs.EventHealed))
	assert.Equal(t, 100.0, r.health.Current)
}

func TestHealthDeath(t *testing.T) {
	r := newRig(t, NewHealthRegenSystem())
	log := zerolog.Nop()

	ApplyDamage(r.w, r.e, 40, log)
	ApplyDamage(r.w, r.e, 40, log)
	ApplyDamage(r.w, r.e, 40, log)
	assert.Equal(t, []float64{60, 20, 0}, r.values(ecs.EventDamageApplied))
	assert.Equal(t, 1, r.count(ecs.EventDied))
	assert.True(t, r.health.Dead)
	assert.Nil(t, r.health.Regen)

	assert.False(t, ApplyDamage(r.w, r.e, 40, log))
	r.ticks(100, idle, 0.1)
	assert.Equal(t, 1, r.count(ecs.EventDied))
	assert.Zero(t, r.count(ecs.EventHealed))
	assert.Equal(t, 0.0, r.health.Current)
}

func TestHealthDamageRestartsRegen(t *testing.T) {
	r := newRig(t, NewHealthRegenSystem())
	log := zerolog.Nop()

	ApplyDamage(r.w, r.e, 10, log)
	r.ticks(25, idle, 0.1)
	ApplyDamage(r.w, r.e, -10, log)
	assert.Equal(t, 80.0, r.health.Current, "negative damage still hurts")

	r.ticks(25, idle, 0.1)
	assert.Zero(t, r.count(ecs.EventHealed))
}

func TestHealthModuleDisabled(t *testing.T) {
	r := newRig(t, NewHealthRegenSystem())
	r.ch.Modules.Health = false

	assert.False(t, ApplyDamage(r.w, r.e, 10, zerolog.Nop()))
	assert.Equal(t, 100.0, r.health.Current)
	assert.Zero(t, r.count(ecs.EventDamageApplied))
}
