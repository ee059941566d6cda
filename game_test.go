package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/interact"
	"github.com/milk9111/fpscontroller/physics/arena"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachAll(t *testing.T) {
	w := arena.NewWorld(zerolog.Nop())
	crate, err := w.AddBox(arena.BoxSpec{Name: "crate", Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}, Bottom: 0, Top: 1, Layer: propLayer})
	require.NoError(t, err)

	stub := interact.NewStub("sign", zerolog.Nop())
	require.NoError(t, attachAll(w, attachment{crate.ID, stub}))
	got, ok := w.Target(crate.ID)
	require.True(t, ok)
	assert.Same(t, stub, got)

	err = attachAll(w, attachment{crate.ID + 100, stub})
	assert.ErrorIs(t, err, arena.ErrUnknownSolid)
}
