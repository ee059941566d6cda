package main

import (
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/fpscontroller/ecs"
)

const sampleRate = 44100

// tone describes a synthesized footstep: a decaying sine mixed with noise.
type tone struct {
	freq     float64
	noise    float64
	duration float64
}

var footstepTones = map[string]tone{
	"wood":  {freq: 180, noise: 0.3, duration: 0.08},
	"metal": {freq: 900, noise: 0.1, duration: 0.15},
	"grass": {freq: 90, noise: 0.8, duration: 0.1},
}

var defaultTone = tone{freq: 220, noise: 0.5, duration: 0.06}

// Footsteps plays a click for every footstep the character publishes.
type Footsteps struct {
	Volume float64

	ctx     *audio.Context
	players map[string]*audio.Player
	bus     *ecs.EventBus
	sub     ecs.Subscription
}

func NewFootsteps(bus *ecs.EventBus, volume float64) *Footsteps {
	f := &Footsteps{
		Volume:  volume,
		ctx:     audio.NewContext(sampleRate),
		players: make(map[string]*audio.Player),
		bus:     bus,
	}
	f.sub = bus.Subscribe(ecs.EventFootstep, func(evt ecs.Event) {
		if step, ok := evt.Data.(ecs.Footstep); ok {
			f.play(step.Surface)
		}
	})
	return f
}

func (f *Footsteps) play(surface string) {
	player, ok := f.players[surface]
	if !ok {
		t, known := footstepTones[surface]
		if !known {
			t = defaultTone
		}
		player = f.ctx.NewPlayerFromBytes(synthesize(t, int64(len(f.players)+1)))
		f.players[surface] = player
	}
	player.SetVolume(f.Volume)
	_ = player.Rewind()
	player.Play()
}

func (f *Footsteps) Close() {
	f.bus.Unsubscribe(f.sub)
	for _, p := range f.players {
		_ = p.Close()
	}
}

// synthesize renders t as 16-bit little endian stereo PCM.
func synthesize(t tone, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	n := int(t.duration * sampleRate)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		at := float64(i) / sampleRate
		env := math.Exp(-at / t.duration * 5)
		v := (1-t.noise)*math.Sin(2*math.Pi*t.freq*at) + t.noise*(rng.Float64()*2-1)
		s := uint16(int16(v * env * math.MaxInt16 * 0.8))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}
