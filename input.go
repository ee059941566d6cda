package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/fpscontroller/ecs/component"
)

const stickDeadzone = 0.2

// Input samples keyboard, mouse and the first gamepad into one snapshot
// per tick.
type Input struct {
	Sensitivity float64

	Snapshot component.InputSnapshot
	// Damage and Pause are demo-only keys outside the character's input.
	Damage bool
	Pause  bool

	lastX, lastY int
	primed       bool
}

func NewInput(sensitivity float64) *Input {
	return &Input{Sensitivity: sensitivity}
}

func (i *Input) Update() {
	move := mgl64.Vec2{}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move[1]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move[1]--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move[0]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move[0]--
	}

	x, y := ebiten.CursorPosition()
	look := mgl64.Vec2{}
	if i.primed && ebiten.CursorMode() == ebiten.CursorModeCaptured {
		look = mgl64.Vec2{float64(x - i.lastX), float64(i.lastY - y)}.Mul(i.Sensitivity)
	}
	i.lastX, i.lastY, i.primed = x, y, true

	jump := ebiten.IsKeyPressed(ebiten.KeySpace)
	sprint := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	crouch := ebiten.IsKeyPressed(ebiten.KeyC) || ebiten.IsKeyPressed(ebiten.KeyControlLeft)

	zoom := component.Edge{
		Fired: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) || inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight),
		Value: ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
	}
	interact := component.Edge{
		Fired: inpututil.IsKeyJustPressed(ebiten.KeyE),
		Value: ebiten.IsKeyPressed(ebiten.KeyE),
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			move = mgl64.Vec2{lx, -ly}
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			look = mgl64.Vec2{rx, -ry}.Mul(10 * i.Sensitivity)
		}

		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		sprint = sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
		crouch = crouch || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightRight)
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft) {
			interact = component.Edge{Fired: true, Value: true}
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft) ||
			inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonFrontBottomLeft) {
			zoom = component.Edge{Fired: true, Value: ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)}
		}
	}

	if move.Len() > 1 {
		move = move.Normalize()
	}

	i.Snapshot = component.InputSnapshot{
		Move:     move,
		Look:     look,
		Jump:     jump,
		Sprint:   sprint,
		Crouch:   crouch,
		Zoom:     zoom,
		Interact: interact,
	}
	i.Damage = inpututil.IsKeyJustPressed(ebiten.KeyH)
	i.Pause = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
