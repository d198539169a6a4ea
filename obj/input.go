package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the per-frame input state for the human combatant.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// JumpPressed is true only on the frame the jump key goes down.
	JumpPressed bool

	MeleePressed    bool
	UppercutPressed bool
	RangedPressed   bool
	BlockHeld       bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard. A/D or arrows move, space jumps, J melee,
// I uppercut, L ranged, K (held) blocks.
func (i *Input) Update() {
	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}
	i.MoveX = moveX

	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	i.MeleePressed = inpututil.IsKeyJustPressed(ebiten.KeyJ)
	i.UppercutPressed = inpututil.IsKeyJustPressed(ebiten.KeyI)
	i.RangedPressed = inpututil.IsKeyJustPressed(ebiten.KeyL)
	i.BlockHeld = ebiten.IsKeyPressed(ebiten.KeyK)
}
