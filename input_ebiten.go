package canopy

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenInput reads the mouse and keyboard through ebiten. It must be
// queried from inside the game loop.
type EbitenInput struct{}

// CursorPosition returns the cursor in screen pixels.
func (EbitenInput) CursorPosition() (x, y float64) {
	cx, cy := ebiten.CursorPosition()
	return float64(cx), float64(cy)
}

// IsMouseButtonPressed reports whether b is held.
func (EbitenInput) IsMouseButtonPressed(b MouseButton) bool {
	switch b {
	case MouseButtonRight:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	case MouseButtonMiddle:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	}
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// IsKeyPressed reports whether k is held.
func (EbitenInput) IsKeyPressed(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k)
}

// IsKeyJustPressed reports whether k went down this tick.
func (EbitenInput) IsKeyJustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}

// Wheel returns this tick's wheel movement.
func (EbitenInput) Wheel() (x, y float64) {
	return ebiten.Wheel()
}
