package canopy

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// debugOutline is the stroke drawn around the hovered node in debug mode.
var debugOutline = color.RGBA{255, 0, 255, 255}

// Draw paints the scene as flat panels: every active node with a visible
// color is filled with it, labels are printed at the top-left corner, and
// clipping nodes cut their children to their rect. Overlays paint above the
// root in stacking order.
func (s *Scene) Draw(screen *ebiten.Image) {
	drawn := s.drawNode(screen, s.top, 1)
	if s.debug {
		if h := s.pointer.hoverNode; h != nil && h.ActiveInHierarchy() {
			r := h.Rect()
			vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, debugOutline, false)
		}
		logDebugf("Scene.Draw", "painted %d of %d nodes", drawn, s.NodeCount())
	}
}

func (s *Scene) drawNode(dst *ebiten.Image, n *Node, parentAlpha float64) int {
	if !n.active {
		return 0
	}
	alpha := parentAlpha * n.Alpha
	if alpha <= 0 {
		return 0
	}
	r := n.Rect()
	drawn := 0
	if n.Color.A > 0 && r.Width > 0 && r.Height > 0 {
		vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), n.Color.toRGBA(alpha), false)
		drawn++
	}
	if n.Label != "" && alpha >= 0.5 {
		ebitenutil.DebugPrintAt(dst, n.Label, int(r.X)+4, int(r.Y)+4)
	}

	children := n.paintOrder()
	if len(children) == 0 {
		return drawn
	}
	if n.Clip {
		clip := image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height)).Intersect(dst.Bounds())
		if clip.Empty() {
			return drawn
		}
		dst = dst.SubImage(clip).(*ebiten.Image)
	}
	for _, c := range children {
		drawn += s.drawNode(dst, c, alpha)
	}
	return drawn
}
