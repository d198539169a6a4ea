package obj

import "github.com/hajimehoshi/ebiten/v2"

// View maps world units to screen pixels for drawing placeholder shapes.
type View struct {
	PixelsPerUnit float64
	OriginX       float64 // screen x of world x=0
	OriginY       float64 // screen y of world y=0 (the ground line)
}

func (v View) WorldToScreen(x, y float64) (float64, float64) {
	return v.OriginX + x*v.PixelsPerUnit, v.OriginY + y*v.PixelsPerUnit
}

// FillRect draws a 1x1 placeholder image scaled over the world-space rect.
func (v View) FillRect(screen, img *ebiten.Image, x, y, w, h float64) {
	if screen == nil || img == nil {
		return
	}
	sx, sy := v.WorldToScreen(x, y)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w*v.PixelsPerUnit, h*v.PixelsPerUnit)
	op.GeoM.Translate(sx, sy)
	screen.DrawImage(img, op)
}
