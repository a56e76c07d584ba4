package models

// Geometry is the crop rectangle plus optional rotation and scale used to
// derive variants from a source image. All coordinates are expressed in the
// original (unrotated, unscaled) image's coordinate space: rotation and scale
// apply about the center of the original image, before the crop offset is
// translated.
type Geometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Rotate float64 `json:"rotate,omitempty"`
	ScaleX float64 `json:"scale_x,omitempty"`
	ScaleY float64 `json:"scale_y,omitempty"`
}

// EffectiveScale returns the scale factors with the zero value defaulted to 1.
func (g *Geometry) EffectiveScale() (sx, sy float64) {
	sx, sy = g.ScaleX, g.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

// HasTransform reports whether the geometry carries a rotation or a
// non-identity scale.
func (g *Geometry) HasTransform() bool {
	if g == nil {
		return false
	}
	sx, sy := g.EffectiveScale()
	return g.Rotate != 0 || sx != 1 || sy != 1
}
