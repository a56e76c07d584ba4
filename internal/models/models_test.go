package models

import "testing"

func TestPhotoDisplayTitle(t *testing.T) {
	p := &Photo{ID: "abc", Title: "Закат"}
	if got := p.DisplayTitle(); got != "Закат" {
		t.Fatalf("DisplayTitle() = %q", got)
	}

	p.Title = "   "
	if got := p.DisplayTitle(); got != "Фото_abc" {
		t.Fatalf("placeholder = %q", got)
	}
}

func TestVariantBySize(t *testing.T) {
	p := &Photo{Variants: []PhotoVariant{
		{Size: SizeSmall, Width: 320, Height: 240},
		{Size: SizeLarge, Width: 1600, Height: 1200},
	}}

	v, ok := p.VariantBySize(SizeLarge)
	if !ok || v.Width != 1600 {
		t.Fatalf("VariantBySize(1600) = %#v, %v", v, ok)
	}
	if _, ok := p.VariantBySize(800); ok {
		t.Fatalf("unexpected variant for size 800")
	}
}

func TestAlbumDisplayTitle(t *testing.T) {
	a := &Album{ID: "xyz"}
	if got := a.DisplayTitle(); got != "album_xyz" {
		t.Fatalf("placeholder = %q", got)
	}

	a.Title = "Лето"
	if got := a.DisplayTitle(); got != "Лето" {
		t.Fatalf("DisplayTitle() = %q", got)
	}
}

func TestAlbumEffectiveCover(t *testing.T) {
	a := &Album{PhotoIDs: []string{"p1", "p2"}}
	if got := a.EffectiveCover(); got != "" {
		t.Fatalf("unset cover = %q", got)
	}

	a.CoverPhotoID = "p2"
	if got := a.EffectiveCover(); got != "p2" {
		t.Fatalf("cover = %q", got)
	}

	// A dangling cover id reads as no cover.
	a.CoverPhotoID = "gone"
	if got := a.EffectiveCover(); got != "" {
		t.Fatalf("dangling cover = %q", got)
	}
}

func TestGeometryHasTransform(t *testing.T) {
	var g *Geometry
	if g.HasTransform() {
		t.Fatalf("nil geometry has no transform")
	}

	g = &Geometry{X: 10, Y: 10, Width: 100, Height: 100}
	if g.HasTransform() {
		t.Fatalf("plain crop has no transform")
	}

	g.Rotate = 90
	if !g.HasTransform() {
		t.Fatalf("rotation is a transform")
	}

	g = &Geometry{ScaleX: -1}
	if !g.HasTransform() {
		t.Fatalf("mirroring is a transform")
	}

	sx, sy := g.EffectiveScale()
	if sx != -1 || sy != 1 {
		t.Fatalf("EffectiveScale() = %v, %v", sx, sy)
	}
}
