package export

import "testing"

func TestNamerUnique(t *testing.T) {
	n := NewNamer()

	if got := n.Unique("images/Лето_320.jpg"); got != "images/Лето_320.jpg" {
		t.Fatalf("first path must pass through, got %q", got)
	}
	if got := n.Unique("images/Лето_320.jpg"); got != "images/Лето_320-2.jpg" {
		t.Fatalf("first collision must get -2, got %q", got)
	}
	if got := n.Unique("images/Лето_320.jpg"); got != "images/Лето_320-3.jpg" {
		t.Fatalf("second collision must get -3, got %q", got)
	}
}

func TestNamerCollisionWithTakenCandidate(t *testing.T) {
	n := NewNamer()
	n.Unique("a.jpg")
	n.Unique("a-2.jpg")
	if got := n.Unique("a.jpg"); got != "a-3.jpg" {
		t.Fatalf("namer must skip taken candidates, got %q", got)
	}
}

func TestNamerNoExtension(t *testing.T) {
	n := NewNamer()
	n.Unique("README")
	if got := n.Unique("README"); got != "README-2" {
		t.Fatalf("extensionless collision, got %q", got)
	}
}

func TestNamerScopedPerInstance(t *testing.T) {
	first := NewNamer()
	second := NewNamer()
	if first.Unique("a.jpg") != "a.jpg" || second.Unique("a.jpg") != "a.jpg" {
		t.Fatalf("namer state must not leak across instances")
	}
}
