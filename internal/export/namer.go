package export

import (
	"fmt"
	"strings"
)

// Namer issues unique relative paths within a single export. On collision it
// inserts a numeric disambiguator before the extension ("name-2.ext",
// "name-3.ext", ...). State is scoped to one export call; two exports of the
// same album produce identical names.
type Namer struct {
	used map[string]struct{}
}

// NewNamer returns an empty namer.
func NewNamer() *Namer {
	return &Namer{used: make(map[string]struct{})}
}

// Unique returns path if it is free, otherwise the first numbered candidate
// that is, and records the result as taken.
func (n *Namer) Unique(path string) string {
	if _, taken := n.used[path]; !taken {
		n.used[path] = struct{}{}
		return path
	}

	base, ext := path, ""
	if dot := strings.LastIndex(path, "."); dot >= 0 {
		base, ext = path[:dot], path[dot:]
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", base, i, ext)
		if _, taken := n.used[candidate]; !taken {
			n.used[candidate] = struct{}{}
			return candidate
		}
	}
}
