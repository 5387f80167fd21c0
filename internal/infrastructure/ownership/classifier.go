// Package ownership classifies whether the current process can delete an
// extension directory without elevation.
package ownership

import "strings"

// Classifier answers the advisory "can this process remove the directory?"
// question. The answer is used to pre-disable destructive affordances for
// obviously-unremovable entries; removal itself never trusts it, since
// ownership can change between check and use.
type Classifier struct{}

// NewClassifier creates an ownership classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Removable reports whether the process owns the directory at path.
// Any inspection failure degrades to false.
func (c *Classifier) Removable(path string) bool {
	return removable(path)
}

// underDir reports whether path lies at or below base. Separators and
// case are normalized the NTFS way, so either slash form matches.
func underDir(base, path string) bool {
	norm := func(p string) string {
		return strings.ToLower(strings.ReplaceAll(p, `\`, "/"))
	}
	base = strings.TrimRight(norm(base), "/")
	path = norm(path)
	return path == base || strings.HasPrefix(path, base+"/")
}
