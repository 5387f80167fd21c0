package extensiondomain

import (
	"fmt"
	"strings"
)

// Scope represents the installation tier of an extension
type Scope string

const (
	// ScopeSystem covers extensions visible to every user on the machine
	ScopeSystem Scope = "system"
	// ScopeUser covers extensions installed for the current user only
	ScopeUser Scope = "user"
)

// NewScope validates and returns a Scope from its string form
func NewScope(value string) (Scope, error) {
	switch Scope(strings.ToLower(value)) {
	case ScopeSystem:
		return ScopeSystem, nil
	case ScopeUser:
		return ScopeUser, nil
	default:
		return "", fmt.Errorf("invalid scope %q: must be %q or %q", value, ScopeSystem, ScopeUser)
	}
}

// String returns the string form of the scope
func (s Scope) String() string {
	return string(s)
}

// Category classifies an extension by its bundle id namespace
type Category string

const (
	// CategoryNative marks extensions in Adobe's reserved namespace
	CategoryNative Category = "native"
	// CategoryThirdParty marks everything else
	CategoryThirdParty Category = "third-party"
)

// adobeBundlePrefix is the vendor-reserved bundle id namespace.
const adobeBundlePrefix = "com.adobe."

// CategoryForBundleID derives the category from a bundle id prefix
func CategoryForBundleID(bundleID string) Category {
	if strings.HasPrefix(bundleID, adobeBundlePrefix) {
		return CategoryNative
	}
	return CategoryThirdParty
}

// String returns the string form of the category
func (c Category) String() string {
	return string(c)
}

// Entry represents one discovered extension directory.
//
// Entries are a point-in-time snapshot: Path denoted an existing directory
// when the scan ran, and nothing updates an Entry afterwards. A new scan
// produces a wholly new slice.
type Entry struct {
	// ID is the bundle id from the manifest, or the directory name when
	// the manifest is missing or unparsable
	ID string
	// Name is the display name, defaulted to the directory name
	Name string
	// Version is the bundle version, "unknown" when unavailable
	Version string
	// Path is the absolute directory the extension lives in; it uniquely
	// identifies the on-disk resource
	Path string
	// Scope is the root the entry was discovered under
	Scope Scope
	// Category distinguishes vendor extensions from third-party ones
	Category Category
	// Removable reports whether the current process owned the directory
	// at scan time. Advisory only: removal never trusts it and always
	// attempts deletion, escalating on permission failure.
	Removable bool
	// SizeBytes is the recursive on-disk size, or -1 when unreadable
	SizeBytes int64
}

// UnknownVersion is the placeholder for entries without version metadata.
const UnknownVersion = "unknown"

// FormatSize renders SizeBytes for display
func (e Entry) FormatSize() string {
	return FormatSize(e.SizeBytes)
}

// FormatSize renders a byte count as B, KB, or MB
func FormatSize(bytes int64) string {
	switch {
	case bytes < 0:
		return UnknownVersion
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}
