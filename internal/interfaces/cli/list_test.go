package cli

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	extensiondomain "github.com/zxpstudio/zxpman/internal/core/domain/extension"
)

func sampleEntries() []extensiondomain.Entry {
	return []extensiondomain.Entry{
		{
			ID:        "com.adobe.ccx.start",
			Name:      "CC Home",
			Version:   "5.1.0",
			Scope:     extensiondomain.ScopeSystem,
			Category:  extensiondomain.CategoryNative,
			SizeBytes: 4 * 1024 * 1024,
		},
		{
			ID:        "com.example.panel",
			Name:      "Example Panel",
			Version:   "1.0.0",
			Scope:     extensiondomain.ScopeUser,
			Category:  extensiondomain.CategoryThirdParty,
			SizeBytes: 2048,
		},
	}
}

// TestRenderEntryTable tests the list output contains every column
func TestRenderEntryTable(t *testing.T) {
	out := renderEntryTable(sampleEntries())

	assert.Contains(t, out, "CC Home")
	assert.Contains(t, out, "5.1.0")
	assert.Contains(t, out, "Example Panel")
	assert.Contains(t, out, "4.0 MB")
	assert.Contains(t, out, "2.0 KB")
	assert.Contains(t, out, "2 extension(s)")
}

// TestRenderEntryTable_Empty tests the placeholder for no extensions
func TestRenderEntryTable_Empty(t *testing.T) {
	assert.Contains(t, renderEntryTable(nil), "No extensions installed.")
}

// TestFilterByScope tests scope filtering for the --scope flag
func TestFilterByScope(t *testing.T) {
	entries := sampleEntries()

	user := filterByScope(entries, extensiondomain.ScopeUser)
	require.Len(t, user, 1)
	assert.Equal(t, "com.example.panel", user[0].ID)

	system := filterByScope(entries, extensiondomain.ScopeSystem)
	require.Len(t, system, 1)
	assert.Equal(t, "com.adobe.ccx.start", system[0].ID)
}

// TestTruncate tests display truncation
func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))
	assert.Equal(t, "longer-...", truncate("longer-than-ten", 10))
}

// TestTruncate_MultibyteNames tests that runes are never split mid-sequence
func TestTruncate_MultibyteNames(t *testing.T) {
	// 11 runes but 33 bytes; must not be cut at all.
	kana := "パネルマネージャー拡張"
	assert.Equal(t, kana, truncate(kana, 11))

	got := truncate(kana+"機能", 11)
	assert.Equal(t, "パネルマネージャ...", got)
	assert.True(t, utf8.ValidString(got))
}
