package ownership

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRemovable_OwnedDirectory tests the common case: directories the
// process just created are its own
func TestRemovable_OwnedDirectory(t *testing.T) {
	assert.True(t, NewClassifier().Removable(t.TempDir()))
}

// TestRemovable_MissingPath_DegradesToFalse tests failure degradation
func TestRemovable_MissingPath_DegradesToFalse(t *testing.T) {
	assert.False(t, NewClassifier().Removable(filepath.Join(t.TempDir(), "gone")))
}

// TestUnderDir tests the profile-containment check used for the Windows
// location approximation
func TestUnderDir(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want bool
	}{
		{"UserProfilePath", `C:\Users\dev`, `C:\Users\dev\AppData\Roaming\Adobe\CEP\extensions\com.example.tool`, true},
		{"CaseInsensitive", `C:\Users\dev`, `c:\USERS\DEV\AppData\Roaming`, true},
		{"MixedSeparators", `C:\Users\dev`, `C:/Users/dev/AppData/Roaming`, true},
		{"BaseItself", `C:\Users\dev`, `C:\Users\dev`, true},
		{"MachineWide", `C:\Users\dev`, `C:\Program Files\Common Files\Adobe\CEP\extensions\com.example.tool`, false},
		{"SiblingPrefix", `C:\Users\dev`, `C:\Users\devops\AppData`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, underDir(tt.base, tt.path))
		})
	}
}
