//go:build windows

package ownership

import (
	"os"

	homedir "github.com/mitchellh/go-homedir"
)

// removable approximates ownership by location: directories under the
// user's profile are the user's, anything else (Program Files and other
// machine-wide locations) needs elevation. Owner SID comparison would
// need the full ACL API for what is an advisory hint, and probing write
// access would give a read-only scan filesystem side effects.
func removable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	home, err := homedir.Dir()
	if err != nil {
		return false
	}
	return underDir(home, path)
}
