//go:build !windows

package ownership

import (
	"os"
	"syscall"
)

// removable compares the directory's owning uid to the process's
// effective uid.
func removable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	return int(stat.Uid) == os.Geteuid()
}
