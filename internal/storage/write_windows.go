//go:build windows

package storage

import "os"

// renameio has no Windows support; fall back to a plain write.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
