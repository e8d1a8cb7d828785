//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
)

// the whole file is locked by locking its first byte range
func lockFile(f *os.File, flags uint32) error {
	var ol windows.Overlapped
	return windows.LockFileEx(windows.Handle(f.Fd()), flags, 0, 1, 0, &ol)
}

// lockFileExclusive acquires an exclusive (write) lock
func lockFileExclusive(f *os.File) error {
	return lockFile(f, windows.LOCKFILE_EXCLUSIVE_LOCK)
}

// lockFileShared acquires a shared (read) lock
func lockFileShared(f *os.File) error {
	return lockFile(f, 0)
}

// unlockFile releases the file lock
func unlockFile(f *os.File) error {
	var ol windows.Overlapped
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, &ol)
}
