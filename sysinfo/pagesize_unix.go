//go:build unix

package sysinfo

import "golang.org/x/sys/unix"

// PageSize returns the OS memory page size in bytes.
func PageSize() int {
	return unix.Getpagesize()
}
