//go:build !unix

package sysinfo

import "os"

// PageSize returns the OS memory page size in bytes.
func PageSize() int {
	return os.Getpagesize()
}
