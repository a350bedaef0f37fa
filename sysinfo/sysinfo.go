// Package sysinfo probes the host for values that size the B-Heap pages.
package sysinfo

import (
	"math/bits"

	"github.com/codewanderer42820/pqueue/constants"
)

// SlotsPerPage returns how many elements of elemSize bytes fit in one OS
// page, rounded down to a power of two and never below
// constants.MinPageSize nor above constants.MaxPageSize. The result is a
// valid B-Heap page size.
func SlotsPerPage(elemSize uintptr) int {
	return slotsPerPage(PageSize(), elemSize)
}

func slotsPerPage(pageBytes int, elemSize uintptr) int {
	if elemSize == 0 {
		elemSize = 1
	}
	n := uint(pageBytes) / uint(elemSize)
	if n < constants.MinPageSize {
		return constants.MinPageSize
	}
	if n > constants.MaxPageSize {
		return constants.MaxPageSize
	}
	return 1 << (bits.Len(n) - 1)
}
