//go:build windows

package vmem

import "golang.org/x/sys/windows"

// toNativeProt selects the unique least-upper-bound PAGE_* constant for the
// requested Protection. Windows has no WRITE-only page protection, so
// Write-without-Read widens to PAGE_READWRITE (the caller's subsequent
// Query will observe ReadWrite, never Write alone).
//
// Bits outside the three canonical permissions cannot be expressed on
// Windows; they are dropped here silently, without an error or a log entry.
func toNativeProt(p Protection) uint32 {
	canon := p & canonicalBits
	switch {
	case canon.Has(Execute) && canon.Has(Write):
		return windows.PAGE_EXECUTE_READWRITE
	case canon.Has(Execute) && canon.Has(Read):
		return windows.PAGE_EXECUTE_READ
	case canon.Has(Execute):
		return windows.PAGE_EXECUTE
	case canon.Has(Write):
		return windows.PAGE_READWRITE
	case canon.Has(Read):
		return windows.PAGE_READONLY
	default:
		return windows.PAGE_NOACCESS
	}
}

// fromNativeProt is the inverse of toNativeProt, used to translate a
// VirtualQuery MEMORY_BASIC_INFORMATION.Protect field back into a
// Protection.
func fromNativeProt(native uint32) Protection {
	switch native &^ (windows.PAGE_GUARD | windows.PAGE_NOCACHE | windows.PAGE_WRITECOMBINE) {
	case windows.PAGE_NOACCESS:
		return None
	case windows.PAGE_READONLY:
		return Read
	case windows.PAGE_READWRITE, windows.PAGE_WRITECOPY:
		return ReadWrite
	case windows.PAGE_EXECUTE:
		return Execute
	case windows.PAGE_EXECUTE_READ:
		return ReadExecute
	case windows.PAGE_EXECUTE_READWRITE, windows.PAGE_EXECUTE_WRITECOPY:
		return ReadWriteExecute
	default:
		return None
	}
}
