//go:build unix

package vmem

import "golang.org/x/sys/unix"

// toNativeProt translates a Protection into POSIX PROT_* bits, ORed. Bits
// outside the three canonical permissions are passed through unchanged,
// since on POSIX they are plausibly valid extension bits the kernel
// understands.
func toNativeProt(p Protection) int {
	native := 0
	if p.Has(Read) {
		native |= unix.PROT_READ
	}
	if p.Has(Write) {
		native |= unix.PROT_WRITE
	}
	if p.Has(Execute) {
		native |= unix.PROT_EXEC
	}
	native |= int(p &^ canonicalBits)
	return native
}

// fromNativeProt is the inverse of toNativeProt, used when a region
// backend reports an observed protection (e.g. parsed "rwx" permission
// letters or a kinfo_vmentry protection field already reduced to the
// canonical bits).
func fromNativeProt(native int) Protection {
	var p Protection
	if native&unix.PROT_READ != 0 {
		p |= Read
	}
	if native&unix.PROT_WRITE != 0 {
		p |= Write
	}
	if native&unix.PROT_EXEC != 0 {
		p |= Execute
	}
	return p
}
