//go:build unix

package pagesize

import "golang.org/x/sys/unix"

func queryOS() uint64 {
	return uint64(unix.Getpagesize())
}
