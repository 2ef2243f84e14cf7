//go:build windows

package pagesize

import "golang.org/x/sys/windows"

func queryOS() uint64 {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	return uint64(info.PageSize)
}
