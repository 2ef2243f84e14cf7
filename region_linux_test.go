//go:build linux

package vmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMapsLineReadOnlyPrivate(t *testing.T) {
	a := assert.New(t)

	r, ok, err := parseMapsLine("00400000-00452000 r-xp 00000000 08:02 173521      /usr/bin/dbus-daemon")
	a.Nil(err)
	a.True(ok)
	a.Equal(uintptr(0x00400000), r.base)
	a.Equal(uintptr(0x00452000-0x00400000), r.size)
	a.Equal(ReadExecute, r.protection)
	a.False(r.shared)
}

func TestParseMapsLineAnonymousNoPath(t *testing.T) {
	a := assert.New(t)

	r, ok, err := parseMapsLine("7f1000000000-7f1000021000 rw-p 00000000 00:00 0 ")
	a.Nil(err)
	a.True(ok)
	a.Equal(ReadWrite, r.protection)
}

func TestParseMapsLineShared(t *testing.T) {
	a := assert.New(t)

	r, ok, err := parseMapsLine("7f2000000000-7f2000021000 rw-s 00000000 00:00 0")
	a.Nil(err)
	a.True(ok)
	a.True(r.shared)
}

func TestParseMapsLineMalformedIgnored(t *testing.T) {
	a := assert.New(t)

	_, ok, err := parseMapsLine("garbage line")
	a.Nil(err)
	a.False(ok)
}
