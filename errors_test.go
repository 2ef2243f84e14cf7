package vmem

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesByKindOnly(t *testing.T) {
	a := assert.New(t)

	err := newErr("query", KindUnmappedRegion, fmt.Errorf("boom"))
	a.True(errors.Is(err, ErrUnmappedRegion))
	a.False(errors.Is(err, ErrOutOfMemory))
}

func TestErrorUnwrapExposesNativeError(t *testing.T) {
	a := assert.New(t)

	native := fmt.Errorf("native failure")
	err := newErr("alloc", KindOutOfMemory, native)
	a.Equal(native, errors.Unwrap(err))
}

func TestErrorStringIncludesOpAndKind(t *testing.T) {
	a := assert.New(t)

	err := newErr("protect", KindAccessDenied, nil)
	a.Contains(err.Error(), "protect")
	a.Contains(err.Error(), "access-denied")
}
