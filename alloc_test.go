//go:build unix

package vmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type allocTestSuite struct {
	suite.Suite
	assert *assert.Assertions
	size   uintptr
}

func (s *allocTestSuite) SetupTest() {
	s.assert = assert.New(s.T())
	s.size = PageSize()
}

func (s *allocTestSuite) TestInvalidSize() {
	_, err := Alloc(0, ReadWrite)
	s.assert.NotNil(err)
	s.assert.True(isKind(err, KindInvalidParameter))
}

func (s *allocTestSuite) TestAllocateProtectSubrangeThenQuery() {
	a, err := Alloc(3*s.size, ReadWrite)
	s.assert.Nil(err)
	s.assert.NotNil(a)
	defer a.Release()

	s.assert.Equal(3*s.size, a.Len())

	r, err := Query(a.Base())
	s.assert.Nil(err)
	s.assert.Equal(ReadWrite, r.Protection())

	s.assert.Nil(Protect(a.Base(), s.size, Read))

	r, err = Query(a.Base())
	s.assert.Nil(err)
	s.assert.Equal(Read, r.Protection())

	r, err = Query(a.Base() + s.size)
	s.assert.Nil(err)
	s.assert.Equal(ReadWrite, r.Protection())
}

func (s *allocTestSuite) TestQueryOfUnmappedAddress() {
	_, err := Query(1)
	s.assert.NotNil(err)
	s.assert.True(isKind(err, KindUnmappedRegion))
}

func (s *allocTestSuite) TestAllocationRoundTrip() {
	a, err := Alloc(s.size, ReadWrite)
	s.assert.Nil(err)
	base := a.Base()

	s.assert.Nil(a.Release())

	_, err = Query(base)
	s.assert.NotNil(err)
	s.assert.True(isKind(err, KindUnmappedRegion))
}

func (s *allocTestSuite) TestReleaseIsIdempotent() {
	a, err := Alloc(s.size, ReadWrite)
	s.assert.Nil(err)
	s.assert.Nil(a.Release())
	s.assert.Nil(a.Release())
}

func TestAlloc(t *testing.T) {
	suite.Run(t, new(allocTestSuite))
}
