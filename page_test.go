package vmem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type pageTestSuite struct {
	suite.Suite
	assert *assert.Assertions
	size   uintptr
}

func (s *pageTestSuite) SetupTest() {
	s.assert = assert.New(s.T())
	s.size = PageSize()
}

func (s *pageTestSuite) TestPageRounding() {
	ceiled, err := PageCeil(1)
	s.assert.Nil(err)
	s.assert.Equal(s.size, ceiled)

	ceiled, err = PageCeil(s.size)
	s.assert.Nil(err)
	s.assert.Equal(s.size, ceiled)

	ceiled, err = PageCeil(s.size + 1)
	s.assert.Nil(err)
	s.assert.Equal(2*s.size, ceiled)

	s.assert.Equal(uintptr(0), PageFloor(s.size-1))
	s.assert.Equal(s.size, PageFloor(s.size))
}

func (s *pageTestSuite) TestInvariantFloorLeAddrLeCeil() {
	for _, addr := range []uintptr{0, 1, s.size - 1, s.size, s.size + 1, 3*s.size + 17} {
		floor := PageFloor(addr)
		ceil, err := PageCeil(addr)
		s.assert.Nil(err)
		s.assert.LessOrEqual(floor, addr)
		s.assert.GreaterOrEqual(ceil, addr)
		s.assert.Equal(uintptr(0), floor%s.size)
		s.assert.Equal(uintptr(0), ceil%s.size)
		diff := ceil - floor
		s.assert.True(diff == 0 || diff == s.size)
	}
}

func (s *pageTestSuite) TestRangeToPageRangeZeroLength() {
	_, err := RangeToPageRange(s.size, 0)
	s.assert.NotNil(err)
	s.assert.True(isKind(err, KindInvalidParameter))
}

func (s *pageTestSuite) TestRangeToPageRangeNormalizes() {
	pr, err := RangeToPageRange(s.size+1, s.size)
	s.assert.Nil(err)
	s.assert.Equal(s.size, pr.Base)
	s.assert.Equal(3*s.size, pr.Size)
}

func TestPage(t *testing.T) {
	suite.Run(t, new(pageTestSuite))
}

func isKind(err error, k Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == k
}
