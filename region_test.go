//go:build unix

package vmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type regionTestSuite struct {
	suite.Suite
	assert *assert.Assertions
	size   uintptr
}

func (s *regionTestSuite) SetupTest() {
	s.assert = assert.New(s.T())
	s.size = PageSize()
}

func (s *regionTestSuite) TestQueryRangeOverFullyMappedRangeIsContiguous() {
	a, err := Alloc(4*s.size, ReadWrite)
	s.assert.Nil(err)
	defer a.Release()

	regions, err := QueryRange(a.Base(), a.Len())
	s.assert.Nil(err)
	s.assert.NotEmpty(regions)
	s.assert.LessOrEqual(regions[0].Base(), a.Base())
	s.assert.GreaterOrEqual(regions[len(regions)-1].End(), a.Base()+a.Len())
	for i := 1; i < len(regions); i++ {
		s.assert.Equal(regions[i-1].End(), regions[i].Base())
	}
}

func (s *regionTestSuite) TestQueryRangeOverFullyUnmappedRangeFails() {
	a, err := Alloc(s.size, ReadWrite)
	s.assert.Nil(err)
	base := a.Base()
	s.assert.Nil(a.Release())

	_, err = QueryRange(base, s.size)
	s.assert.NotNil(err)
	s.assert.True(isKind(err, KindUnmappedRegion))
}

func (s *regionTestSuite) TestQueryRangeSpanningMappedHoleMappedFails() {
	a, err := Alloc(3*s.size, ReadWrite)
	s.assert.Nil(err)
	defer a.Release()

	middle := a.Base() + s.size
	s.assert.Nil(Protect(middle, s.size, ReadWrite))
	hole := &Allocation{base: middle, size: s.size, protection: ReadWrite}
	s.assert.Nil(hole.Release())

	_, err = QueryRange(a.Base(), a.Len())
	s.assert.NotNil(err)
	s.assert.True(isKind(err, KindUnmappedRegion))
}

func TestRegion(t *testing.T) {
	suite.Run(t, new(regionTestSuite))
}
