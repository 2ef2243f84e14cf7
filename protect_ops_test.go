//go:build unix

package vmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type protectOpsTestSuite struct {
	suite.Suite
	assert *assert.Assertions
	size   uintptr
	alloc  *Allocation
}

func (s *protectOpsTestSuite) SetupTest() {
	s.assert = assert.New(s.T())
	s.size = PageSize()

	a, err := Alloc(3*s.size, ReadWrite)
	s.assert.Nil(err)
	s.alloc = a
}

func (s *protectOpsTestSuite) TearDownTest() {
	if s.alloc != nil {
		s.alloc.Release()
	}
}

func (s *protectOpsTestSuite) TestScopedProtectRestoresHeterogeneousMap() {
	base := s.alloc.Base()

	s.assert.Nil(Protect(base, s.size, Read))
	s.assert.Nil(Protect(base+s.size, s.size, ReadWrite))
	s.assert.Nil(Protect(base+2*s.size, s.size, ReadExecute))

	guard, err := ProtectWithHandle(base, 3*s.size, ReadWriteExecute)
	s.assert.Nil(err)
	s.assert.NotNil(guard)

	for i := uintptr(0); i < 3; i++ {
		r, err := Query(base + i*s.size)
		s.assert.Nil(err)
		s.assert.Equal(ReadWriteExecute, r.Protection())
	}

	s.assert.Nil(guard.Close())

	r, err := Query(base)
	s.assert.Nil(err)
	s.assert.Equal(Read, r.Protection())

	r, err = Query(base + s.size)
	s.assert.Nil(err)
	s.assert.Equal(ReadWrite, r.Protection())

	r, err = Query(base + 2*s.size)
	s.assert.Nil(err)
	s.assert.Equal(ReadExecute, r.Protection())
}

func (s *protectOpsTestSuite) TestProtectGuardCloseIsIdempotent() {
	guard, err := ProtectWithHandle(s.alloc.Base(), s.size, Read)
	s.assert.Nil(err)
	s.assert.Nil(guard.Close())
	s.assert.Nil(guard.Close())
}

func TestProtectOps(t *testing.T) {
	suite.Run(t, new(protectOpsTestSuite))
}
