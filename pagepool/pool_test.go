package pagepool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type poolTestSuite struct {
	suite.Suite
	assert *assert.Assertions
	pool   *Pool
}

func (s *poolTestSuite) SetupTest() {
	s.assert = assert.New(s.T())
}

func (s *poolTestSuite) TearDownTest() {
	if s.pool != nil {
		s.pool.Close()
	}
	s.pool = nil
}

func (s *poolTestSuite) TestInvalidConfig() {
	_, err := New(Config{BlockSize: 0, MaxBlocks: 10})
	s.assert.NotNil(err)

	_, err = New(Config{BlockSize: 4096, MaxBlocks: 0})
	s.assert.NotNil(err)
}

func (s *poolTestSuite) TestInitialAllocations() {
	var err error
	s.pool, err = New(Config{BlockSize: 4096, MaxBlocks: 20})
	s.assert.Nil(err)
	s.assert.NotNil(s.pool)

	allocated, available, pending := s.pool.Stats()
	s.assert.Equal(4, allocated)
	s.assert.Equal(4, available)
	s.assert.Equal(0, pending)
}

func (s *poolTestSuite) TestGetPutRoundTrip() {
	var err error
	s.pool, err = New(Config{BlockSize: 4096, MaxBlocks: 20})
	s.assert.Nil(err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	block, err := s.pool.Get(ctx)
	s.assert.Nil(err)
	s.assert.NotNil(block)
	s.assert.Equal(4096, len(block.Bytes()))

	allocated, available, _ := s.pool.Stats()
	s.assert.Equal(4, allocated)
	s.assert.Equal(3, available)

	s.assert.Nil(s.pool.Put(block))
	time.Sleep(50 * time.Millisecond)

	allocated, available, _ = s.pool.Stats()
	s.assert.Equal(4, allocated)
	s.assert.Equal(4, available)
}

func (s *poolTestSuite) TestGetDefaultReturnsAnAvailableBlock() {
	var err error
	s.pool, err = New(Config{BlockSize: 4096, MaxBlocks: 20})
	s.assert.Nil(err)

	block, err := s.pool.GetDefault()
	s.assert.Nil(err)
	s.assert.NotNil(block)
}

func (s *poolTestSuite) TestPutUnknownBlockFails() {
	var err error
	s.pool, err = New(Config{BlockSize: 4096, MaxBlocks: 20})
	s.assert.Nil(err)

	err = s.pool.Put(&Block{})
	s.assert.NotNil(err)
}

func TestPool(t *testing.T) {
	suite.Run(t, new(poolTestSuite))
}
