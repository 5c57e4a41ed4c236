package compound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/service/cache/provider"
	"github.com/auctra/goapi/service/cache/provider/primitive"
)

func TestCompound(t *testing.T) {
	c := ctx.Background()
	l1 := primitive.NewPrimitive("l1", 1)
	l2 := primitive.NewPrimitive("l2", 1)
	cp := NewCompound([]provider.Provider{l1, l2})

	_, _, err := cp.Get(c, "k")
	assert.Equal(t, provider.ErrNotFound, err)

	// a hit in the second layer back-fills the first
	assert.NoError(t, l2.Set(c, "k", []byte("v"), time.Minute))
	val, _, err := cp.Get(c, "k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	val, _, err = l1.Get(c, "k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	// set and del fan out to every layer
	assert.NoError(t, cp.Set(c, "k2", []byte("v2"), time.Minute))
	_, _, err = l2.Get(c, "k2")
	assert.NoError(t, err)

	assert.NoError(t, cp.Del(c, "k"))
	_, _, err = l1.Get(c, "k")
	assert.Equal(t, provider.ErrNotFound, err)
	_, _, err = l2.Get(c, "k")
	assert.Equal(t, provider.ErrNotFound, err)
}
