package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/domain/keys"
	"github.com/auctra/goapi/service/cache/provider"
	"github.com/auctra/goapi/service/cache/provider/primitive"
)

var mockCtx = ctx.Background()

type value struct {
	Value string `json:"value"`
}

type testsuite struct {
	suite.Suite
	im    *impl
	cache provider.Provider
}

func (ts *testsuite) SetupTest() {
	ts.cache = primitive.NewPrimitive("test", 1)
	ts.im = New(ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "testing",
		Cache: ts.cache,
	}).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestGet() {
	var (
		k = "key"
		v = value{"value"}
		c = &value{}
	)

	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, k, c))

	sv, err := json.Marshal(v)
	ts.NoError(err)
	ts.NoError(ts.cache.Set(mockCtx, keys.RedisKey(ts.im.pfx, k), sv, time.Minute))
	ts.NoError(ts.im.Get(mockCtx, k, c))
	ts.Equal(v, *c)
}

func (ts *testsuite) TestGetByFunc() {
	var (
		k     = "key"
		v     = value{"value"}
		c     = &value{}
		loads = 0
	)

	getter := func() (interface{}, error) {
		loads++
		return &v, nil
	}

	ts.NoError(ts.im.GetByFunc(mockCtx, k, c, getter))
	ts.Equal(v, *c)
	ts.Equal(1, loads)

	// second read is served from cache
	ts.NoError(ts.im.GetByFunc(mockCtx, k, &value{}, getter))
	ts.Equal(1, loads)

	// invalidation forces a reload
	ts.NoError(ts.im.Del(mockCtx, k))
	ts.NoError(ts.im.GetByFunc(mockCtx, k, &value{}, getter))
	ts.Equal(2, loads)
}
