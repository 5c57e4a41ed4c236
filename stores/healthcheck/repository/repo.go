package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/database/mongoclient"
	hcdomain "github.com/auctra/goapi/domain/healthcheck"
	"github.com/auctra/goapi/domain/keys"
	"github.com/auctra/goapi/service/redis"
)

type impl struct {
	mgoClient  *mongoclient.Client
	redisCache redis.Service
}

func New(mgoClient *mongoclient.Client, redisCache redis.Service) hcdomain.HealthCheckRepo {
	return &impl{
		mgoClient:  mgoClient,
		redisCache: redisCache,
	}
}

// PingDB verifies both datastores answer within a short deadline.
func (im *impl) PingDB(context ctx.Ctx) error {
	c, cancel := ctx.WithTimeout(context, 2*time.Second)
	defer cancel()

	if err := im.mgoClient.Ping(c, readpref.Primary()); err != nil {
		context.WithField("err", err).Error("ping mongo error")
		return err
	}
	if err := im.redisCache.Set(c, keys.RedisKey(keys.PfxHealthCheck, "probe"), []byte("1"), 30*time.Second); err != nil {
		context.WithField("err", err).Error("test redis set failed")
		return err
	}
	return nil
}
