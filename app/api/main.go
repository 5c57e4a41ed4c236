package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/database/mongoclient"
	"github.com/auctra/goapi/base/database/redisclient"
	"github.com/auctra/goapi/base/log"
	"github.com/auctra/goapi/base/metrics"
	bValidator "github.com/auctra/goapi/base/validator"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/auction"
	mmiddleware "github.com/auctra/goapi/middleware"
	"github.com/auctra/goapi/service/cache"
	"github.com/auctra/goapi/service/cache/provider"
	"github.com/auctra/goapi/service/cache/provider/compound"
	"github.com/auctra/goapi/service/cache/provider/primitive"
	cacheRedis "github.com/auctra/goapi/service/cache/provider/redis"
	"github.com/auctra/goapi/service/clock"
	"github.com/auctra/goapi/service/custody"
	"github.com/auctra/goapi/service/query"
	"github.com/auctra/goapi/service/redis"
	asset_delivery "github.com/auctra/goapi/stores/asset/delivery/http"
	asset_repository "github.com/auctra/goapi/stores/asset/repository"
	asset_usecase "github.com/auctra/goapi/stores/asset/usecase"
	auction_delivery "github.com/auctra/goapi/stores/auction/delivery/http"
	auction_repository "github.com/auctra/goapi/stores/auction/repository"
	auction_usecase "github.com/auctra/goapi/stores/auction/usecase"
	auth_delivery "github.com/auctra/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/auctra/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/auctra/goapi/stores/auth/usecase"
	dealer_delivery "github.com/auctra/goapi/stores/dealer/delivery/http"
	dealer_repository "github.com/auctra/goapi/stores/dealer/repository"
	dealer_usecase "github.com/auctra/goapi/stores/dealer/usecase"
	hc_delivery "github.com/auctra/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/auctra/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/auctra/goapi/stores/healthcheck/usecase"
	platform_delivery "github.com/auctra/goapi/stores/platform/delivery/http"
	platform_repository "github.com/auctra/goapi/stores/platform/repository"
	platform_usecase "github.com/auctra/goapi/stores/platform/usecase"
)

func init() {
	pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		panic(err)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(viper.GetString("config"))
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

// loadTierTable reads the auction duration tiers from config. Every key under
// auction.tiers maps a tier id to its duration and creation-fee rate.
func loadTierTable() auction.TierTable {
	tiers := viper.Sub("auction.tiers")
	if tiers == nil {
		log.Log().Panic("auction.tiers is not configured")
	}
	table := auction.TierTable{}
	for k := range tiers.AllSettings() {
		id := tiers.GetInt(fmt.Sprintf("%s.id", k))
		duration := tiers.GetDuration(fmt.Sprintf("%s.duration", k))
		rate, err := decimal.NewFromString(tiers.GetString(fmt.Sprintf("%s.creationFeeRate", k)))
		if err != nil {
			log.Log().WithFields(log.Fields{"tier": k, "err": err}).Panic("invalid creation fee rate")
		}
		table[auction.DurationTier(id)] = auction.Tier{
			Duration:        duration,
			CreationFeeRate: rate,
		}
	}
	return table
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient)

	// init redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)

	// in-process layer in front of redis for hot public reads
	profileCacheProvider := compound.NewCompound([]provider.Provider{
		primitive.NewPrimitive("dealer", viper.GetInt("cache.localSizeMb")),
		cacheRedis.NewRedis(redisCache),
	})
	profileCache := cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("cache.profileTTL"),
		Pfx:   "dealer",
		Cache: profileCacheProvider,
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	dealerRepo := dealer_repository.NewDealerRepo(q)
	assetRepo := asset_repository.NewAssetRepo(q)
	auctionRepo := auction_repository.NewAuctionRepo(q)
	participatedRepo := auction_repository.NewParticipatedRepo(q)
	activeRepo := auction_repository.NewActiveRepo(q)
	platformRepo := platform_repository.NewPlatformRepo(q)

	custodyService := custody.New(q)
	clk := clock.New()

	hc := hc_usecase.New(hcRepo)
	dealer := dealer_usecase.New(dealerRepo, profileCache)
	asset := asset_usecase.New(assetRepo, dealerRepo, custodyService)

	bidFeeRate, err := decimal.NewFromString(viper.GetString("auction.bidFeeRate"))
	if err != nil {
		log.Log().WithField("err", err).Panic("invalid bid fee rate")
	}

	adminAddress := domain.Address(viper.GetString("admin.address")).ToLower()

	platform := platform_usecase.New(platform_usecase.Config{
		Platform: platformRepo,
		Custody:  custodyService,
		Query:    q,
		Admin:    adminAddress,
	})

	// the singleton treasury wallet has to exist before fees can land
	wallet, err := platform.Initialize(context)
	if err != nil {
		log.Log().WithField("err", err).Panic("platform wallet init failed")
	}
	context.WithField("account", wallet.Account).Info("platform wallet ready")

	auctionUC := auction_usecase.New(auction_usecase.Config{
		Auctions:     auctionRepo,
		Participated: participatedRepo,
		Active:       activeRepo,
		Assets:       assetRepo,
		Dealers:      dealerRepo,
		Platform:     platformRepo,
		Custody:      custodyService,
		Clock:        clk,
		Query:        q,

		Tiers:           loadTierTable(),
		BidFeeRate:      bidFeeRate,
		StartTolerance:  viper.GetDuration("auction.startTolerance"),
		PlatformAccount: wallet.Account,

		AllowScheduledCancel:      viper.GetBool("auction.allowScheduledCancel"),
		RefundCreationFeeOnCancel: viper.GetBool("auction.refundCreationFeeOnCancel"),
	})

	auth := auth_usecase.New(
		viper.GetString("auth.jwtSecret"),
		viper.GetString("auth.signatureMsg"),
		redisCache,
	)
	authMiddleware := auth_middleware.New(auth, []string{string(adminAddress)})

	addressGuard := mmiddleware.IsValidAddress("address")

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, viper.GetString("auth.signatureMsg"))
	dealer_delivery.New(e, dealer, authMiddleware.Auth(), addressGuard)
	asset_delivery.New(e, asset, authMiddleware.Auth())
	auction_delivery.New(e, auctionUC, authMiddleware.Auth(), addressGuard)
	platform_delivery.New(e, platform, authMiddleware.Auth(), authMiddleware.IsAdmin())

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	c, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(c); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
