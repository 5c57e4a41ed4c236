package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/log"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/auction"
	"github.com/auctra/goapi/service/query"
)

type participatedMongoRepo struct {
	q query.Mongo
}

func NewParticipatedRepo(q query.Mongo) auction.ParticipatedRepo {
	return &participatedMongoRepo{
		q: q,
	}
}

func (r *participatedMongoRepo) Upsert(ctx bCtx.Ctx, marker *auction.ParticipatedAuction) error {
	selector := bson.M{
		"buyer":   marker.Buyer.ToLower(),
		"auction": marker.Auction.ToLower(),
	}
	if err := r.q.Upsert(ctx, domain.TableParticipatedAuctions, selector, marker); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"marker": marker,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (r *participatedMongoRepo) FindByBuyer(ctx bCtx.Ctx, buyer domain.Address) ([]auction.ParticipatedAuction, error) {
	res := []auction.ParticipatedAuction{}
	if err := r.q.Search(ctx, domain.TableParticipatedAuctions, 0, searchLimit, "", bson.M{"buyer": buyer.ToLower()}, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"buyer": buyer,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
