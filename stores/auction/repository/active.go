package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/log"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/auction"
	"github.com/auctra/goapi/service/query"
)

type activeMongoRepo struct {
	q query.Mongo
}

func NewActiveRepo(q query.Mongo) auction.ActiveRepo {
	return &activeMongoRepo{
		q: q,
	}
}

func (r *activeMongoRepo) Create(ctx bCtx.Ctx, marker *auction.ActiveAuction) error {
	if err := r.q.Insert(ctx, domain.TableActiveAuctions, marker); err != nil {
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		ctx.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *activeMongoRepo) Remove(ctx bCtx.Ctx, seller, auctionAccount domain.Address) error {
	selector := bson.M{
		"seller":  seller.ToLower(),
		"auction": auctionAccount.ToLower(),
	}
	if err := r.q.Remove(ctx, domain.TableActiveAuctions, selector); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		ctx.WithFields(log.Fields{
			"err":     err,
			"seller":  seller,
			"auction": auctionAccount,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}

func (r *activeMongoRepo) FindBySeller(ctx bCtx.Ctx, seller domain.Address) ([]auction.ActiveAuction, error) {
	res := []auction.ActiveAuction{}
	if err := r.q.Search(ctx, domain.TableActiveAuctions, 0, searchLimit, "", bson.M{"seller": seller.ToLower()}, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"seller": seller,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
