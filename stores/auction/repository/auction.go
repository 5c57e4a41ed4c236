package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/log"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/auction"
	"github.com/auctra/goapi/service/query"
)

const searchLimit = 200

type auctionMongoRepo struct {
	q query.Mongo
}

func NewAuctionRepo(q query.Mongo) auction.Repo {
	return &auctionMongoRepo{
		q: q,
	}
}

func (r *auctionMongoRepo) FindOne(ctx bCtx.Ctx, account domain.Address) (*auction.Auction, error) {
	res := &auction.Auction{}
	if err := r.q.FindOne(ctx, domain.TableAuctions, bson.M{"account": account.ToLower()}, res); err != nil {
		if err == query.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		ctx.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (r *auctionMongoRepo) Create(ctx bCtx.Ctx, a *auction.Auction) error {
	if err := r.q.Insert(ctx, domain.TableAuctions, a); err != nil {
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		ctx.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

// makeSearchSelector translates a filter into a mongo selector. Scheduled
// and Active are derived from the clock, so those two translate into time
// window predicates against filter.Now instead of matching the stored status,
// which still says "scheduled" for an auction whose start time has passed.
func makeSearchSelector(filter auction.SearchFilter) bson.M {
	qry := bson.M{}
	if filter.Seller != nil {
		qry["seller"] = filter.Seller.ToLower()
	}
	if filter.Status != nil {
		switch *filter.Status {
		case auction.StatusEnded:
			qry["status"] = auction.StatusEnded
		case auction.StatusScheduled:
			qry["status"] = bson.M{"$ne": auction.StatusEnded}
			qry["startTime"] = bson.M{"$gt": filter.Now}
		case auction.StatusActive:
			qry["status"] = bson.M{"$ne": auction.StatusEnded}
			qry["startTime"] = bson.M{"$lte": filter.Now}
		}
	}
	return qry
}

func (r *auctionMongoRepo) Search(ctx bCtx.Ctx, filter auction.SearchFilter) ([]auction.Auction, error) {
	qry := makeSearchSelector(filter)
	limit := filter.Limit
	if limit <= 0 || limit > searchLimit {
		limit = searchLimit
	}

	res := []auction.Auction{}
	if err := r.q.Search(ctx, domain.TableAuctions, filter.Offset, limit, "-startTime", qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

// UpdateBidState applies a bid with the previous bid state as part of the
// selector. A concurrent bid that already advanced highestBid makes the
// selector miss and the call reports domain.ErrConflict instead of silently
// dropping the newer state.
func (r *auctionMongoRepo) UpdateBidState(ctx bCtx.Ctx, account domain.Address, expect auction.BidSnapshot, patch auction.BidPatch) error {
	selector := bson.M{
		"account":    account.ToLower(),
		"highestBid": expect.HighestBid,
		"status":     bson.M{"$ne": auction.StatusEnded},
	}
	if expect.HighestBidder.IsEmpty() {
		selector["highestBidder"] = domain.EmptyAddress
	} else {
		selector["highestBidder"] = expect.HighestBidder.ToLower()
	}

	update := bson.M{
		"$set": bson.M{
			"highestBid":          patch.HighestBid,
			"highestBidder":       patch.HighestBidder.ToLower(),
			"status":              patch.Status,
			"pendingRefundAmount": patch.PendingRefundAmount,
			"pendingRefundTo":     patch.PendingRefundTo.ToLower(),
		},
		"$inc": bson.M{
			"totalBidFeesCollected": int64(patch.BidFee),
		},
	}

	if err := r.q.CustomPatch(ctx, domain.TableAuctions, selector, update, false); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrConflict
		}
		ctx.WithFields(log.Fields{
			"err":     err,
			"account": account,
		}).Error("q.CustomPatch failed")
		return err
	}
	return nil
}

// ClearRefund zeroes the pending refund in one conditional write so a claim
// can pay out exactly once.
func (r *auctionMongoRepo) ClearRefund(ctx bCtx.Ctx, account, to domain.Address, amount uint64) error {
	selector := bson.M{
		"account":             account.ToLower(),
		"pendingRefundTo":     to.ToLower(),
		"pendingRefundAmount": amount,
	}
	update := bson.M{
		"$set": bson.M{
			"pendingRefundAmount": uint64(0),
			"pendingRefundTo":     domain.EmptyAddress,
		},
	}
	if err := r.q.CustomPatch(ctx, domain.TableAuctions, selector, update, false); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrNoRefundAvailable
		}
		ctx.WithFields(log.Fields{
			"err":     err,
			"account": account,
		}).Error("q.CustomPatch failed")
		return err
	}
	return nil
}

// SetEnded is the only write that may move an auction to its terminal state.
func (r *auctionMongoRepo) SetEnded(ctx bCtx.Ctx, account domain.Address) error {
	selector := bson.M{
		"account": account.ToLower(),
		"status":  bson.M{"$ne": auction.StatusEnded},
	}
	update := bson.M{
		"$set": bson.M{
			"status": auction.StatusEnded,
		},
	}
	if err := r.q.CustomPatch(ctx, domain.TableAuctions, selector, update, false); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrAlreadySettled
		}
		ctx.WithFields(log.Fields{
			"err":     err,
			"account": account,
		}).Error("q.CustomPatch failed")
		return err
	}
	return nil
}
