package usecase

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/viney-shih/goroutines"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/log"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/asset"
	"github.com/auctra/goapi/domain/auction"
	"github.com/auctra/goapi/domain/dealer"
	"github.com/auctra/goapi/domain/keys"
	"github.com/auctra/goapi/service/clock"
	"github.com/auctra/goapi/service/query"
)

// Config wires the auction engine. Tier table, fee rate, tolerance and the
// cancel policy are injected at startup, not compiled in.
type Config struct {
	Auctions     auction.Repo
	Participated auction.ParticipatedRepo
	Active       auction.ActiveRepo
	Assets       asset.Repo
	Dealers      dealer.Repo
	Platform     domain.PlatformRepo
	Custody      domain.TokenCustody
	Clock        clock.Clock
	Query        query.Mongo

	Tiers           auction.TierTable
	BidFeeRate      decimal.Decimal
	StartTolerance  time.Duration
	PlatformAccount domain.Address

	// zero-bid seller-cancel policy
	AllowScheduledCancel      bool
	RefundCreationFeeOnCancel bool
}

type auctionUsecase struct {
	cfg Config
}

func New(cfg Config) auction.Usecase {
	return &auctionUsecase{cfg: cfg}
}

// feeOf applies a decimal rate to an integer amount, flooring to base units.
func feeOf(rate decimal.Decimal, amount uint64) uint64 {
	fee := rate.Mul(decimal.NewFromInt(int64(amount))).Floor()
	if fee.IsNegative() {
		return 0
	}
	return uint64(fee.IntPart())
}

func (im *auctionUsecase) requireDealer(c ctx.Ctx, who domain.Address) error {
	if _, err := im.cfg.Dealers.FindOne(c, who); err != nil {
		if err == domain.ErrNotFound {
			return domain.ErrDealerNotFound
		}
		return err
	}
	return nil
}

func (im *auctionUsecase) Create(c ctx.Ctx, seller domain.Address, payload auction.CreatePayload) (*auction.Auction, error) {
	if err := auction.ValidateTexts(payload.Title, payload.Description); err != nil {
		return nil, err
	}
	if payload.StartingPrice == 0 {
		return nil, domain.ErrBadParamInput
	}
	if err := im.requireDealer(c, seller); err != nil {
		return nil, err
	}

	tier, ok := im.cfg.Tiers[payload.DurationTier]
	if !ok {
		return nil, domain.ErrInvalidDuration
	}

	now := im.cfg.Clock.Now()
	startTime := time.Unix(payload.StartTime, 0).UTC()
	if startTime.Before(now.Add(-im.cfg.StartTolerance)) {
		return nil, domain.ErrInvalidStartTime
	}
	endTime := startTime.Add(tier.Duration)

	seller = seller.ToLower()
	mint := payload.AssetMint.ToLower()

	account, bump, err := keys.Derive(keys.KindAuction, string(mint), string(seller), strconv.FormatInt(startTime.Unix(), 10))
	if err != nil {
		c.WithField("err", err).Error("keys.Derive failed")
		return nil, err
	}
	vault, _, err := keys.Derive(keys.KindVault, string(account))
	if err != nil {
		c.WithField("err", err).Error("keys.Derive failed")
		return nil, err
	}

	creationFee := feeOf(tier.CreationFeeRate, payload.StartingPrice)

	status := auction.StatusActive
	if startTime.After(now) {
		status = auction.StatusScheduled
	}

	a := &auction.Auction{
		Account:       account,
		Seller:        seller,
		AssetMint:     mint,
		VaultAccount:  vault,
		StartTime:     startTime,
		EndTime:       endTime,
		HighestBidder: domain.EmptyAddress,
		StartingPrice: payload.StartingPrice,
		Status:        status,

		CreationFeePaid: creationFee,
		PendingRefundTo: domain.EmptyAddress,
		Title:           payload.Title,
		Description:     payload.Description,
		Bump:            bump,
	}

	err = im.cfg.Query.RunWithTransaction(c, func(txc ctx.Ctx) error {
		stored, err := im.cfg.Assets.FindOne(txc, mint)
		if err != nil {
			return err
		}
		if stored.IsListed {
			return domain.ErrAssetAlreadyListed
		}
		if !stored.Owner.Equals(seller) {
			return domain.ErrUnauthorized
		}

		// creation fee goes straight to the treasury, non refundable unless
		// the cancel policy says otherwise
		if err := im.cfg.Custody.Lock(txc, seller, im.cfg.PlatformAccount, creationFee); err != nil {
			return err
		}
		if err := im.cfg.Platform.AddFees(txc, creationFee); err != nil {
			return err
		}

		// asset custody moves into the auction vault for the auction lifetime
		if err := im.cfg.Custody.TransferAsset(txc, mint, seller, vault); err != nil {
			return err
		}
		listed := true
		if err := im.cfg.Assets.Patch(txc, mint, asset.Patchable{IsListed: &listed}); err != nil {
			return err
		}

		if err := im.cfg.Auctions.Create(txc, a); err != nil {
			return err
		}

		_, markerBump, err := keys.Derive(keys.KindActive, string(seller), string(account))
		if err != nil {
			return err
		}
		return im.cfg.Active.Create(txc, &auction.ActiveAuction{
			Seller:  seller,
			Auction: account,
			Bump:    markerBump,
		})
	})
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"seller": seller,
			"mint":   mint,
		}).Warn("create auction rejected")
		return nil, err
	}
	return a, nil
}

func (im *auctionUsecase) Get(c ctx.Ctx, account domain.Address) (*auction.Auction, error) {
	a, err := im.cfg.Auctions.FindOne(c, account)
	if err != nil {
		return nil, err
	}
	// surface the lazily derived status without persisting it
	a.Status = a.ResolveStatus(im.cfg.Clock.Now())
	return a, nil
}

func (im *auctionUsecase) Search(c ctx.Ctx, filter auction.SearchFilter) ([]auction.Auction, error) {
	// one clock reading drives both the selector and the statuses in the
	// response, so the filter can never contradict the payload
	now := im.cfg.Clock.Now()
	filter.Now = now

	as, err := im.cfg.Auctions.Search(c, filter)
	if err != nil {
		return nil, err
	}
	for i := range as {
		as[i].Status = as[i].ResolveStatus(now)
	}
	return as, nil
}

func (im *auctionUsecase) PlaceBid(c ctx.Ctx, bidder, account domain.Address, amount uint64) (*auction.Auction, error) {
	if err := im.requireDealer(c, bidder); err != nil {
		return nil, err
	}
	bidder = bidder.ToLower()

	var updated *auction.Auction
	err := im.cfg.Query.RunWithTransaction(c, func(txc ctx.Ctx) error {
		a, err := im.cfg.Auctions.FindOne(txc, account)
		if err != nil {
			return err
		}

		now := im.cfg.Clock.Now()
		if a.ResolveStatus(now) != auction.StatusActive {
			return domain.ErrAuctionNotActive
		}
		if !now.Before(a.EndTime) {
			return domain.ErrAuctionNotActive
		}

		// strict increase over the current highest bid; the first bid only
		// has to reach the starting price
		if a.HighestBidder.IsEmpty() {
			if amount < a.StartingPrice {
				return domain.ErrBidTooLow
			}
		} else if amount <= a.HighestBid {
			return domain.ErrBidTooLow
		}

		if err := im.cfg.Custody.Lock(txc, bidder, a.VaultAccount, amount); err != nil {
			return err
		}

		// the bid fee accrues the moment the bid lands and is never
		// reversed, even when a later bid supersedes this one. The funds
		// only leave the vault at settlement so every escrowed bid stays
		// fully covered for its refund no matter how many bids accrue fees.
		fee := feeOf(im.cfg.BidFeeRate, amount)

		patch := auction.BidPatch{
			HighestBid:          amount,
			HighestBidder:       bidder,
			Status:              auction.StatusActive,
			BidFee:              fee,
			PendingRefundAmount: a.PendingRefundAmount,
			PendingRefundTo:     a.PendingRefundTo,
		}
		if !a.HighestBidder.IsEmpty() {
			// the outbid bidder's funds become the single pending refund,
			// overwriting any earlier unclaimed slot
			patch.PendingRefundAmount = a.HighestBid
			patch.PendingRefundTo = a.HighestBidder
		}

		expect := auction.BidSnapshot{
			HighestBid:    a.HighestBid,
			HighestBidder: a.HighestBidder,
		}
		if err := im.cfg.Auctions.UpdateBidState(txc, account, expect, patch); err != nil {
			return err
		}

		_, markerBump, err := keys.Derive(keys.KindParticipated, string(bidder), string(a.Account))
		if err != nil {
			return err
		}
		if err := im.cfg.Participated.Upsert(txc, &auction.ParticipatedAuction{
			Buyer:   bidder,
			Auction: a.Account,
			Bump:    markerBump,
		}); err != nil {
			return err
		}

		next := *a
		next.HighestBid = patch.HighestBid
		next.HighestBidder = patch.HighestBidder
		next.Status = patch.Status
		next.TotalBidFeesCollected += fee
		next.PendingRefundAmount = patch.PendingRefundAmount
		next.PendingRefundTo = patch.PendingRefundTo
		updated = &next
		return nil
	})
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"bidder":  bidder,
			"auction": account,
			"amount":  amount,
		}).Warn("bid rejected")
		return nil, err
	}
	return updated, nil
}

func (im *auctionUsecase) ClaimPendingRefund(c ctx.Ctx, caller, account domain.Address) (uint64, error) {
	caller = caller.ToLower()

	var amount uint64
	err := im.cfg.Query.RunWithTransaction(c, func(txc ctx.Ctx) error {
		a, err := im.cfg.Auctions.FindOne(txc, account)
		if err != nil {
			return err
		}
		if a.PendingRefundAmount == 0 || !a.PendingRefundTo.Equals(caller) {
			return domain.ErrNoRefundAvailable
		}

		// zero the slot and pay out as one atomic step; a repeated claim
		// misses the conditional write and stays a safe no-op error
		if err := im.cfg.Auctions.ClearRefund(txc, account, caller, a.PendingRefundAmount); err != nil {
			return err
		}
		if err := im.cfg.Custody.Release(txc, a.VaultAccount, caller, a.PendingRefundAmount); err != nil {
			return err
		}
		amount = a.PendingRefundAmount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}

func (im *auctionUsecase) End(c ctx.Ctx, caller, account domain.Address) (*auction.Auction, error) {
	caller = caller.ToLower()

	var settled *auction.Auction
	err := im.cfg.Query.RunWithTransaction(c, func(txc ctx.Ctx) error {
		a, err := im.cfg.Auctions.FindOne(txc, account)
		if err != nil {
			return err
		}
		if a.Status == auction.StatusEnded {
			return domain.ErrAlreadySettled
		}
		if !a.Seller.Equals(caller) {
			return domain.ErrUnauthorized
		}
		if im.cfg.Clock.Now().Before(a.EndTime) {
			return domain.ErrAuctionNotEnded
		}

		if err := im.cfg.Auctions.SetEnded(txc, account); err != nil {
			return err
		}

		if !a.HighestBidder.IsEmpty() {
			// winner takes the asset; the accrued bid fees are realized out
			// of the winning bid and the seller takes the remainder. A long
			// bid run can accrue more fees than the winning bid, the
			// treasury take is capped there so the vault keeps covering the
			// pending refund.
			if err := im.cfg.Custody.TransferAsset(txc, a.AssetMint, a.VaultAccount, a.HighestBidder); err != nil {
				return err
			}
			feeShare := a.TotalBidFeesCollected
			if feeShare > a.HighestBid {
				feeShare = a.HighestBid
			}
			if err := im.cfg.Custody.Release(txc, a.VaultAccount, im.cfg.PlatformAccount, feeShare); err != nil {
				return err
			}
			if err := im.cfg.Platform.AddFees(txc, feeShare); err != nil {
				return err
			}
			if err := im.cfg.Custody.Release(txc, a.VaultAccount, a.Seller, a.HighestBid-feeShare); err != nil {
				return err
			}
			newOwner := a.HighestBidder
			if err := im.cfg.Assets.Patch(txc, a.AssetMint, asset.Patchable{Owner: &newOwner}); err != nil {
				return err
			}
		} else {
			// no bids: the asset goes back, the creation fee stays with the
			// treasury
			if err := im.cfg.Custody.TransferAsset(txc, a.AssetMint, a.VaultAccount, a.Seller); err != nil {
				return err
			}
		}

		// a refund still pending stays claimable from the vault after
		// settlement, it is never swept here
		listed := false
		if err := im.cfg.Assets.Patch(txc, a.AssetMint, asset.Patchable{IsListed: &listed}); err != nil {
			return err
		}
		if err := im.cfg.Active.Remove(txc, a.Seller, a.Account); err != nil {
			return err
		}

		next := *a
		next.Status = auction.StatusEnded
		settled = &next
		return nil
	})
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"caller":  caller,
			"auction": account,
		}).Warn("end auction rejected")
		return nil, err
	}
	return settled, nil
}

func (im *auctionUsecase) Cancel(c ctx.Ctx, caller, account domain.Address) error {
	if !im.cfg.AllowScheduledCancel {
		return domain.ErrCancelNotAllowed
	}
	caller = caller.ToLower()

	return im.cfg.Query.RunWithTransaction(c, func(txc ctx.Ctx) error {
		a, err := im.cfg.Auctions.FindOne(txc, account)
		if err != nil {
			return err
		}
		if a.Status == auction.StatusEnded {
			return domain.ErrAlreadySettled
		}
		if !a.Seller.Equals(caller) {
			return domain.ErrUnauthorized
		}
		if a.ResolveStatus(im.cfg.Clock.Now()) != auction.StatusScheduled || !a.HighestBidder.IsEmpty() {
			return domain.ErrCancelNotAllowed
		}

		if err := im.cfg.Auctions.SetEnded(txc, account); err != nil {
			return err
		}
		if err := im.cfg.Custody.TransferAsset(txc, a.AssetMint, a.VaultAccount, a.Seller); err != nil {
			return err
		}
		listed := false
		if err := im.cfg.Assets.Patch(txc, a.AssetMint, asset.Patchable{IsListed: &listed}); err != nil {
			return err
		}
		if err := im.cfg.Active.Remove(txc, a.Seller, a.Account); err != nil {
			return err
		}

		if im.cfg.RefundCreationFeeOnCancel && a.CreationFeePaid > 0 {
			if err := im.cfg.Platform.DeductFees(txc, a.CreationFeePaid); err != nil {
				return err
			}
			if err := im.cfg.Custody.Release(txc, im.cfg.PlatformAccount, a.Seller, a.CreationFeePaid); err != nil {
				return err
			}
		}
		return nil
	})
}

func (im *auctionUsecase) ListParticipated(c ctx.Ctx, buyer domain.Address) ([]*auction.Auction, error) {
	markers, err := im.cfg.Participated.FindByBuyer(c, buyer)
	if err != nil {
		return nil, err
	}
	if len(markers) == 0 {
		return []*auction.Auction{}, nil
	}

	now := im.cfg.Clock.Now()

	// batch get the auction records behind the markers
	b := goroutines.NewBatch(10, goroutines.WithBatchSize(len(markers)))
	defer b.Close()
	for i := 0; i < len(markers); i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			return im.cfg.Auctions.FindOne(c, markers[idx].Auction)
		})
	}
	b.QueueComplete()

	as := make([]*auction.Auction, 0, len(markers))
	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithField("err", ret.Error()).Error("list participated auction lookup failed")
			continue
		}
		a := ret.Value().(*auction.Auction)
		a.Status = a.ResolveStatus(now)
		as = append(as, a)
	}
	return as, nil
}

func (im *auctionUsecase) ListActive(c ctx.Ctx, seller domain.Address) ([]auction.ActiveAuction, error) {
	return im.cfg.Active.FindBySeller(c, seller)
}
