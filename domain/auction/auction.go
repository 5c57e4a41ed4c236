package auction

import (
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/domain"
)

// Status tracks the lifecycle of an auction. Scheduled and Active are
// derived lazily from the clock, see ResolveStatus; Ended is terminal and is
// only ever written by settlement.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusEnded     Status = "ended"
)

// DurationTier selects an entry of the injectable tier table.
type DurationTier uint8

// Tier couples an auction duration with the creation-fee rate charged when a
// seller opens an auction on that tier.
type Tier struct {
	Duration        time.Duration
	CreationFeeRate decimal.Decimal
}

// TierTable is the closed, injectable set of supported auction durations.
type TierTable map[DurationTier]Tier

// Auction is the central record of one auction's timing, bid state and
// escrow liabilities. The vault account referenced by VaultAccount custodies
// the escrowed asset and all escrowed funds for the auction's lifetime; the
// pending refund fields are a liability carried against that vault.
type Auction struct {
	Account               domain.Address `json:"account" bson:"account"`
	Seller                domain.Address `json:"seller" bson:"seller"`
	AssetMint             domain.Address `json:"assetMint" bson:"assetMint"`
	VaultAccount          domain.Address `json:"vaultAccount" bson:"vaultAccount"`
	StartTime             time.Time      `json:"startTime" bson:"startTime"`
	EndTime               time.Time      `json:"endTime" bson:"endTime"`
	HighestBid            uint64         `json:"highestBid" bson:"highestBid"`
	HighestBidder         domain.Address `json:"highestBidder" bson:"highestBidder"`
	StartingPrice         uint64         `json:"startingPrice" bson:"startingPrice"`
	Status                Status         `json:"status" bson:"status"`
	TotalBidFeesCollected uint64         `json:"totalBidFeesCollected" bson:"totalBidFeesCollected"`
	CreationFeePaid       uint64         `json:"creationFeePaid" bson:"creationFeePaid"`
	PendingRefundAmount   uint64         `json:"pendingRefundAmount" bson:"pendingRefundAmount"`
	PendingRefundTo       domain.Address `json:"pendingRefundTo" bson:"pendingRefundTo"`
	Title                 string         `json:"title" bson:"title"`
	Description           string         `json:"description" bson:"description"`
	Bump                  uint8          `json:"bump" bson:"bump"`
}

// ResolveStatus derives the effective status at `now`. It is a pure function
// invoked at the top of every operation; nothing ticks in the background.
// Active never decays to Ended here, that transition belongs to settlement.
func (a *Auction) ResolveStatus(now time.Time) Status {
	if a.Status == StatusEnded {
		return StatusEnded
	}
	if now.Before(a.StartTime) {
		return StatusScheduled
	}
	return StatusActive
}

func ValidateTexts(title, description string) error {
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return domain.ErrTitleTooLong
	}
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return domain.ErrDescriptionTooLong
	}
	return nil
}

// ParticipatedAuction is an idempotent marker, at most one per
// (buyer, auction), created on the buyer's first bid.
type ParticipatedAuction struct {
	Buyer   domain.Address `json:"buyer" bson:"buyer"`
	Auction domain.Address `json:"auction" bson:"auction"`
	Bump    uint8          `json:"bump" bson:"bump"`
}

// ActiveAuction marks a seller's open auction, removed at settlement.
type ActiveAuction struct {
	Seller  domain.Address `json:"seller" bson:"seller"`
	Auction domain.Address `json:"auction" bson:"auction"`
	Bump    uint8          `json:"bump" bson:"bump"`
}

type CreatePayload struct {
	AssetMint     domain.Address `json:"assetMint" validate:"required"`
	StartTime     int64          `json:"startTime" validate:"required"`
	DurationTier  DurationTier   `json:"durationTier"`
	StartingPrice uint64         `json:"startingPrice" validate:"required,gt=0"`
	Title         string         `json:"title" validate:"required"`
	Description   string         `json:"description"`
}

// BidSnapshot is the bid state a mutation was decided on. Conditional
// updates carry it as their selector so a racing bid cannot overwrite a
// newer one unseen.
type BidSnapshot struct {
	HighestBid    uint64
	HighestBidder domain.Address
}

// BidPatch is the state installed by a successful bid.
type BidPatch struct {
	HighestBid          uint64
	HighestBidder       domain.Address
	Status              Status
	BidFee              uint64
	PendingRefundAmount uint64
	PendingRefundTo     domain.Address
}

// SearchFilter narrows a listing query. Status filtering needs `Now` because
// Scheduled and Active are derived from the clock, not stored.
type SearchFilter struct {
	Seller *domain.Address
	Status *Status
	Now    time.Time
	Offset int
	Limit  int
}

type Repo interface {
	FindOne(c ctx.Ctx, account domain.Address) (*Auction, error)
	Create(c ctx.Ctx, auction *Auction) error
	Search(c ctx.Ctx, filter SearchFilter) ([]Auction, error)

	// UpdateBidState installs a new bid iff the stored bid state still equals
	// `expect`. Returns domain.ErrConflict when a concurrent bid won the race.
	UpdateBidState(c ctx.Ctx, account domain.Address, expect BidSnapshot, patch BidPatch) error

	// ClearRefund zeroes the pending refund iff it is still owed to `to` with
	// amount `amount`. Returns domain.ErrNoRefundAvailable when the slot was
	// already claimed or re-installed for someone else.
	ClearRefund(c ctx.Ctx, account, to domain.Address, amount uint64) error

	// SetEnded transitions the auction to Ended iff it is not Ended yet.
	// Returns domain.ErrAlreadySettled otherwise.
	SetEnded(c ctx.Ctx, account domain.Address) error
}

type ParticipatedRepo interface {
	Upsert(c ctx.Ctx, marker *ParticipatedAuction) error
	FindByBuyer(c ctx.Ctx, buyer domain.Address) ([]ParticipatedAuction, error)
}

type ActiveRepo interface {
	Create(c ctx.Ctx, marker *ActiveAuction) error
	Remove(c ctx.Ctx, seller, auction domain.Address) error
	FindBySeller(c ctx.Ctx, seller domain.Address) ([]ActiveAuction, error)
}

type Usecase interface {
	Create(c ctx.Ctx, seller domain.Address, payload CreatePayload) (*Auction, error)
	Get(c ctx.Ctx, account domain.Address) (*Auction, error)
	Search(c ctx.Ctx, filter SearchFilter) ([]Auction, error)
	PlaceBid(c ctx.Ctx, bidder, account domain.Address, amount uint64) (*Auction, error)
	ClaimPendingRefund(c ctx.Ctx, caller, account domain.Address) (uint64, error)
	End(c ctx.Ctx, caller, account domain.Address) (*Auction, error)
	Cancel(c ctx.Ctx, caller, account domain.Address) error

	// ListParticipated returns the auctions the buyer has bid on, with their
	// statuses resolved against the clock.
	ListParticipated(c ctx.Ctx, buyer domain.Address) ([]*Auction, error)
	ListActive(c ctx.Ctx, seller domain.Address) ([]ActiveAuction, error)
}
