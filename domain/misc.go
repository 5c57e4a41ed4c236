package domain

import (
	"strings"
)

// Address is a lowercased hex account reference. All entity records and
// custody accounts are addressed by canonical derived addresses, see
// domain/keys.
type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0 || a == EmptyAddress
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// Table is a mongo collection name
type Table string

const (
	TableDealers              Table = "dealers"
	TableAssets               Table = "assets"
	TableAuctions             Table = "auctions"
	TableParticipatedAuctions Table = "participated_auctions"
	TableActiveAuctions       Table = "active_auctions"
	TablePlatformWallets      Table = "platform_wallets"
	TableTokenAccounts        Table = "token_accounts"
	TableAssetAccounts        Table = "asset_accounts"
)

// record length caps, counted in runes
const (
	MaxTitleLength       = 16
	MaxNameLength        = 64
	MaxDescriptionLength = 80
)

type SortDir int8

const (
	SortDirAsc  SortDir = 1
	SortDirDesc SortDir = -1
)
