package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// validation errors
	ErrNameTooLong        = errors.New("name exceeds max length")
	ErrTitleTooLong       = errors.New("title exceeds max length")
	ErrDescriptionTooLong = errors.New("description exceeds max length")

	// authorization errors
	ErrUnauthorized     = errors.New("caller is not authorized")
	ErrInvalidNonce     = errors.New("nonce is expired or was never issued")
	ErrInvalidSignature = errors.New("signature does not match address")

	// state errors
	ErrAlreadyRegistered  = errors.New("dealer already registered")
	ErrDealerNotFound     = errors.New("dealer profile required")
	ErrInvalidMint        = errors.New("mint is not controlled by caller")
	ErrAssetAlreadyListed = errors.New("asset already listed")
	ErrInvalidStartTime   = errors.New("start time is in the past")
	ErrInvalidDuration    = errors.New("unknown auction duration")
	ErrAuctionNotActive   = errors.New("auction is not active")
	ErrAuctionNotEnded    = errors.New("auction has not ended yet")
	ErrAlreadySettled     = errors.New("auction already settled")
	ErrCancelNotAllowed   = errors.New("auction cancellation not allowed")

	// economic errors
	ErrBidTooLow                   = errors.New("bid does not exceed highest bid")
	ErrInsufficientFunds           = errors.New("insufficient funds")
	ErrNoRefundAvailable           = errors.New("no refund available")
	ErrInsufficientTreasuryBalance = errors.New("insufficient treasury balance")
)
