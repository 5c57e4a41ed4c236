package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/auction"
)

func TestMakeSearchSelector(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seller := domain.Address("0x00000000000000000000000000000000000000AA")

	statusOf := func(s auction.Status) *auction.Status { return &s }

	t.Run("no filters", func(t *testing.T) {
		assert.Equal(t, bson.M{}, makeSearchSelector(auction.SearchFilter{}))
	})

	t.Run("seller is lowercased", func(t *testing.T) {
		qry := makeSearchSelector(auction.SearchFilter{Seller: &seller})
		assert.Equal(t, seller.ToLower(), qry["seller"])
	})

	t.Run("ended matches the stored terminal status", func(t *testing.T) {
		qry := makeSearchSelector(auction.SearchFilter{Status: statusOf(auction.StatusEnded), Now: now})
		assert.Equal(t, bson.M{"status": auction.StatusEnded}, qry)
	})

	// the stored status still says "scheduled" once the start time passes,
	// so active must select on the time window rather than the stored value
	t.Run("active selects by start time, not stored status", func(t *testing.T) {
		qry := makeSearchSelector(auction.SearchFilter{Status: statusOf(auction.StatusActive), Now: now})
		assert.Equal(t, bson.M{
			"status":    bson.M{"$ne": auction.StatusEnded},
			"startTime": bson.M{"$lte": now},
		}, qry)
	})

	t.Run("scheduled selects strictly future start times", func(t *testing.T) {
		qry := makeSearchSelector(auction.SearchFilter{Status: statusOf(auction.StatusScheduled), Now: now})
		assert.Equal(t, bson.M{
			"status":    bson.M{"$ne": auction.StatusEnded},
			"startTime": bson.M{"$gt": now},
		}, qry)
	})
}
