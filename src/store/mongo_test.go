package store

import (
	"context"
	"testing"

	"villas/src/types"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("find villa", func(mt *mtest.T) {
		s := NewMongoStore(mt.Client, "villas")
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "villas.villas", mtest.FirstBatch, bson.D{
			{Key: "id", Value: "villa-1"},
			{Key: "name", Value: "Apollo's Sanctuary"},
			{Key: "max_guests", Value: 2},
			{Key: "price_per_night", Value: 850.0},
			{Key: "amenities", Value: bson.A{"Private Pool", "Ocean View"}},
		}))
		villa, err := s.FindVilla(context.Background(), "villa-1")
		assert.NoError(t, err)
		assert.Equal(t, "Apollo's Sanctuary", villa.Name)
		assert.Equal(t, types.StringList{"Private Pool", "Ocean View"}, villa.Amenities)
	})

	mt.Run("villa not found", func(mt *mtest.T) {
		s := NewMongoStore(mt.Client, "villas")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "villas.villas", mtest.FirstBatch))
		_, err := s.FindVilla(context.Background(), "villa-404")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	mt.Run("update completed transaction is a no-op", func(mt *mtest.T) {
		s := NewMongoStore(mt.Client, "villas")
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})
		matched, confirmed, err := s.UpdateTransaction(context.Background(), "cs_1", types.TRANSACTION_COMPLETED, types.PAYMENT_PAID, true)
		assert.NoError(t, err)
		assert.False(t, matched)
		assert.False(t, confirmed)
	})

	mt.Run("update confirms booking", func(mt *mtest.T) {
		s := NewMongoStore(mt.Client, "villas")
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: bson.D{
				{Key: "session_id", Value: "cs_1"},
				{Key: "booking_id", Value: "b1"},
				{Key: "status", Value: "initiated"},
			}}},
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)
		matched, confirmed, err := s.UpdateTransaction(context.Background(), "cs_1", types.TRANSACTION_COMPLETED, types.PAYMENT_PAID, true)
		assert.NoError(t, err)
		assert.True(t, matched)
		assert.True(t, confirmed)
	})

	mt.Run("update reports booking already confirmed", func(mt *mtest.T) {
		s := NewMongoStore(mt.Client, "villas")
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: bson.D{
				{Key: "session_id", Value: "cs_2"},
				{Key: "booking_id", Value: "b1"},
				{Key: "status", Value: "initiated"},
			}}},
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)
		matched, confirmed, err := s.UpdateTransaction(context.Background(), "cs_2", types.TRANSACTION_COMPLETED, types.PAYMENT_PAID, true)
		assert.NoError(t, err)
		assert.True(t, matched)
		assert.False(t, confirmed)
	})

	mt.Run("update surfaces failed booking confirm", func(mt *mtest.T) {
		s := NewMongoStore(mt.Client, "villas")
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: bson.D{
				{Key: "session_id", Value: "cs_1"},
				{Key: "booking_id", Value: "b1"},
				{Key: "status", Value: "initiated"},
			}}},
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 121, Message: "document failed validation"}),
		)
		matched, confirmed, err := s.UpdateTransaction(context.Background(), "cs_1", types.TRANSACTION_COMPLETED, types.PAYMENT_PAID, true)
		assert.Error(t, err)
		assert.True(t, matched)
		assert.False(t, confirmed)
	})

	mt.Run("list unconfirmed paid", func(mt *mtest.T) {
		s := NewMongoStore(mt.Client, "villas")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "villas.payment_transactions", mtest.FirstBatch, bson.D{
			{Key: "id", Value: "t1"},
			{Key: "session_id", Value: "cs_1"},
			{Key: "booking_id", Value: "b1"},
			{Key: "status", Value: "completed"},
			{Key: "payment_status", Value: "paid"},
		}))
		txns, err := s.ListUnconfirmedPaid(context.Background(), 10)
		assert.NoError(t, err)
		if assert.Len(t, txns, 1) {
			assert.Equal(t, "b1", txns[0].BookingID)
			assert.Equal(t, types.TRANSACTION_COMPLETED, txns[0].Status)
		}
		started := mt.GetStartedEvent()
		if assert.NotNil(t, started) {
			assert.Equal(t, "aggregate", started.CommandName)
		}
	})

	mt.Run("confirm booking", func(mt *mtest.T) {
		s := NewMongoStore(mt.Client, "villas")
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)
		moved, err := s.ConfirmBooking(context.Background(), "b1")
		assert.NoError(t, err)
		assert.True(t, moved)
		moved, err = s.ConfirmBooking(context.Background(), "b1")
		assert.NoError(t, err)
		assert.False(t, moved)
	})

	mt.Run("overlapping bookings filter", func(mt *mtest.T) {
		s := NewMongoStore(mt.Client, "villas")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "villas.bookings", mtest.FirstBatch, bson.D{
			{Key: "id", Value: "b1"},
			{Key: "villa_id", Value: "villa-1"},
			{Key: "check_in", Value: "2025-06-01"},
			{Key: "check_out", Value: "2025-06-04"},
			{Key: "status", Value: "pending"},
		}))
		found, err := s.FindOverlappingBookings(context.Background(), "villa-1", "2025-06-03", "2025-06-05")
		assert.NoError(t, err)
		if assert.Len(t, found, 1) {
			assert.Equal(t, "b1", found[0].ID)
		}

		started := mt.GetStartedEvent()
		if !assert.NotNil(t, started) {
			return
		}
		assert.Equal(t, "find", started.CommandName)
		filter := started.Command.Lookup("filter").Document()
		assert.Equal(t, "villa-1", filter.Lookup("villa_id").StringValue())
		assert.Equal(t, "2025-06-05", filter.Lookup("check_in", "$lt").StringValue())
		assert.Equal(t, "2025-06-03", filter.Lookup("check_out", "$gt").StringValue())
		statuses, err := filter.Lookup("status", "$in").Array().Values()
		assert.NoError(t, err)
		var got []string
		for _, v := range statuses {
			got = append(got, v.StringValue())
		}
		assert.Equal(t, []string{"pending", "confirmed"}, got)
	})

	mt.Run("set session on missing booking", func(mt *mtest.T) {
		s := NewMongoStore(mt.Client, "villas")
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		err := s.SetBookingSession(context.Background(), "missing", "cs_1")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}
