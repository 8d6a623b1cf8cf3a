package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"villas/src/models"
	"villas/src/types"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	VILLAS_COLLECTION       = "villas"
	BOOKINGS_COLLECTION     = "bookings"
	TRANSACTIONS_COLLECTION = "payment_transactions"
	CONTACTS_COLLECTION     = "contact_submissions"
)

type MongoStore struct {
	villas       *mongo.Collection
	bookings     *mongo.Collection
	transactions *mongo.Collection
	contacts     *mongo.Collection
}

func GetMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	db := client.Database(database)
	return &MongoStore{
		villas:       db.Collection(VILLAS_COLLECTION),
		bookings:     db.Collection(BOOKINGS_COLLECTION),
		transactions: db.Collection(TRANSACTIONS_COLLECTION),
		contacts:     db.Collection(CONTACTS_COLLECTION),
	}
}

// EnsureIndexes creates the unique session index and the booking range lookup index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	if _, err := s.transactions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	_, err := s.bookings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "villa_id", Value: 1}, {Key: "check_in", Value: 1}},
	})
	return err
}

func mongoNotFound(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", what, types.ErrNotFound)
	}
	return err
}

func (s *MongoStore) CountVillas(ctx context.Context) (int64, error) {
	return s.villas.CountDocuments(ctx, bson.M{})
}

func (s *MongoStore) InsertVillas(ctx context.Context, villas []models.Villa) error {
	if len(villas) == 0 {
		return nil
	}
	docs := make([]any, 0, len(villas))
	for _, v := range villas {
		docs = append(docs, v)
	}
	_, err := s.villas.InsertMany(ctx, docs)
	return err
}

func (s *MongoStore) ListVillas(ctx context.Context) ([]models.Villa, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}}).SetLimit(100)
	cursor, err := s.villas.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	villas := make([]models.Villa, 0)
	if err := cursor.All(ctx, &villas); err != nil {
		return nil, err
	}
	return villas, nil
}

func (s *MongoStore) FindVilla(ctx context.Context, id string) (*models.Villa, error) {
	var villa models.Villa
	if err := s.villas.FindOne(ctx, bson.M{"id": id}).Decode(&villa); err != nil {
		return nil, mongoNotFound(err, "villa "+id)
	}
	return &villa, nil
}

func (s *MongoStore) FindOverlappingBookings(ctx context.Context, villaID, checkIn, checkOut string) ([]models.Booking, error) {
	filter := bson.M{
		"villa_id":  villaID,
		"status":    bson.M{"$in": types.ActiveBookingStatuses},
		"check_in":  bson.M{"$lt": checkOut},
		"check_out": bson.M{"$gt": checkIn},
	}
	cursor, err := s.bookings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *MongoStore) InsertBooking(ctx context.Context, booking *models.Booking) error {
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}
	_, err := s.bookings.InsertOne(ctx, booking)
	return err
}

func (s *MongoStore) FindBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.bookings.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, mongoNotFound(err, "booking "+id)
	}
	return &booking, nil
}

func (s *MongoStore) SetBookingSession(ctx context.Context, bookingID, sessionID string) error {
	res, err := s.bookings.UpdateOne(ctx, bson.M{"id": bookingID}, bson.M{"$set": bson.M{"payment_session_id": sessionID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s: %w", bookingID, types.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) InsertTransaction(ctx context.Context, txn *models.PaymentTransaction) error {
	now := time.Now().UTC()
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = now
	}
	txn.UpdatedAt = now
	_, err := s.transactions.InsertOne(ctx, txn)
	return err
}

func (s *MongoStore) FindTransaction(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	var txn models.PaymentTransaction
	if err := s.transactions.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&txn); err != nil {
		return nil, mongoNotFound(err, "transaction "+sessionID)
	}
	return &txn, nil
}

// UpdateTransaction relies on the single-document atomicity of FindOneAndUpdate: only the caller
// that moves the transaction out of its guarded state gets a document back. The booking confirm is
// a second write; if it fails the transaction stays completed and ListUnconfirmedPaid picks it up.
func (s *MongoStore) UpdateTransaction(ctx context.Context, sessionID string, status types.TransactionStatus, paymentStatus types.PaymentStatus, confirm bool) (bool, bool, error) {
	filter := bson.M{
		"session_id": sessionID,
		"status":     types.TRANSACTION_INITIATED,
	}
	if confirm {
		filter["status"] = bson.M{"$ne": types.TRANSACTION_COMPLETED}
	}
	update := bson.M{"$set": bson.M{
		"status":         status,
		"payment_status": paymentStatus,
		"updated_at":     time.Now().UTC(),
	}}
	var prev models.PaymentTransaction
	err := s.transactions.FindOneAndUpdate(ctx, filter, update).Decode(&prev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	if !confirm {
		return true, false, nil
	}
	confirmed, err := s.ConfirmBooking(ctx, prev.BookingID)
	if err != nil {
		log.Printf("[mongo] Transaction %s completed but booking %s was not confirmed: %s\n", sessionID, prev.BookingID, err.Error())
		return true, false, err
	}
	return true, confirmed, nil
}

func (s *MongoStore) ConfirmBooking(ctx context.Context, bookingID string) (bool, error) {
	res, err := s.bookings.UpdateOne(ctx,
		bson.M{"id": bookingID, "status": types.BOOKING_PENDING},
		bson.M{"$set": bson.M{"status": types.BOOKING_CONFIRMED}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (s *MongoStore) ListUnconfirmedPaid(ctx context.Context, limit int) ([]models.PaymentTransaction, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":         types.TRANSACTION_COMPLETED,
			"payment_status": types.PAYMENT_PAID,
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         BOOKINGS_COLLECTION,
			"localField":   "booking_id",
			"foreignField": "id",
			"as":           "booking",
		}}},
		{{Key: "$match", Value: bson.M{"booking.status": types.BOOKING_PENDING}}},
		{{Key: "$sort", Value: bson.D{{Key: "updated_at", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{"booking": 0}}},
	}
	cursor, err := s.transactions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var txns []models.PaymentTransaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *MongoStore) ListStaleTransactions(ctx context.Context, olderThan time.Time, limit int) ([]models.PaymentTransaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}).SetLimit(int64(limit))
	cursor, err := s.transactions.Find(ctx, bson.M{
		"status":     types.TRANSACTION_INITIATED,
		"created_at": bson.M{"$lt": olderThan},
	}, opts)
	if err != nil {
		return nil, err
	}
	var txns []models.PaymentTransaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *MongoStore) InsertContact(ctx context.Context, contact *models.ContactSubmission) error {
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now().UTC()
	}
	_, err := s.contacts.InsertOne(ctx, contact)
	return err
}
