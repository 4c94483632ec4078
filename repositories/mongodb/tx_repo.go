package mongodb

import (
	// Go Internal Packages
	"context"
	"time"

	// Local Packages
	errors "momo-ledger/errors"
	models "momo-ledger/models"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 5 * time.Second

type TxRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

func NewTxRepository(client *mongo.Client, database string) *TxRepository {
	return &TxRepository{client: client, database: database, collection: "transactions"}
}

func (r *TxRepository) txs() *mongo.Collection {
	return r.client.Database(r.database).Collection(r.collection)
}

// filterFor translates a query into a mongo filter. CreatedAt is RFC3339 in
// UTC, so the recency bound is a plain string comparison.
func filterFor(q models.Query) bson.M {
	filter := bson.M{}
	if q.UserID != "" {
		filter["user_id"] = q.UserID
	}
	if q.Type != "" {
		filter["transaction_type"] = string(q.Type)
	}
	if q.RecentDays > 0 {
		cutoff := time.Now().UTC().Add(-time.Duration(q.RecentDays) * 24 * time.Hour)
		filter["created_at"] = bson.M{"$gte": cutoff.Format(time.RFC3339)}
	}
	return filter
}

// Fetch returns rows matching the query, newest first.
func (r *TxRepository) Fetch(ctx context.Context, q models.Query) ([]models.RemoteRow, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.txs().Find(ctx, filterFor(q), opts)
	if err != nil {
		return nil, errors.RemoteErr("fetch", err)
	}
	defer cursor.Close(ctx)

	var rows []models.RemoteRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, errors.RemoteErr("fetch", err)
	}
	return rows, nil
}

// FetchAllWithProfiles is the admin read: rows across all users (or one,
// when the query names an owner) joined with the owner's profile fields.
func (r *TxRepository) FetchAllWithProfiles(ctx context.Context, q models.Query) ([]models.AdminRow, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filterFor(q)}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "profile"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$profile"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := r.txs().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.RemoteErr("admin fetch", err)
	}
	defer cursor.Close(ctx)

	var rows []models.AdminRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, errors.RemoteErr("admin fetch", err)
	}
	return rows, nil
}

// Insert stores a new row and returns its assigned id.
func (r *TxRepository) Insert(ctx context.Context, row models.RemoteRow) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if row.ID == "" {
		row.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.txs().InsertOne(ctx, row); err != nil {
		return "", errors.RemoteErr("insert", err)
	}
	return row.ID, nil
}

// Update applies the non-nil patch fields to one row.
func (r *TxRepository) Update(ctx context.Context, id string, patch models.TxPatch) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if patch.IsEmpty() {
		return errors.EmptyParamErr("patch")
	}

	set := bson.M{}
	if patch.Amount != nil {
		set["amount"] = *patch.Amount
	}
	if patch.Recipient != nil {
		set["recipient"] = *patch.Recipient
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	res, err := r.txs().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return errors.RemoteErr("update", err)
	}
	if res.MatchedCount == 0 {
		return errors.E(errors.NotFound, "transaction not found", nil)
	}
	return nil
}

// Delete removes one row.
func (r *TxRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.txs().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.RemoteErr("delete", err)
	}
	if res.DeletedCount == 0 {
		return errors.E(errors.NotFound, "transaction not found", nil)
	}
	return nil
}

// EnsureIndexes creates the indexes the fetch paths rely on.
func (r *TxRepository) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "transaction_type", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.txs().Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return errors.RemoteErr("ensure indexes", err)
	}
	return nil
}
