package submissions

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Backend-Reward-Pipeline/src/models"
)

var (
	// ErrDuplicateResponse means the responseId was already stored: the
	// unique index absorbed a webhook redelivery.
	ErrDuplicateResponse = errors.New("response already stored")
	ErrNotFound          = errors.New("submission not found")
)

// Service wraps the submission collection. All mutations refresh updatedAt.
type Service struct {
	coll *mongo.Collection
}

func NewService(coll *mongo.Collection) *Service {
	return &Service{coll: coll}
}

// Insert stores a classified submission. The caller decides classification
// before this point; Insert never re-classifies.
func (s *Service) Insert(ctx context.Context, sub *models.Submission) (*models.Submission, error) {
	sub.ID = primitive.NewObjectID()
	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	_, err := s.coll.InsertOne(ctx, sub)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateResponse
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[submissions] inserted id=%s responseId=%s classification=%s",
		sub.ID.Hex(), sub.ResponseID, sub.Classification)
	return sub, nil
}

// ExistsByEmail reports whether any prior row carries the email. Emails are
// stored lower-cased and the probe is lower-cased too, which makes the match
// case-insensitive and exact.
func (s *Service) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	err := s.coll.FindOne(ctx, bson.M{"email": email},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	var sub models.Submission
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// AttachReward records the minted promo code on the row. emailSent reflects
// whether the reward email went out; the code is recorded either way so an
// operator can resend.
func (s *Service) AttachReward(ctx context.Context, id primitive.ObjectID, code string, emailSent bool) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"promoCode": code,
			"emailSent": emailSent,
			"emailKind": models.EmailKindReward,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkNotified flips the notification flag after a send.
func (s *Service) MarkNotified(ctx context.Context, id primitive.ObjectID, kind string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"emailSent": true,
			"emailKind": kind,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns a page of submissions for the operator console.
func (s *Service) List(ctx context.Context, params models.PaginationParams) ([]models.Submission, int64, error) {
	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	sort := bson.D{}
	for field, order := range params.GetSortOrder() {
		sort = append(sort, bson.E{Key: field, Value: order})
	}

	findOpts := options.Find().
		SetSort(sort).
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit))

	cursor, err := s.coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	subs := []models.Submission{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}
