package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Classification outcomes. Duplicate and bot submissions are classified but
// never persisted, so only valid and attention_fail ever reach the store.
const (
	ClassificationValid         = "valid"
	ClassificationDuplicate     = "duplicate"
	ClassificationAttentionFail = "attention_fail"
	ClassificationBot           = "bot"
)

const (
	EmailKindReward = "reward"
	EmailKindAbuse  = "abuse"
)

type Submission struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	ResponseID     string             `bson:"responseId" json:"responseId"`
	Answers        []Answer           `bson:"answers,omitempty" json:"answers"`
	Classification string             `bson:"classification" json:"classification"`
	Reason         string             `bson:"reason,omitempty" json:"reason,omitempty"`
	PromoCode      string             `bson:"promoCode,omitempty" json:"promoCode,omitempty"`
	EmailSent      bool               `bson:"emailSent" json:"emailSent"`
	EmailKind      string             `bson:"emailKind,omitempty" json:"emailKind,omitempty"`
	ElapsedSeconds *float64           `bson:"elapsedSeconds,omitempty" json:"elapsedSeconds,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}
