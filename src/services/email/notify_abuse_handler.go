package email

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-Reward-Pipeline/src/models"
	"Backend-Reward-Pipeline/src/services/submissions"
)

// HandleSendAbuseTask sends the rejection notice and flips the row's
// notification flag. Send failures are logged, never requeued: the row is
// already durably stored and an operator can resend.
func HandleSendAbuseTask(svc *Service, store *submissions.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p SendAbusePayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Println("❌ [email] abuse payload decode error:", err)
			return err
		}

		res := svc.SendAbuse(p.Email)
		if !res.Success {
			return nil
		}

		oid, err := primitive.ObjectIDFromHex(p.SubmissionID)
		if err != nil {
			log.Printf("⚠️ [email] bad submission id in abuse task: %q", p.SubmissionID)
			return nil
		}
		if err := store.MarkNotified(ctx, oid, models.EmailKindAbuse); err != nil {
			log.Printf("⚠️ [email] failed to mark abuse notification id=%s: %v", p.SubmissionID, err)
		}
		return nil
	}
}
