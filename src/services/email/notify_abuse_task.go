package email

import (
	"encoding/json"
	"strings"

	"github.com/hibiken/asynq"
)

const TypeSendAbuse = "email:send-abuse"

type SendAbusePayload struct {
	Email        string `json:"email"`
	SubmissionID string `json:"submissionId"`
}

func (p *SendAbusePayload) Normalize() {
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.SubmissionID = strings.TrimSpace(p.SubmissionID)
}

// NewSendAbuseTask builds the rejection-notice task. MaxRetry is zero: the
// pipeline has no retry queue for downstream failures, the queue is only a
// dispatch hand-off out of the webhook request.
func NewSendAbuseTask(email, submissionID string) (*asynq.Task, error) {
	payload := SendAbusePayload{
		Email:        email,
		SubmissionID: submissionID,
	}
	payload.Normalize()

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendAbuse, b, asynq.MaxRetry(0)), nil
}
