package models

import "time"

// --------- Form-provider webhook (ingress A) ---------

type FieldOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type FormField struct {
	Key     string        `json:"key"`
	Label   string        `json:"label"`
	Type    string        `json:"type"`
	Value   any           `json:"value"`
	Options []FieldOption `json:"options,omitempty"`
}

type FormWebhookData struct {
	ResponseID   string      `json:"responseId" validate:"required"`
	RespondentID string      `json:"respondentId,omitempty"`
	FormID       string      `json:"formId"`
	FormName     string      `json:"formName"`
	CreatedAt    time.Time   `json:"createdAt"`
	Fields       []FormField `json:"fields" validate:"required"`
}

type FormWebhookPayload struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	CreatedAt time.Time       `json:"createdAt"`
	Data      FormWebhookData `json:"data" validate:"required"`
}

// --------- Store-insert webhook (ingress B) ---------

// SubmissionRecord is the store's snake_case projection of a row as delivered
// by the insert trigger. The handler treats it as a pointer only: the row is
// re-read from the store before anything is decided.
type SubmissionRecord struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Classification string  `json:"classification"`
	PromoCode      *string `json:"promo_code,omitempty"`
	EmailSent      bool    `json:"email_sent"`
}

type InsertEventPayload struct {
	Type      string            `json:"type" validate:"required"`
	Table     string            `json:"table" validate:"required"`
	Schema    string            `json:"schema"`
	Record    SubmissionRecord  `json:"record"`
	OldRecord *SubmissionRecord `json:"old_record,omitempty"`
}
