package controllers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-Reward-Pipeline/src/models"
	"Backend-Reward-Pipeline/src/services/classify"
	"Backend-Reward-Pipeline/src/services/email"
	"Backend-Reward-Pipeline/src/services/submissions"
	"Backend-Reward-Pipeline/src/utils"
)

// SubmissionStore is what the handlers need from the persistence adapter.
type SubmissionStore interface {
	Insert(ctx context.Context, sub *models.Submission) (*models.Submission, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error)
	AttachReward(ctx context.Context, id primitive.ObjectID, code string, emailSent bool) error
	MarkNotified(ctx context.Context, id primitive.ObjectID, kind string) error
	List(ctx context.Context, params models.PaginationParams) ([]models.Submission, int64, error)
}

type RewardIssuer interface {
	IssueCode(ctx context.Context, email string) (string, error)
}

type Notifier interface {
	SendReward(to, code string) email.SendResult
	SendAbuse(to string) email.SendResult
}

var validate = validator.New()

// WebhookController hosts both ingress handlers. Queue may be nil; rejection
// emails are then sent inline instead of dispatched to the worker.
type WebhookController struct {
	Store    SubmissionStore
	Issuer   RewardIssuer
	Notifier Notifier
	Cfg      classify.Config
	Queue    *asynq.Client
}

func NewWebhookController(store SubmissionStore, issuer RewardIssuer, notifier Notifier, cfg classify.Config, queue *asynq.Client) *WebhookController {
	return &WebhookController{Store: store, Issuer: issuer, Notifier: notifier, Cfg: cfg, Queue: queue}
}

// --------- Ingress A: form-provider webhook ---------

// HandleFormWebhook normalizes the form payload, classifies it
// and persists/notifies per outcome. The response is 200 for every
// classification so the form provider does not retry benign outcomes; only
// parse and persistence failures surface as errors.
func (h *WebhookController) HandleFormWebhook(c *fiber.Ctx) error {
	var in models.FormWebhookPayload
	if err := c.BodyParser(&in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid payload: "+err.Error())
	}
	if err := validate.Struct(in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid payload: "+err.Error())
	}

	answers := models.NormalizeAnswers(in.Data.Fields)

	respondent, ok := classify.ExtractEmail(answers)
	if !ok {
		return utils.HandleError(c, fiber.StatusBadRequest, "no email field in submission")
	}

	sub := &models.Submission{
		Email:          respondent,
		ResponseID:     in.Data.ResponseID,
		Answers:        answers,
		ElapsedSeconds: elapsedSeconds(in.Data, answers, h.Cfg),
	}

	dup, err := h.Store.ExistsByEmail(c.Context(), respondent)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "duplicate lookup failed: "+err.Error())
	}

	result := classify.Classify(sub, h.Cfg, dup)
	sub.Classification = result.Outcome
	sub.Reason = result.Reason

	log.Printf("[webhook] form event=%s response=%s email=%s classification=%s",
		in.EventID, in.Data.ResponseID, respondent, result.Outcome)

	switch result.Outcome {
	case models.ClassificationValid:
		if err := h.persist(c.Context(), sub); err != nil {
			return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
		}

	case models.ClassificationAttentionFail:
		if err := h.persist(c.Context(), sub); err != nil {
			return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
		}
		if !sub.ID.IsZero() {
			h.dispatchAbuseEmail(c.Context(), sub)
		}

	default:
		// duplicate and bot submissions are dropped silently
	}

	return c.JSON(fiber.Map{"success": true, "classification": result.Outcome})
}

// persist inserts the row; a duplicate responseId means the provider
// redelivered an already-stored submission and counts as success. The zero ID
// on sub signals that nothing new was stored.
func (h *WebhookController) persist(ctx context.Context, sub *models.Submission) error {
	_, err := h.Store.Insert(ctx, sub)
	if errors.Is(err, submissions.ErrDuplicateResponse) {
		log.Printf("[webhook] response %s already stored, redelivery ignored", sub.ResponseID)
		sub.ID = primitive.ObjectID{}
		return nil
	}
	return err
}

func (h *WebhookController) dispatchAbuseEmail(ctx context.Context, sub *models.Submission) {
	if h.Queue != nil {
		task, err := email.NewSendAbuseTask(sub.Email, sub.ID.Hex())
		if err == nil {
			if _, err = h.Queue.Enqueue(task); err == nil {
				return
			}
		}
		log.Printf("⚠️ [webhook] abuse email enqueue failed, sending inline: %v", err)
	}

	res := h.Notifier.SendAbuse(sub.Email)
	if !res.Success {
		log.Printf("⚠️ [webhook] rejection email failed for %s: %v", sub.Email, res.Err)
		return
	}
	if err := h.Store.MarkNotified(ctx, sub.ID, models.EmailKindAbuse); err != nil {
		log.Printf("⚠️ [webhook] failed to mark rejection notified id=%s: %v", sub.ID.Hex(), err)
	}
}

// elapsedSeconds derives how long the respondent spent on the form, when the
// form embeds its load time in a configured hidden field (unix milliseconds).
func elapsedSeconds(data models.FormWebhookData, answers []models.Answer, cfg classify.Config) *float64 {
	if cfg.TimingFieldKey == "" || data.CreatedAt.IsZero() {
		return nil
	}
	raw, ok := classify.AnswerText(answers, cfg.TimingFieldKey)
	if !ok {
		return nil
	}
	loadedAt, err := parseUnixMillis(raw)
	if err != nil {
		return nil
	}
	elapsed := data.CreatedAt.Sub(loadedAt).Seconds()
	if elapsed < 0 {
		return nil
	}
	return &elapsed
}

func parseUnixMillis(raw string) (time.Time, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

// --------- Ingress B: store-insert webhook ---------

// HandleInsertWebhook reacts to submission-insert events: valid rows get a
// promotion code minted and mailed, then attached to the row. Everything
// else — other tables, other event types, non-valid rows, already-processed
// rows — is acknowledged and ignored.
func (h *WebhookController) HandleInsertWebhook(c *fiber.Ctx) error {
	var in models.InsertEventPayload
	if err := c.BodyParser(&in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid payload: "+err.Error())
	}
	if err := validate.Struct(in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid payload: "+err.Error())
	}

	if !strings.EqualFold(in.Type, "INSERT") || in.Table != "submissions" {
		return c.JSON(fiber.Map{"success": true, "message": "ignored: not a submission insert"})
	}

	oid, err := primitive.ObjectIDFromHex(in.Record.ID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "invalid record id")
	}

	// The event copy of the row may be stale; the stored row is authoritative.
	row, err := h.Store.GetByID(c.Context(), oid)
	if errors.Is(err, submissions.ErrNotFound) {
		return c.JSON(fiber.Map{"success": true, "message": "ignored: row not found"})
	}
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}

	if row.Classification != models.ClassificationValid {
		return c.JSON(fiber.Map{"success": true, "message": "ignored: classification " + row.Classification})
	}
	if row.PromoCode != "" || row.EmailSent {
		// redelivery of an already-processed insert event
		return c.JSON(fiber.Map{"success": true, "message": "ignored: already processed"})
	}

	code, err := h.Issuer.IssueCode(c.Context(), row.Email)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "reward issuance failed: "+err.Error())
	}

	sendRes := h.Notifier.SendReward(row.Email, code)
	if !sendRes.Success {
		log.Printf("⚠️ [webhook] reward email failed for %s: %v", row.Email, sendRes.Err)
	}

	// The code is recorded even when the send failed so an operator can
	// resend without minting a second code.
	if err := h.Store.AttachReward(c.Context(), row.ID, code, sendRes.Success); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "failed to update row: "+err.Error())
	}

	return c.JSON(fiber.Map{"success": true, "promoCode": code, "emailSent": sendRes.Success})
}

// Health returns the liveness probe handler shared by both webhook paths.
func Health(endpoint string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"endpoint":  endpoint,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
