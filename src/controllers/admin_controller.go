package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-Reward-Pipeline/src/models"
	"Backend-Reward-Pipeline/src/services/submissions"
	"Backend-Reward-Pipeline/src/utils"
)

// AdminController is the operator console: inspect stored submissions and
// resend a notification when a send failed the first time.
type AdminController struct {
	Store    SubmissionStore
	Notifier Notifier
}

func NewAdminController(store SubmissionStore, notifier Notifier) *AdminController {
	return &AdminController{Store: store, Notifier: notifier}
}

// GET /admin/submissions
func (a *AdminController) ListSubmissions(c *fiber.Ctx) error {
	params := models.DefaultPagination()
	params.Page, _ = strconv.Atoi(c.Query("page", strconv.Itoa(params.Page)))
	params.Limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(params.Limit)))
	params.SortBy = c.Query("sortBy", params.SortBy)
	params.Order = c.Query("order", params.Order)
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 10
	}

	subs, total, err := a.Store.List(c.Context(), params)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(models.NewPaginatedResponse(subs, total, params))
}

// POST /admin/submissions/:id/resend
//
// Re-sends the notification matching the row's classification. A valid row
// must already carry a promo code; resending never mints a second one.
func (a *AdminController) ResendNotification(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	row, err := a.Store.GetByID(c.Context(), id)
	if errors.Is(err, submissions.ErrNotFound) {
		return utils.HandleError(c, fiber.StatusNotFound, "Submission not found")
	}
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}

	var kind string
	switch row.Classification {
	case models.ClassificationValid:
		if row.PromoCode == "" {
			return utils.HandleError(c, fiber.StatusConflict, "no promo code issued for this row yet")
		}
		if res := a.Notifier.SendReward(row.Email, row.PromoCode); !res.Success {
			return utils.HandleError(c, fiber.StatusBadGateway, "send failed: "+res.Err.Error())
		}
		kind = models.EmailKindReward

	case models.ClassificationAttentionFail:
		if res := a.Notifier.SendAbuse(row.Email); !res.Success {
			return utils.HandleError(c, fiber.StatusBadGateway, "send failed: "+res.Err.Error())
		}
		kind = models.EmailKindAbuse

	default:
		return utils.HandleError(c, fiber.StatusConflict, "nothing to resend for classification "+row.Classification)
	}

	if err := a.Store.MarkNotified(c.Context(), row.ID, kind); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"success": true, "emailSent": true, "kind": kind})
}
