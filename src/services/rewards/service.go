package rewards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"Backend-Reward-Pipeline/src/utils"
)

// errCodeTaken is the provider's code-collision failure; IssueCode retries
// once with a longer suffix before giving up.
var errCodeTaken = errors.New("promotion code already exists")

// Issuer mints single-redemption promotion codes against the payment
// provider's promotion-code API.
type Issuer struct {
	baseURL   string
	secretKey string
	couponID  string
	prefix    string
	client    *http.Client
}

func NewIssuerFromEnv() (*Issuer, error) {
	secretKey := os.Getenv("PAYMENT_SECRET_KEY")
	couponID := os.Getenv("PAYMENT_COUPON_ID")

	missing := []string{}
	if secretKey == "" {
		missing = append(missing, "PAYMENT_SECRET_KEY")
	}
	if couponID == "" {
		missing = append(missing, "PAYMENT_COUPON_ID")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing payment env: %s", strings.Join(missing, ", "))
	}

	baseURL := os.Getenv("PAYMENT_API_BASE")
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	prefix := os.Getenv("PROMO_CODE_PREFIX")
	if prefix == "" {
		prefix = "SURVEY"
	}

	return &Issuer{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		couponID:  couponID,
		prefix:    prefix,
		client:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// IssueCode registers prefix-XXXXXX as a one-time promotion code bound to the
// configured coupon, tagged with the respondent email. A code collision is
// retried exactly once with a longer suffix; any other failure propagates.
func (i *Issuer) IssueCode(ctx context.Context, email string) (string, error) {
	code := i.prefix + "-" + utils.RandomCode(6)
	err := i.register(ctx, code, email)
	if errors.Is(err, errCodeTaken) {
		log.Printf("⚠️ [rewards] code collision on %s, retrying with longer suffix", code)
		code = i.prefix + "-" + utils.RandomCode(10)
		err = i.register(ctx, code, email)
	}
	if err != nil {
		return "", err
	}

	log.Printf("[rewards] issued code=%s email=%s", code, email)
	return code, nil
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (i *Issuer) register(ctx context.Context, code, email string) error {
	form := url.Values{}
	form.Set("coupon", i.couponID)
	form.Set("code", code)
	form.Set("max_redemptions", "1")
	form.Set("metadata[email]", email)
	form.Set("metadata[source]", "survey-reward")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		i.baseURL+"/v1/promotion_codes", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+i.secretKey)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	res, err := i.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	var apiErr apiError
	_ = json.Unmarshal(body, &apiErr)

	if apiErr.Error.Code == "resource_already_exists" ||
		strings.Contains(strings.ToLower(apiErr.Error.Message), "already exists") {
		return errCodeTaken
	}

	msg := apiErr.Error.Message
	if msg == "" {
		msg = res.Status
	}
	return fmt.Errorf("payment provider: %s", msg)
}
