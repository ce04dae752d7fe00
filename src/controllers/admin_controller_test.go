package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"Backend-Reward-Pipeline/src/controllers"
	"Backend-Reward-Pipeline/src/models"
	"Backend-Reward-Pipeline/src/routes"
	"Backend-Reward-Pipeline/src/utils"
)

func newAdminApp(t *testing.T, store *fakeStore, notifier *fakeNotifier) (*fiber.App, string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	app := fiber.New()
	routes.AdminRoutes(app, controllers.NewAdminController(store, notifier))

	token, err := utils.GenerateJWT("ops@example.com", "admin")
	require.NoError(t, err)
	return app, token
}

func adminRequest(t *testing.T, app *fiber.App, method, path, token string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return res.StatusCode, out
}

func TestAdminRoutesRequireToken(t *testing.T) {
	app, _ := newAdminApp(t, newFakeStore(), &fakeNotifier{})

	status, _ := adminRequest(t, app, http.MethodGet, "/admin/submissions", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = adminRequest(t, app, http.MethodGet, "/admin/submissions", "bogus-token")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminListSubmissions(t *testing.T) {
	store := newFakeStore()
	storedRow(store, "a@x.com", models.ClassificationValid)
	storedRow(store, "b@x.com", models.ClassificationAttentionFail)

	app, token := newAdminApp(t, store, &fakeNotifier{})

	status, body := adminRequest(t, app, http.MethodGet, "/admin/submissions?page=1&limit=10", token)

	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["total"])
	assert.EqualValues(t, 1, body["page"])
	data, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 2)
}

func TestAdminResendReward(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}

	row := storedRow(store, "a@x.com", models.ClassificationValid)
	row.PromoCode = "SURVEY-ABC234"
	row.EmailSent = false // first send failed, operator retries

	app, token := newAdminApp(t, store, notifier)

	status, body := adminRequest(t, app, http.MethodPost, "/admin/submissions/"+row.ID.Hex()+"/resend", token)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.EmailKindReward, body["kind"])
	assert.Equal(t, []string{"a@x.com:SURVEY-ABC234"}, notifier.rewards)
	assert.True(t, row.EmailSent)
}

func TestAdminResendRewardWithoutCodeConflicts(t *testing.T) {
	store := newFakeStore()
	row := storedRow(store, "b@x.com", models.ClassificationValid)

	app, token := newAdminApp(t, store, &fakeNotifier{})

	status, _ := adminRequest(t, app, http.MethodPost, "/admin/submissions/"+row.ID.Hex()+"/resend", token)

	assert.Equal(t, http.StatusConflict, status)
}

func TestAdminResendAbuse(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	row := storedRow(store, "c@x.com", models.ClassificationAttentionFail)

	app, token := newAdminApp(t, store, notifier)

	status, body := adminRequest(t, app, http.MethodPost, "/admin/submissions/"+row.ID.Hex()+"/resend", token)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.EmailKindAbuse, body["kind"])
	assert.Equal(t, []string{"c@x.com"}, notifier.abuses)
}

func TestAdminResendUnknownRow(t *testing.T) {
	app, token := newAdminApp(t, newFakeStore(), &fakeNotifier{})

	status, _ := adminRequest(t, app, http.MethodPost, "/admin/submissions/"+primitive.NewObjectID().Hex()+"/resend", token)

	assert.Equal(t, http.StatusNotFound, status)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Setenv("ADMIN_EMAIL", "ops@example.com")
	t.Setenv("ADMIN_PASSWORD_HASH", string(hash))
	t.Setenv("JWT_SECRET", "test-secret")

	app := fiber.New()
	routes.AuthRoutes(app)

	login := func(email, password string) (int, map[string]any) {
		body, _ := json.Marshal(map[string]string{"email": email, "password": password})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		res, err := app.Test(req, -1)
		require.NoError(t, err)
		defer res.Body.Close()

		raw, _ := io.ReadAll(res.Body)
		out := map[string]any{}
		require.NoError(t, json.Unmarshal(raw, &out))
		return res.StatusCode, out
	}

	t.Run("ValidCredentials", func(t *testing.T) {
		status, body := login("ops@example.com", "hunter2")
		require.Equal(t, http.StatusOK, status)

		token, _ := body["token"].(string)
		require.NotEmpty(t, token)

		claims, err := utils.ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		status, _ := login("ops@example.com", "wrong")
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		status, _ := login("intruder@example.com", "hunter2")
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
