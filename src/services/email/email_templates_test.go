package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRewardEmail(t *testing.T) {
	html, text, err := RenderRewardEmail(RewardEmailData{
		Code:    "TEST-ABC234",
		ShopURL: "https://shop.example.com",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "TEST-ABC234")
	assert.Contains(t, html, "https://shop.example.com")
	assert.Contains(t, text, "TEST-ABC234")
	assert.Contains(t, text, "https://shop.example.com")
}

func TestRenderRewardEmailWithoutShopURL(t *testing.T) {
	html, text, err := RenderRewardEmail(RewardEmailData{Code: "TEST-XYZ789"})
	require.NoError(t, err)

	assert.Contains(t, html, "TEST-XYZ789")
	assert.NotContains(t, html, "Go to the shop")
	assert.NotContains(t, text, "Shop:")
}

func TestRenderRewardEmailEscapesCode(t *testing.T) {
	html, _, err := RenderRewardEmail(RewardEmailData{Code: `<script>"x"</script>`})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderAbuseEmail(t *testing.T) {
	html, text := RenderAbuseEmail()

	assert.Contains(t, html, "quality check")
	assert.Contains(t, text, "quality check")
	// the rejection notice is static; it must never leak a code placeholder
	assert.NotContains(t, html, "{{")
}
