package email

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

type RewardEmailData struct {
	Code    string
	ShopURL string
}

//go:embed email_reward.html
var rewardEmailHTML string

//go:embed email_abuse.html
var abuseEmailHTML string

var rewardEmailTmpl = template.Must(template.New("reward").Parse(rewardEmailHTML))

const (
	rewardSubject = "Your discount code is here 🎉"
	abuseSubject  = "About your survey response"
)

func RenderRewardEmail(data RewardEmailData) (html, text string, err error) {
	var buf bytes.Buffer
	if err := rewardEmailTmpl.Execute(&buf, data); err != nil {
		return "", "", err
	}

	text = fmt.Sprintf(
		"Thank you for your feedback!\n\n"+
			"As a thank-you, here is a one-time discount code: %s\n\n"+
			"How to redeem it:\n"+
			"  1. Add anything you like to your cart.\n"+
			"  2. Paste the code into the promo field at checkout.\n"+
			"  3. The discount is applied before payment.\n\n"+
			"The code can be redeemed once and is tied to this email address.\n",
		data.Code)
	if data.ShopURL != "" {
		text += "\nShop: " + data.ShopURL + "\n"
	}

	return buf.String(), text, nil
}

func RenderAbuseEmail() (html, text string) {
	text = "Thanks for taking the time to fill in our survey.\n\n" +
		"Unfortunately your response did not pass our quality check - one of the questions " +
		"exists only to confirm the survey was read, and it was answered incorrectly.\n\n" +
		"Because of that we cannot issue a discount code for this response. If you believe " +
		"this is a mistake, just reply to this email and a human will take a look.\n"
	return abuseEmailHTML, text
}
