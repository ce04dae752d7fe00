package email

import (
	"log"
	"os"
)

// SendResult reports a send without throwing: failures land in Err and the
// caller decides whether they are fatal.
type SendResult struct {
	Success bool
	Err     error
}

// Service renders the two notification templates and submits them through the
// configured sender.
type Service struct {
	sender  MailSender
	shopURL string
}

func NewService(sender MailSender) *Service {
	return &Service{
		sender:  sender,
		shopURL: os.Getenv("SHOP_URL"),
	}
}

func (s *Service) SendReward(to, code string) SendResult {
	html, text, err := RenderRewardEmail(RewardEmailData{Code: code, ShopURL: s.shopURL})
	if err != nil {
		return SendResult{Err: err}
	}
	if err := s.sender.Send(to, rewardSubject, html, text); err != nil {
		log.Printf("⚠️ [email] reward send failed to=%s: %v", to, err)
		return SendResult{Err: err}
	}
	log.Printf("[email] reward sent to=%s", to)
	return SendResult{Success: true}
}

func (s *Service) SendAbuse(to string) SendResult {
	html, text := RenderAbuseEmail()
	if err := s.sender.Send(to, abuseSubject, html, text); err != nil {
		log.Printf("⚠️ [email] rejection send failed to=%s: %v", to, err)
		return SendResult{Err: err}
	}
	log.Printf("[email] rejection sent to=%s", to)
	return SendResult{Success: true}
}
