package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultSMSTimeout bounds one gateway call when no timeout is configured.
const DefaultSMSTimeout = 10 * time.Second

// SMS texts users who keep SMS notifications on and have a mobile number.
type SMS struct {
	lookup RecipientLookup
	client *resty.Client
	url    string
	apiKey string
	// Async hands the gateway call to a goroutine; failures are then only logged.
	Async bool
}

func NewSMS(lookup RecipientLookup, url, apiKey string, timeout time.Duration) *SMS {
	if timeout <= 0 {
		timeout = DefaultSMSTimeout
	}
	return &SMS{
		lookup: lookup,
		client: resty.New().SetTimeout(timeout),
		url:    url,
		apiKey: apiKey,
		Async:  true,
	}
}

func (s *SMS) Notify(ctx context.Context, userID uint, title, body, kind string) error {
	r, err := s.lookup(ctx, userID)
	if err != nil {
		return err
	}
	if !r.Settings.SMSNotifications || r.Mobile == "" {
		return nil
	}

	message := title + ": " + body
	if !s.Async {
		return s.send(ctx, userID, r.Mobile, message)
	}
	// the request that triggered the notification may finish before the gateway answers
	sendCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.send(sendCtx, userID, r.Mobile, message); err != nil {
			log.Printf("[NOTIFY] sms to user %d failed: %v", userID, err)
		}
	}()
	return nil
}

func (s *SMS) send(ctx context.Context, userID uint, mobile, message string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("authorization", s.apiKey).
		SetBody(map[string]string{
			"numbers": mobile,
			"message": message,
		}).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("sms to user %d: %w", userID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("sms to user %d: gateway status %d", userID, resp.StatusCode())
	}
	return nil
}
