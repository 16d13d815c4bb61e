package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hxlane/rental_go_server/config"
)

const defaultMessengerAPIBase = "https://graph.facebook.com/v18.0"

// MessengerSender 通过 Facebook Send API 发送文本消息
type MessengerSender struct {
	cfg    *config.MessengerConfig
	client *http.Client
}

func NewMessengerSender(cfg *config.MessengerConfig) *MessengerSender {
	return &MessengerSender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type messengerSendRequest struct {
	Recipient     messengerRecipient `json:"recipient"`
	Message       messengerText      `json:"message"`
	MessagingType string             `json:"messaging_type"`
	AccessToken   string             `json:"access_token"`
}

type messengerRecipient struct {
	ID string `json:"id"`
}

type messengerText struct {
	Text string `json:"text"`
}

// Send 发送消息，dest 为用户 PSID
func (s *MessengerSender) Send(ctx context.Context, dest, subject, message string) error {
	apiBase := s.cfg.APIBase
	if apiBase == "" {
		apiBase = defaultMessengerAPIBase
	}
	url := apiBase + "/me/messages"

	payload := messengerSendRequest{
		Recipient:     messengerRecipient{ID: dest},
		Message:       messengerText{Text: message},
		MessagingType: "UPDATE",
		AccessToken:   s.cfg.PageToken,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal messenger payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build messenger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("messenger request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("messenger api returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
