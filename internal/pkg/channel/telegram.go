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

const defaultTelegramAPIBase = "https://api.telegram.org"

// TelegramSender 通过 Bot API 发送文本消息
type TelegramSender struct {
	cfg    *config.TelegramConfig
	client *http.Client
}

func NewTelegramSender(cfg *config.TelegramConfig) *TelegramSender {
	return &TelegramSender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send 发送消息，dest 为 chat_id。subject 不单独展示，拼入正文
func (s *TelegramSender) Send(ctx context.Context, dest, subject, message string) error {
	apiBase := s.cfg.APIBase
	if apiBase == "" {
		apiBase = defaultTelegramAPIBase
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", apiBase, s.cfg.BotToken)

	payload := map[string]string{
		"chat_id": dest,
		"text":    message,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram api returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
