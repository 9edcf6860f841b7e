package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
)

const graphAPIBase = "https://graph.facebook.com/v20.0"

// WhatsAppSender delivers notifications through the Meta Graph API.
type WhatsAppSender struct {
	phoneID     string
	accessToken string
	client      *http.Client
}

func NewWhatsAppSender(phoneID, accessToken string) *WhatsAppSender {
	return &WhatsAppSender{
		phoneID:     phoneID,
		accessToken: accessToken,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts a text message to the destination handle.
func (s *WhatsAppSender) Send(ctx context.Context, n domain.Notification) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                n.Destination,
		"type":              "text",
		"text":              map[string]string{"body": n.Body},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("whatsapp payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", graphAPIBase, s.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp api error: status=%d body=%s", resp.StatusCode, detail)
	}
	return nil
}
