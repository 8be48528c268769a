package email

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const sendTimeout = 10 * time.Second

// MailgunSender sends HTML messages through the Mailgun HTTP API.
type MailgunSender struct {
	baseURL string
	apiKey  string
	from    string
	client  *http.Client
}

func NewMailgunSender(baseURL, apiKey, from string) *MailgunSender {
	return &MailgunSender{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		from:    from,
		client:  &http.Client{Timeout: sendTimeout},
	}
}

func (s *MailgunSender) Send(ctx context.Context, recipient, code string) error {
	form := url.Values{}
	form.Set("from", s.from)
	form.Set("to", recipient)
	form.Set("subject", "Your login code")
	form.Set("text", "Your permanent login code: "+code)
	form.Set("html", messageHTML(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/messages", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("mailgun request error: %w", err)
	}
	req.SetBasicAuth("api", s.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailgun send error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mailgun send failed: status %d", resp.StatusCode)
	}

	return nil
}

func messageHTML(code string) string {
	return fmt.Sprintf(`
<div style="font-family: Helvetica,Arial,sans-serif;line-height:2">
  <div style="margin:50px auto;width:70%%;padding:20px 0">
    <div style="border-bottom:1px solid #eee">
      <span style="font-size:1.4em;color:#00466a;font-weight:600">Papper</span>
    </div>
    <p>Thank you for choosing Papper. Your permanent login code:</p>
    <h2 style="background:#00466a;margin:0 auto;width:max-content;padding:0 10px;color:#fff;border-radius:4px;">%s</h2>
    <p style="font-size:0.9em;">Regards,<br />the Papper team</p>
  </div>
</div>`, code)
}
