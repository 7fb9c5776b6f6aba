package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const solapiEndpoint = "https://api.solapi.com/messages/v4/send"

// SolapiSender sends SMS through Solapi's REST API. Requests are signed with
// HMAC-SHA256 over date+salt.
type SolapiSender struct {
	apiKey    string
	apiSecret string
	from      string
	endpoint  string
	client    *http.Client
	now       func() time.Time
}

var _ SMSSender = (*SolapiSender)(nil)

func NewSolapiSender(apiKey, apiSecret, from string, client *http.Client) *SolapiSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &SolapiSender{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		from:      from,
		endpoint:  solapiEndpoint,
		client:    client,
		now:       time.Now,
	}
}

func (s *SolapiSender) authorization() (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	saltHex := hex.EncodeToString(salt)
	date := s.now().UTC().Format(time.RFC3339)

	mac := hmac.New(sha256.New, []byte(s.apiSecret))
	mac.Write([]byte(date + saltHex))
	signature := hex.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf("HMAC-SHA256 apiKey=%s, date=%s, salt=%s, signature=%s",
		s.apiKey, date, saltHex, signature), nil
}

func (s *SolapiSender) SendSMS(ctx context.Context, to, text string) error {
	to = digitsOnly(to)
	if to == "" {
		return fmt.Errorf("sms recipient has no digits")
	}

	body, err := json.Marshal(map[string]any{
		"message": map[string]string{
			"to":   to,
			"from": digitsOnly(s.from),
			"text": text,
		},
	})
	if err != nil {
		return err
	}

	auth, err := s.authorization()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("solapi: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
