package notification

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/meridianadvisory/api-portal/pkg/logger"
)

// Mailer posts templated transactional emails to the provider API.
// Sends are fire-and-forget: a failure is logged, never surfaced.
type Mailer struct {
	providerURL string
	apiKey      string
	from        string
	client      *http.Client
	log         *logger.Logger
}

func NewMailer(providerURL, apiKey, from string, log *logger.Logger) *Mailer {
	return &Mailer{
		providerURL: providerURL,
		apiKey:      apiKey,
		from:        from,
		client:      &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

type message struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data,omitempty"`
}

// Send delivers one templated message to the recipient.
func (m *Mailer) Send(to, template string, data map[string]string) {
	if m.providerURL == "" {
		m.log.Debug().Str("template", template).Msg("mail provider not configured, skipping send")
		return
	}

	body, _ := json.Marshal(message{From: m.from, To: to, Template: template, Data: data})
	req, err := http.NewRequest(http.MethodPost, m.providerURL, bytes.NewBuffer(body))
	if err != nil {
		m.log.Error().Err(err).Msg("mail request build failed")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		m.log.Error().Err(err).Str("template", template).Msg("mail send failed")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		m.log.Error().Int("status", resp.StatusCode).Str("template", template).Msg("mail provider rejected message")
	}
}
