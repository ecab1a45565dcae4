package cartera

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
)

// TelegramNotifier delivers update summaries through a Telegram bot.
type TelegramNotifier struct {
	Token   string
	ChatID  string
	BaseURL string // overridable for tests

	Client *http.Client
}

// NewTelegramNotifier reads the bot credentials from the CARTERA_BOT_TOKEN
// and CARTERA_BOT_CHATID environment variables.
func NewTelegramNotifier() (*TelegramNotifier, error) {
	token, chatID := os.Getenv("CARTERA_BOT_TOKEN"), os.Getenv("CARTERA_BOT_CHATID")
	if token == "" || chatID == "" {
		return nil, fmt.Errorf("telegram: CARTERA_BOT_TOKEN and CARTERA_BOT_CHATID must be set")
	}
	return &TelegramNotifier{
		Token:   token,
		ChatID:  chatID,
		BaseURL: "https://api.telegram.org",
		Client:  http.DefaultClient,
	}, nil
}

// Notify sends the message to the configured chat.
func (t *TelegramNotifier) Notify(message string) error {
	addr := fmt.Sprintf("%s/bot%s/sendMessage?chat_id=%s&text=%s",
		t.BaseURL, t.Token, url.QueryEscape(t.ChatID), url.QueryEscape(message))
	resp, err := t.Client.Get(addr)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram: sendMessage returned %s", resp.Status)
	}
	return nil
}
