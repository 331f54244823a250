package whatsapp

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Client sends WhatsApp messages through the Twilio Messages API.
type Client struct {
	AccountSID string
	AuthToken  string
	From       string
	BaseURL    string
	HTTPClient *http.Client
}

type SendMessageResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

var nonDigits = regexp.MustCompile(`\D`)

func NewClient(accountSID, authToken, from string) *Client {
	return &Client{
		AccountSID: accountSID,
		AuthToken:  authToken,
		From:       from,
		BaseURL:    "https://api.twilio.com/2010-04-01",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether Twilio credentials are present.
func (c *Client) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != ""
}

// Convert a local number to whatsapp:+55... format.
func (c *Client) formatPhone(phone string) string {
	clean := nonDigits.ReplaceAllString(phone, "")
	if strings.HasPrefix(clean, "55") {
		return "whatsapp:+" + clean
	}
	return "whatsapp:+55" + clean
}

// SendMessage sends a text message to the given phone number.
func (c *Client) SendMessage(phone, message string) (*SendMessageResponse, error) {
	form := url.Values{}
	form.Set("From", c.From)
	form.Set("To", c.formatPhone(phone))
	form.Set("Body", message)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.BaseURL, c.AccountSID)
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.AccountSID, c.AuthToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var response SendMessageResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &response, fmt.Errorf("twilio returned %d: %s", resp.StatusCode, response.ErrorMessage)
	}

	return &response, nil
}
