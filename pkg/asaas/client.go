package asaas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the Asaas payment gateway REST API.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	CpfCnpj string `json:"cpfCnpj"`
}

type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	CpfCnpj string `json:"cpfCnpj"`
}

type CreditCard struct {
	HolderName  string `json:"holderName"`
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CCV         string `json:"ccv"`
}

type CreditCardHolderInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	CpfCnpj       string `json:"cpfCnpj"`
	PostalCode    string `json:"postalCode"`
	AddressNumber string `json:"addressNumber"`
}

type PaymentRequest struct {
	Customer             string                `json:"customer"`
	BillingType          string                `json:"billingType"`
	Value                float64               `json:"value"`
	DueDate              string                `json:"dueDate"`
	Description          string                `json:"description"`
	ExternalReference    string                `json:"externalReference"`
	CreditCard           *CreditCard           `json:"creditCard,omitempty"`
	CreditCardHolderInfo *CreditCardHolderInfo `json:"creditCardHolderInfo,omitempty"`
}

type Payment struct {
	ID                string  `json:"id"`
	Status            string  `json:"status"`
	BillingType       string  `json:"billingType"`
	Value             float64 `json:"value"`
	ExternalReference string  `json:"externalReference"`
}

type PixQRCode struct {
	EncodedImage string `json:"encodedImage"`
	Payload      string `json:"payload"`
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether an API key is present. Handlers degrade the
// payment endpoints when it is not.
func (c *Client) Configured() bool {
	return c.APIKey != ""
}

func (c *Client) CreateCustomer(req CustomerRequest) (*Customer, error) {
	var customer Customer
	if err := c.post("/customers", req, &customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &customer, nil
}

func (c *Client) CreatePixPayment(customerID string, amount float64, orderRef, description string) (*Payment, error) {
	req := PaymentRequest{
		Customer:          customerID,
		BillingType:       "PIX",
		Value:             amount,
		DueDate:           time.Now().Format("2006-01-02"),
		Description:       description,
		ExternalReference: orderRef,
	}

	var payment Payment
	if err := c.post("/payments", req, &payment); err != nil {
		return nil, fmt.Errorf("failed to create PIX payment: %w", err)
	}
	return &payment, nil
}

func (c *Client) CreateCardPayment(customerID string, amount float64, orderRef, description string, card CreditCard, holder CreditCardHolderInfo) (*Payment, error) {
	card.Number = strings.ReplaceAll(card.Number, " ", "")
	req := PaymentRequest{
		Customer:             customerID,
		BillingType:          "CREDIT_CARD",
		Value:                amount,
		DueDate:              time.Now().Format("2006-01-02"),
		Description:          description,
		ExternalReference:    orderRef,
		CreditCard:           &card,
		CreditCardHolderInfo: &holder,
	}

	var payment Payment
	if err := c.post("/payments", req, &payment); err != nil {
		return nil, fmt.Errorf("failed to create card payment: %w", err)
	}
	return &payment, nil
}

func (c *Client) GetPaymentStatus(paymentID string) (*Payment, error) {
	var payment Payment
	if err := c.get("/payments/"+paymentID, &payment); err != nil {
		return nil, fmt.Errorf("failed to get payment status: %w", err)
	}
	return &payment, nil
}

func (c *Client) GetPixQRCode(paymentID string) (*PixQRCode, error) {
	var qr PixQRCode
	if err := c.get("/payments/"+paymentID+"/pixQrCode", &qr); err != nil {
		return nil, fmt.Errorf("failed to get PIX QR code: %w", err)
	}
	return &qr, nil
}

func (c *Client) post(path string, body, dest interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequest("POST", c.BaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, dest)
}

func (c *Client) get(path string, dest interface{}) error {
	req, err := http.NewRequest("GET", c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, dest)
}

func (c *Client) do(req *http.Request, dest interface{}) error {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("asaas returned %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
