package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"cardapio_digital/internal/models"
	"cardapio_digital/internal/repository"
	"cardapio_digital/pkg/asaas"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrGatewayNotConfigured means no Asaas API key is present; payment
// endpoints answer 500 with a clear message instead of calling out.
var ErrGatewayNotConfigured = errors.New("payment gateway not configured")

// PaymentGateway is the slice of the Asaas client the service uses.
// *asaas.Client satisfies it.
type PaymentGateway interface {
	Configured() bool
	CreateCustomer(req asaas.CustomerRequest) (*asaas.Customer, error)
	CreatePixPayment(customerID string, amount float64, orderRef, description string) (*asaas.Payment, error)
	CreateCardPayment(customerID string, amount float64, orderRef, description string, card asaas.CreditCard, holder asaas.CreditCardHolderInfo) (*asaas.Payment, error)
	GetPixQRCode(paymentID string) (*asaas.PixQRCode, error)
	GetPaymentStatus(paymentID string) (*asaas.Payment, error)
}

type PixPaymentInput struct {
	OrderID       uint    `json:"order_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
}

type CardInput struct {
	Number string `json:"number" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Expiry string `json:"expiry" binding:"required"` // MM/YY
	CVV    string `json:"cvv" binding:"required"`
}

type CardPaymentInput struct {
	OrderID uint      `json:"order_id" binding:"required"`
	Amount  float64   `json:"amount" binding:"required"`
	Card    CardInput `json:"card_data" binding:"required"`
}

type PixCharge struct {
	PaymentID string    `json:"id"`
	OrderID   uint      `json:"order_id"`
	Amount    float64   `json:"amount"`
	PixCode   string    `json:"pix_code"`
	QRCode    string    `json:"qr_code"` // base64 PNG
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CardCharge struct {
	PaymentID string  `json:"id"`
	OrderID   uint    `json:"order_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"` // approved / declined
	CardLast4 string  `json:"card_last4"`
	Message   string  `json:"message"`
}

// WebhookEvent mirrors the Asaas payment-confirmation callback body.
type WebhookEvent struct {
	Event   string `json:"event" binding:"required"`
	Payment struct {
		ID                string `json:"id"`
		BillingType       string `json:"billingType"`
		ExternalReference string `json:"externalReference"`
	} `json:"payment" binding:"required"`
}

// WebhookOutcome tells the handler whether to emit payment-approved.
type WebhookOutcome struct {
	Approved  bool
	OrderID   uint
	PaymentID string
	Method    string
}

type PaymentService interface {
	CreatePixPayment(input PixPaymentInput) (*PixCharge, error)
	CreateCardPayment(input CardPaymentInput) (*CardCharge, error)
	GetPaymentStatus(paymentID uint) (*models.Payment, error)
	ListOrderPayments(orderID uint) ([]models.Payment, error)
	HandleWebhook(event WebhookEvent) (*WebhookOutcome, error)
}

type paymentService struct {
	gateway     PaymentGateway
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
}

func NewPaymentService(gateway PaymentGateway, paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository) PaymentService {
	return &paymentService{gateway: gateway, paymentRepo: paymentRepo, orderRepo: orderRepo}
}

func (s *paymentService) CreatePixPayment(input PixPaymentInput) (*PixCharge, error) {
	if !s.gateway.Configured() {
		return nil, ErrGatewayNotConfigured
	}

	name := input.CustomerName
	if name == "" {
		name = "Cliente Muzzajazz"
	}
	email := input.CustomerEmail
	if email == "" {
		email = "cliente@muzzajazz.com"
	}

	customer, err := s.gateway.CreateCustomer(asaas.CustomerRequest{
		Name:    name,
		Email:   email,
		CpfCnpj: testCpf,
	})
	if err != nil {
		return nil, err
	}

	orderRef := fmt.Sprintf("%d", input.OrderID)
	payment, err := s.gateway.CreatePixPayment(customer.ID, input.Amount, orderRef,
		fmt.Sprintf("Pedido Muzzajazz #%d", input.OrderID))
	if err != nil {
		return nil, err
	}

	qr, err := s.gateway.GetPixQRCode(payment.ID)
	if err != nil {
		return nil, err
	}

	encodedImage := qr.EncodedImage
	if encodedImage == "" && qr.Payload != "" {
		// Sandbox responses sometimes omit the image; render the payload
		// locally instead.
		if png, qrErr := qrcode.Encode(qr.Payload, qrcode.Medium, 256); qrErr == nil {
			encodedImage = base64.StdEncoding.EncodeToString(png)
		}
	}

	record := &models.Payment{
		OrderID:        input.OrderID,
		Amount:         input.Amount,
		Method:         string(models.PaymentPix),
		Status:         string(models.PaymentPending),
		AsaasPaymentID: payment.ID,
	}
	if err := s.paymentRepo.Create(record); err != nil {
		// The gateway charge exists either way; keep serving the QR code.
		log.Printf("Failed to persist PIX payment %s: %v", payment.ID, err)
	}

	return &PixCharge{
		PaymentID: payment.ID,
		OrderID:   input.OrderID,
		Amount:    input.Amount,
		PixCode:   qr.Payload,
		QRCode:    encodedImage,
		Status:    "pending",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}, nil
}

func (s *paymentService) CreateCardPayment(input CardPaymentInput) (*CardCharge, error) {
	if !s.gateway.Configured() {
		return nil, ErrGatewayNotConfigured
	}

	customer, err := s.gateway.CreateCustomer(asaas.CustomerRequest{
		Name:    input.Card.Name,
		Email:   "cliente@muzzajazz.com",
		CpfCnpj: testCpf,
	})
	if err != nil {
		return nil, err
	}

	expiryMonth, expiryYear := splitExpiry(input.Card.Expiry)
	orderRef := fmt.Sprintf("%d", input.OrderID)
	payment, err := s.gateway.CreateCardPayment(customer.ID, input.Amount, orderRef,
		fmt.Sprintf("Pedido Muzzajazz #%d", input.OrderID),
		asaas.CreditCard{
			HolderName:  input.Card.Name,
			Number:      input.Card.Number,
			ExpiryMonth: expiryMonth,
			ExpiryYear:  expiryYear,
			CCV:         input.Card.CVV,
		},
		asaas.CreditCardHolderInfo{
			Name:          input.Card.Name,
			Email:         "cliente@muzzajazz.com",
			CpfCnpj:       testCpf,
			PostalCode:    "72800000",
			AddressNumber: "123",
		})
	if err != nil {
		return nil, err
	}

	approved := payment.Status == "CONFIRMED"
	status := string(models.PaymentFailed)
	if approved {
		status = string(models.PaymentCompleted)
	}

	last4 := input.Card.Number
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}

	record := &models.Payment{
		OrderID:        input.OrderID,
		Amount:         input.Amount,
		Method:         string(models.PaymentCard),
		Status:         status,
		AsaasPaymentID: payment.ID,
		CardLast4:      last4,
	}
	if err := s.paymentRepo.Create(record); err != nil {
		log.Printf("Failed to persist card payment %s: %v", payment.ID, err)
	}

	charge := &CardCharge{
		PaymentID: payment.ID,
		OrderID:   input.OrderID,
		Amount:    input.Amount,
		CardLast4: last4,
	}
	if approved {
		charge.Status = "approved"
		charge.Message = "Pagamento aprovado"
	} else {
		charge.Status = "declined"
		charge.Message = "Cartão recusado"
	}
	return charge, nil
}

// GetPaymentStatus returns the stored payment, re-checking the gateway for
// pending charges. PIX confirmations normally arrive via webhook; polling
// here covers a missed callback.
func (s *paymentService) GetPaymentStatus(paymentID uint) (*models.Payment, error) {
	record, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment %d not found: %w", paymentID, err)
	}

	if record.Status != string(models.PaymentPending) || !s.gateway.Configured() {
		return record, nil
	}

	remote, err := s.gateway.GetPaymentStatus(record.AsaasPaymentID)
	if err != nil {
		log.Printf("Failed to poll payment %s: %v", record.AsaasPaymentID, err)
		return record, nil
	}
	if remote.Status == "CONFIRMED" || remote.Status == "RECEIVED" {
		record.Status = string(models.PaymentCompleted)
		if err := s.paymentRepo.Update(record); err != nil {
			return nil, fmt.Errorf("failed to update payment: %w", err)
		}
	}
	return record, nil
}

func (s *paymentService) ListOrderPayments(orderID uint) ([]models.Payment, error) {
	return s.paymentRepo.GetByOrderID(orderID)
}

// HandleWebhook processes the gateway's payment-confirmation callback. A
// repeated confirmation for the same payment is a harmless re-update.
func (s *paymentService) HandleWebhook(event WebhookEvent) (*WebhookOutcome, error) {
	if event.Event != "PAYMENT_CONFIRMED" && event.Event != "PAYMENT_RECEIVED" {
		return &WebhookOutcome{}, nil
	}

	record, err := s.paymentRepo.GetByAsaasID(event.Payment.ID)
	if err != nil {
		return nil, fmt.Errorf("payment %s not found: %w", event.Payment.ID, err)
	}

	record.Status = string(models.PaymentCompleted)
	if err := s.paymentRepo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	return &WebhookOutcome{
		Approved:  true,
		OrderID:   record.OrderID,
		PaymentID: event.Payment.ID,
		Method:    event.Payment.BillingType,
	}, nil
}

// Sandbox CPF accepted by the Asaas test environment.
const testCpf = "24971563792"

func splitExpiry(expiry string) (month, year string) {
	parts := []rune(expiry)
	if len(parts) >= 5 {
		return string(parts[0:2]), "20" + string(parts[3:5])
	}
	return "", ""
}
