package services

import (
	"errors"
	"fmt"
	"strings"

	"cardapio_digital/internal/models"
	"cardapio_digital/pkg/whatsapp"
)

var ErrWhatsAppNotConfigured = errors.New("whatsapp provider not configured")

// MessageSender is the slice of the Twilio client the service uses.
type MessageSender interface {
	Configured() bool
	SendMessage(phone, message string) (*whatsapp.SendMessageResponse, error)
}

type WhatsAppService interface {
	SendMessage(phone, message string) error
	SendReservationConfirmation(reservation *models.Reservation) error
	SendOrderStatus(phone string, order *models.Order) error
	AutoReply(phone, body string) (string, error)
}

type whatsappService struct {
	client      MessageSender
	frontendURL string
}

func NewWhatsAppService(client MessageSender, frontendURL string) WhatsAppService {
	return &whatsappService{client: client, frontendURL: frontendURL}
}

func (s *whatsappService) SendMessage(phone, message string) error {
	if !s.client.Configured() {
		return ErrWhatsAppNotConfigured
	}
	_, err := s.client.SendMessage(phone, message)
	return err
}

func (s *whatsappService) SendReservationConfirmation(reservation *models.Reservation) error {
	message := fmt.Sprintf(`🎷 *MUZZAJAZZ - Reserva Confirmada*

📅 *Data:* %s
🕐 *Horário:* %s
👥 *Pessoas:* %d
👤 *Nome:* %s

✅ Sua reserva foi confirmada!

📍 *Endereço:* Rua do Jazz, 123 - Pirenópolis, GO
📞 *Contato:* (62) 99999-8888

🎵 "Aprecie a vida como uma boa música"

_Chegue 15 minutos antes do horário._`,
		reservation.Date, reservation.Time, reservation.People, reservation.Name)

	return s.SendMessage(reservation.Phone, message)
}

var orderStatusMessages = map[string]string{
	string(models.OrderPreparing): "👨‍🍳 Seu pedido está sendo preparado pela nossa equipe.",
	string(models.OrderReady):     "🍕 Pedido pronto! Pode vir buscar ou aguardar a entrega.",
	string(models.OrderDelivered): "🚚 Pedido entregue! Aprecie a vida! 🎵",
}

func (s *whatsappService) SendOrderStatus(phone string, order *models.Order) error {
	statusLine, ok := orderStatusMessages[order.Status]
	if !ok {
		statusLine = "Status atualizado!"
	}

	message := fmt.Sprintf(`🎷 *MUZZAJAZZ - Status do Pedido*

📋 *Pedido:* %s
💰 *Total:* R$ %.2f

%s

📞 Dúvidas? (62) 99999-8888`, order.OrderNumber, order.Total, statusLine)

	return s.SendMessage(phone, message)
}

// AutoReply answers incoming customer messages with canned keyword replies.
// Returns the reply that was sent.
func (s *whatsappService) AutoReply(phone, body string) (string, error) {
	message := strings.ToLower(strings.TrimSpace(body))

	var reply string
	switch {
	case strings.Contains(message, "cardapio"), strings.Contains(message, "cardápio"), message == "menu":
		reply = fmt.Sprintf(`🎷 *CARDÁPIO MUZZAJAZZ*

🍕 *Pizzas Artesanais:*
• Pizza Ella Fitzgerald - R$ 50,00
• Pizza Nina Simone - R$ 53,00

📱 *Faça seu pedido online:*
%s

🎵 Aprecie a vida!`, s.frontendURL)
	case strings.Contains(message, "reserva"):
		reply = fmt.Sprintf(`📅 *RESERVAS MUZZAJAZZ*

Para fazer sua reserva acesse:
%s

💰 *Valor:* R$ 50 por pessoa
🕐 *Horário:* Ter-Dom das 18h às 00h

📞 *Ou ligue:* (62) 99999-8888`, s.frontendURL)
	case strings.Contains(message, "horario"), strings.Contains(message, "horário"), strings.Contains(message, "funcionamento"):
		reply = `🕐 *HORÁRIO DE FUNCIONAMENTO*

📅 *Terça a Domingo:* 18h às 00h
❌ *Segunda:* Fechado

📍 Rua do Jazz, 123 - Pirenópolis, GO
📞 (62) 99999-8888`
	default:
		reply = `🎷 *MUZZAJAZZ*

Digite uma das opções:

📋 *cardapio* - Ver menu completo
📅 *reserva* - Fazer reserva
🕐 *horario* - Horário funcionamento

🎵 Estamos aqui para ajudar!`
	}

	if err := s.SendMessage(phone, reply); err != nil {
		return "", err
	}
	return reply, nil
}
