package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cardapio_digital/internal/models"
	"cardapio_digital/internal/redis"
	"cardapio_digital/internal/repository"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// CompletionClient is the slice of the OpenAI client the assistant needs.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// SessionStore keeps the rolling per-session chat history and the cached
// menu context. *redis.Client satisfies it; a nil store disables caching.
type SessionStore interface {
	AppendChatTurn(sessionID string, turn redis.ChatTurn, ttl time.Duration) error
	GetChatHistory(sessionID string) ([]redis.ChatTurn, error)
}

type ChatInput struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

type ChatResult struct {
	Response        string            `json:"response"`
	SessionID       string            `json:"session_id"`
	Recommendations []models.MenuItem `json:"recommendations,omitempty"`
	Fallback        bool              `json:"-"`
}

// AIService answers free-text customer questions with current menu context.
// Chat never fails: any provider problem degrades to a canned response.
type AIService interface {
	Chat(ctx context.Context, restaurantID uint, input ChatInput) *ChatResult
}

type aiService struct {
	client       CompletionClient
	model        string
	menuItemRepo repository.MenuItemRepository
	orderRepo    repository.OrderRepository
	chatRepo     repository.ChatRepository
	sessions     SessionStore
	sessionTTL   time.Duration
}

func NewAIService(
	client CompletionClient,
	model string,
	menuItemRepo repository.MenuItemRepository,
	orderRepo repository.OrderRepository,
	chatRepo repository.ChatRepository,
	sessions SessionStore,
	sessionTTL time.Duration,
) AIService {
	return &aiService{
		client:       client,
		model:        model,
		menuItemRepo: menuItemRepo,
		orderRepo:    orderRepo,
		chatRepo:     chatRepo,
		sessions:     sessions,
		sessionTTL:   sessionTTL,
	}
}

func (s *aiService) Chat(ctx context.Context, restaurantID uint, input ChatInput) *ChatResult {
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	menuItems, err := s.menuItemRepo.GetActiveByRestaurant(restaurantID)
	if err != nil {
		log.Printf("AI chat: failed to load menu: %v", err)
	}

	response, usedFallback := s.generate(ctx, input.Message, sessionID, menuItems)

	result := &ChatResult{
		Response:        response,
		SessionID:       sessionID,
		Recommendations: smartRecommendations(menuItems, time.Now().Hour()),
		Fallback:        usedFallback,
	}

	// Log the interaction; failures here never reach the customer.
	interaction := &models.ChatInteraction{
		SessionID:    sessionID,
		Message:      input.Message,
		Response:     response,
		Keywords:     strings.Join(extractKeywords(input.Message), ","),
		RestaurantID: restaurantID,
	}
	if err := s.chatRepo.Create(interaction); err != nil {
		log.Printf("AI chat: failed to log interaction: %v", err)
	}
	if s.sessions != nil {
		turn := redis.ChatTurn{Message: input.Message, Response: response, CreatedAt: time.Now()}
		if err := s.sessions.AppendChatTurn(sessionID, turn, s.sessionTTL); err != nil {
			log.Printf("AI chat: failed to cache session turn: %v", err)
		}
	}

	return result
}

func (s *aiService) generate(ctx context.Context, message, sessionID string, menuItems []models.MenuItem) (string, bool) {
	if s.client == nil {
		return fallbackResponse(message), true
	}

	queueLength := 0
	if count, err := s.orderRepo.CountByStatuses([]string{
		string(models.OrderPending),
		string(models.OrderPreparing),
	}); err == nil {
		queueLength = int(count)
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(menuItems, queueLength)},
	}
	// Replay the last few turns so the model keeps short-term context.
	for _, turn := range s.history(sessionID) {
		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: turn.Message},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: turn.Response},
		)
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser, Content: message,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		log.Printf("AI chat: completion failed: %v", err)
		return fallbackResponse(message), true
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return fallbackResponse(message), true
	}
	return resp.Choices[0].Message.Content, false
}

// history prefers the Redis session cache and falls back to the interaction
// log, so a conversation survives a cache restart.
func (s *aiService) history(sessionID string) []redis.ChatTurn {
	if s.sessions != nil {
		if turns, err := s.sessions.GetChatHistory(sessionID); err == nil && len(turns) > 0 {
			return turns
		}
	}

	logged, err := s.chatRepo.GetBySession(sessionID, 5)
	if err != nil {
		return nil
	}
	// The log comes back newest first; replay it in order.
	turns := make([]redis.ChatTurn, 0, len(logged))
	for i := len(logged) - 1; i >= 0; i-- {
		turns = append(turns, redis.ChatTurn{
			Message:   logged[i].Message,
			Response:  logged[i].Response,
			CreatedAt: logged[i].CreatedAt,
		})
	}
	return turns
}

func buildSystemPrompt(menuItems []models.MenuItem, queueLength int) string {
	var menu strings.Builder
	for _, item := range menuItems {
		categoryName := ""
		if item.Category != nil {
			categoryName = item.Category.Name
		}
		fmt.Fprintf(&menu, "%s (%s) - R$ %.2f - %s\n", item.Name, categoryName, item.Price, item.Description)
	}
	if menu.Len() == 0 {
		menu.WriteString("Menu em preparação...")
	}

	return fmt.Sprintf(`Você é o Charlie, sommelier musical do Muzzajazz, restaurante de jazz em Pirenópolis, GO.

CARDÁPIO ATUAL:
%s
TEMPO DE ESPERA ATUAL: %s

INSTRUÇÕES:
- Seja caloroso e use linguagem temática do jazz
- Forneça informações precisas sobre pratos, preços e ingredientes
- Para reservas, direcione para WhatsApp: (62) 99999-8888
- Mencione sempre nossa filosofia: "Aprecie a vida"
- Use emojis musicais (🎷, 🎵, 🎶) nas respostas
- Seja conciso mas informativo`, menu.String(), estimateWaitTime(queueLength))
}

// estimateWaitTime maps the kitchen queue length to a coarse estimate. This
// is a fixed lookup, not a queueing computation.
func estimateWaitTime(queueLength int) string {
	switch {
	case queueLength <= 2:
		return "15-20 minutos"
	case queueLength <= 5:
		return "25-30 minutos"
	default:
		return "35-40 minutos"
	}
}

var (
	menuKeywords   = []string{"pizza", "entrada", "vinho", "cerveja", "sobremesa"}
	actionKeywords = []string{"reserva", "pedido", "tempo", "preço", "ingredientes"}
)

func extractKeywords(message string) []string {
	lower := strings.ToLower(message)
	var keywords []string
	for _, keyword := range append(append([]string{}, menuKeywords...), actionKeywords...) {
		if strings.Contains(lower, keyword) {
			keywords = append(keywords, keyword)
		}
	}
	return keywords
}

// fallbackResponse is the only degradation path in the system: when the
// completion provider is missing or unreachable the customer still gets a
// canned answer keyed off their message.
func fallbackResponse(message string) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "cardápio"), strings.Contains(lower, "cardapio"), strings.Contains(lower, "menu"):
		return "🎷 Nosso cardápio tem pizzas artesanais, entradas especiais, vinhos selecionados e muito mais! Que tipo de prato te interessa? 🎵"
	case strings.Contains(lower, "reserva"):
		return "🎷 Para reservas, entre em contato pelo WhatsApp: (62) 99999-8888. Valor: R$ 50 por pessoa. Aprecie a vida! 🎵"
	case strings.Contains(lower, "tempo"):
		return "🎷 O tempo de preparo varia entre 15-30 minutos dependendo do prato e movimento. A boa música faz o tempo passar mais rápido! 🎵"
	default:
		return "🎷 Olá! Sou o Charlie do Muzzajazz. Posso te ajudar com informações sobre cardápio, reservas, tempo de preparo e muito mais. Como posso te ajudar? 🎵"
	}
}

// smartRecommendations orders the menu by time of day: starters early in the
// evening, pizzas during prime time. Returns up to three items.
func smartRecommendations(menuItems []models.MenuItem, hour int) []models.MenuItem {
	if len(menuItems) == 0 {
		return nil
	}

	var preferred string
	switch {
	case hour >= 18 && hour < 20:
		preferred = "entrada"
	case hour >= 20 && hour < 22:
		preferred = "pizza"
	}

	ranked := make([]models.MenuItem, 0, len(menuItems))
	if preferred != "" {
		for _, item := range menuItems {
			if item.Category != nil && strings.Contains(strings.ToLower(item.Category.Name), preferred) {
				ranked = append(ranked, item)
			}
		}
	}
	for _, item := range menuItems {
		if len(ranked) >= 3 {
			break
		}
		if !containsItem(ranked, item.ID) {
			ranked = append(ranked, item)
		}
	}

	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}

func containsItem(items []models.MenuItem, id uint) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}
