package handlers

import (
	"net/http"

	"cardapio_digital/internal/services"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	tenant    *Tenant
	aiService services.AIService
}

func NewAIHandler(tenant *Tenant, aiService services.AIService) *AIHandler {
	return &AIHandler{tenant: tenant, aiService: aiService}
}

// Chat handles one conversational turn. This endpoint is designed to never
// visibly fail: provider problems surface as a canned response with 200.
func (h *AIHandler) Chat(c *gin.Context) {
	restaurant, ok := h.tenant.Resolve(c)
	if !ok {
		return
	}

	var input services.ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body: " + err.Error()})
		return
	}

	result := h.aiService.Chat(c.Request.Context(), restaurant.ID, input)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
