package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/storefront/internal/dto"
	"github.com/flicky/storefront/internal/llm"
	"github.com/flicky/storefront/internal/service"
)

type AssistantHandler struct {
	assistantService *service.AssistantService
}

func NewAssistantHandler(assistantService *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// Chat always answers 200; a failed generation comes back as the fallback
// reply.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	history := make([]llm.Turn, len(req.History))
	for i, t := range req.History {
		history[i] = llm.Turn{Role: t.Role, Text: t.Text}
	}
	reply := h.assistantService.Chat(c.Request.Context(), history, req.Message)
	c.JSON(http.StatusOK, dto.ChatResponse{Reply: reply})
}

func (h *AssistantHandler) EnhanceDescription(c *gin.Context) {
	var req dto.CopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out := h.assistantService.EnhanceDescription(c.Request.Context(), req.Name, req.Description)
	c.JSON(http.StatusOK, gin.H{"description": out})
}

func (h *AssistantHandler) SuggestTagline(c *gin.Context) {
	var req dto.CopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out := h.assistantService.SuggestTagline(c.Request.Context(), req.Name, req.Description)
	c.JSON(http.StatusOK, gin.H{"tagline": out})
}

func (h *AssistantHandler) SuggestBannerCopy(c *gin.Context) {
	var req dto.BannerCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out := h.assistantService.SuggestBannerCopy(c.Request.Context(), req.Context)
	c.JSON(http.StatusOK, dto.BannerCopyResponse{Title: out.Title, Subtitle: out.Subtitle})
}
