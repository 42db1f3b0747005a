package handler

import (
	"strconv"

	billingapp "github.com/ecuDickens/project-orders-backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// GeneratorHandler exposes the demo data generator. It is only registered
// when the generator is enabled in configuration; production configs refuse
// to enable it.
type GeneratorHandler struct {
	BaseHandler
	generatorService *billingapp.GeneratorService
	maxCount         int
}

// NewGeneratorHandler creates a new GeneratorHandler
func NewGeneratorHandler(generatorService *billingapp.GeneratorService, maxCount int) *GeneratorHandler {
	return &GeneratorHandler{
		generatorService: generatorService,
		maxCount:         maxCount,
	}
}

// RegisterRoutes registers the generator route
func (h *GeneratorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate/:email/:count", h.Generate)
}

// GenerateResponse reports what the generator seeded
type GenerateResponse struct {
	AccountIDs []string `json:"account_ids"`
	Count      int      `json:"count"`
}

// Generate seeds count billed demo accounts derived from the base email
func (h *GeneratorHandler) Generate(c *gin.Context) {
	email := c.Param("email")

	count, err := strconv.Atoi(c.Param("count"))
	if err != nil {
		h.BadRequest(c, "Count must be an integer")
		return
	}
	if count < 1 || count > h.maxCount {
		h.BadRequest(c, "Count must be between 1 and "+strconv.Itoa(h.maxCount))
		return
	}

	accountIDs, err := h.generatorService.Generate(c.Request.Context(), email, count)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	ids := make([]string, len(accountIDs))
	for i, id := range accountIDs {
		ids[i] = id.String()
	}
	h.Created(c, GenerateResponse{AccountIDs: ids, Count: len(ids)})
}
