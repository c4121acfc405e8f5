package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/center-locator/app/models"
	"github.com/center-locator/app/requests"
	"github.com/center-locator/app/responses"
	"github.com/center-locator/app/services"
	"github.com/center-locator/helpers/utils"
)

// RequestIDKey key lưu request id trong gin.Context
const RequestIDKey = "request_id"

// ChatController controller xử lý các câu hỏi về trung tâm
type ChatController struct {
	chatService    *services.ChatService
	catalogService *services.CatalogService
	serviceName    string
	logger         *zap.Logger
}

// NewChatController tạo mới ChatController
func NewChatController(chatService *services.ChatService, catalogService *services.CatalogService, serviceName string, logger *zap.Logger) *ChatController {
	return &ChatController{
		chatService:    chatService,
		catalogService: catalogService,
		serviceName:    serviceName,
		logger:         logger,
	}
}

// Chat trả lời một câu hỏi
func (cc *ChatController) Chat(c *gin.Context) {
	var req requests.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Invalid request: " + err.Error(),
		})
		return
	}

	startTime := time.Now()

	reply, err := cc.chatService.Ask(c.Request.Context(), req.Message)
	if err != nil {
		cc.abortWithChatError(c, err)
		return
	}

	answer := reply.Answer
	c.JSON(http.StatusOK, responses.ChatResponse{
		Response:         answer.Message,
		Outcome:          answer.Outcome,
		Centers:          centersOrEmpty(answer.Centers),
		Intent:           answer.Intent,
		CatalogVersion:   answer.CatalogVersion,
		RequestID:        c.GetString(RequestIDKey),
		CacheHit:         reply.CacheHit,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// BatchChat trả lời nhiều câu hỏi, kết quả theo thứ tự input
func (cc *ChatController) BatchChat(c *gin.Context) {
	var req requests.BatchChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Invalid request: " + err.Error(),
		})
		return
	}

	startTime := time.Now()
	batchID := utils.GenerateUUID()

	replies, err := cc.chatService.AskBatch(c.Request.Context(), req.Messages)
	if err != nil {
		cc.abortWithChatError(c, err)
		return
	}

	items := make([]responses.BatchChatItem, len(replies))
	for i, reply := range replies {
		items[i] = responses.BatchChatItem{
			Index:    i,
			Response: reply.Answer.Message,
			Outcome:  reply.Answer.Outcome,
			Centers:  centersOrEmpty(reply.Answer.Centers),
			Intent:   reply.Answer.Intent,
			CacheHit: reply.CacheHit,
		}
	}

	cc.logger.Info("Batch answered",
		zap.String("batch_id", batchID),
		zap.Int("messages", len(items)),
		zap.Duration("duration", time.Since(startTime)))

	c.JSON(http.StatusOK, responses.BatchChatResponse{
		BatchID:          batchID,
		RequestID:        c.GetString(RequestIDKey),
		Results:          items,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// HealthCheck kiểm tra sức khỏe service
func (cc *ChatController) HealthCheck(c *gin.Context) {
	cat := cc.catalogService.Current()
	c.JSON(http.StatusOK, responses.HealthResponse{
		Status:         "healthy",
		Service:        cc.serviceName,
		CatalogSize:    cat.Len(),
		CatalogVersion: cat.Version,
	})
}

func (cc *ChatController) abortWithChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBatchTooLarge):
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "BATCH_TOO_LARGE",
			Message: err.Error(),
		})
	case errors.Is(err, context.DeadlineExceeded):
		cc.logger.Warn("Chat request timed out", zap.Error(err), zap.String("request_id", c.GetString(RequestIDKey)))
		c.JSON(http.StatusGatewayTimeout, responses.ErrorResponse{
			Error:   "TIMEOUT",
			Message: "The request took too long to answer",
		})
	default:
		cc.logger.Error("Chat request failed", zap.Error(err), zap.String("request_id", c.GetString(RequestIDKey)))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "CHAT_ERROR",
			Message: err.Error(),
		})
	}
}

func centersOrEmpty(centers []models.CenterView) []models.CenterView {
	if centers == nil {
		return []models.CenterView{}
	}
	return centers
}
