package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/loqostudio/loqo-backend/internal/logger"
	"github.com/loqostudio/loqo-backend/internal/requestdata"
	"github.com/loqostudio/loqo-backend/internal/sse"
)

type SSEHandler struct {
	log *logger.Logger
	hub *sse.SSEHub

	mu      sync.RWMutex
	clients map[uuid.UUID]*sse.SSEClient // key: UserID, one stream per user
}

func NewSSEHandler(log *logger.Logger, hub *sse.SSEHub) *SSEHandler {
	return &SSEHandler{
		log:     log.With("handler", "SSEHandler"),
		hub:     hub,
		clients: make(map[uuid.UUID]*sse.SSEClient),
	}
}

func (sh *SSEHandler) SSEStream(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	userID := rd.UserID
	sh.log.Info("SSE stream open", "userID", userID)

	sh.mu.Lock()
	if existing, ok := sh.clients[userID]; ok {
		sh.hub.CloseClient(existing)
		delete(sh.clients, userID)
	}
	client := sh.hub.NewSSEClient(userID)
	sh.clients[userID] = client
	sh.mu.Unlock()

	sh.hub.ServeHTTP(c.Writer, c.Request, client)

	sh.mu.Lock()
	delete(sh.clients, userID)
	sh.mu.Unlock()
	sh.hub.CloseClient(client)
}

func (sh *SSEHandler) SSESubscribe(c *gin.Context) {
	client, channel, ok := sh.clientAndChannel(c)
	if !ok {
		return
	}
	sh.hub.AddChannel(client, channel)
	RespondOK(c, gin.H{"message": "subscribed", "channel": channel})
}

func (sh *SSEHandler) SSEUnsubscribe(c *gin.Context) {
	client, channel, ok := sh.clientAndChannel(c)
	if !ok {
		return
	}
	sh.hub.RemoveChannel(client, channel)
	RespondOK(c, gin.H{"message": "unsubscribed", "channel": channel})
}

func (sh *SSEHandler) clientAndChannel(c *gin.Context) (*sse.SSEClient, string, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return nil, "", false
	}
	var req struct {
		Channel string `json:"channel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Channel == "" {
		RespondError(c, http.StatusBadRequest, "invalid_channel", err)
		return nil, "", false
	}
	sh.mu.RLock()
	client, exists := sh.clients[rd.UserID]
	sh.mu.RUnlock()
	if !exists {
		RespondError(c, http.StatusConflict, "no_stream", nil)
		return nil, "", false
	}
	return client, req.Channel, true
}
