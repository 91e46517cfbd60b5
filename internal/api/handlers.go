package api

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kgchat/internal/docstore"
	"kgchat/internal/intent"
	"kgchat/internal/models"
	"kgchat/internal/prompt"
	"kgchat/internal/relation"
	"kgchat/internal/session"
	"kgchat/internal/worker"
)

const (
	maxUploadBytes = 32 << 20
	previewMaxLen  = 100
)

// Gateway sends a composed message list to the model endpoint.
type Gateway interface {
	Send(ctx context.Context, messages []models.Message) (string, error)
}

// Handler wires HTTP routes to the conversation pipeline.
type Handler struct {
	docs     *docstore.Store
	sessions *session.Store
	gateway  Gateway
	writer   *relation.Writer
	turns    *worker.Dispatcher
}

// NewHandler constructs a Handler instance.
func NewHandler(docs *docstore.Store, sessions *session.Store, gw Gateway, writer *relation.Writer, turns *worker.Dispatcher) *Handler {
	return &Handler{
		docs:     docs,
		sessions: sessions,
		gateway:  gw,
		writer:   writer,
		turns:    turns,
	}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	api := router.Group("/api")
	api.GET("/health", h.health)
	api.GET("/files", h.listFiles)
	api.GET("/history", h.chatHistory)
	api.POST("/chat", h.chat)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "*")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) listFiles(c *gin.Context) {
	c.JSON(http.StatusOK, h.docs.PreviewAll(previewMaxLen))
}

func (h *Handler) chatHistory(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}
	c.JSON(http.StatusOK, h.sessions.History(userID))
}

// chat runs one conversation turn: ingest uploads, classify intent,
// compose context, call the model, extract relations on summarize turns
// and append the exchange to the user's history.
func (h *Handler) chat(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	userMessage := strings.TrimSpace(c.PostForm("message"))
	userID := strings.TrimSpace(c.PostForm("userId"))
	if userMessage == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message and userId are required"})
		return
	}

	if err := h.turns.Acquire(); err != nil {
		if errors.Is(err, worker.ErrDispatcherBusy) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "server is busy, please retry"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer h.turns.Release()

	ctx := c.Request.Context()
	newTexts := h.ingestUploads(ctx, c.Request.MultipartForm)

	it := intent.Classify(userMessage)
	messages := prompt.Compose(it, newTexts, h.docs)
	messages = append(messages, h.sessions.History(userID)...)
	userMsg := models.Message{Role: models.RoleUser, Content: userMessage}
	messages = append(messages, userMsg)

	reply, err := h.gateway.Send(ctx, messages)
	if err != nil {
		// Failed gateway call: no history mutation, no file write.
		c.String(http.StatusBadGateway, "request failed: %v", err)
		return
	}

	if it == intent.Summarize {
		// CSV persistence is best-effort; its failure never fails the turn.
		if err := h.writer.Write(relation.Extract(reply)); err != nil {
			log.Printf("write relation table: %v", err)
		}
	}

	h.sessions.Append(userID, userMsg)
	h.sessions.Append(userID, models.Message{Role: models.RoleAssistant, Content: reply})

	c.String(http.StatusOK, reply)
}

// ingestUploads stores every allowed uploaded file and returns the
// extracted texts in upload order. Disallowed files are skipped without
// error.
func (h *Handler) ingestUploads(ctx context.Context, form *multipart.Form) []string {
	if form == nil {
		return nil
	}
	var texts []string
	for _, fh := range form.File["files"] {
		if text, ok := h.docs.IngestUpload(ctx, fh); ok {
			texts = append(texts, text)
		}
	}
	return texts
}
