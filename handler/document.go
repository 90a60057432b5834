package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/digimonapk/dicords/model"
	"github.com/digimonapk/dicords/pkg/logger"
	"github.com/digimonapk/dicords/service"
)

// Bot is the slice of the Discord service the HTTP surface needs.
type Bot interface {
	PostNew(doc model.Document) (string, error)
	ListReachableChannels() ([]service.GuildChannels, error)
	Ready() bool
	BotTag() string
}

type DocumentHandler struct {
	store *service.DocumentStore
	bot   Bot
}

func NewDocumentHandler(store *service.DocumentStore, bot Bot) *DocumentHandler {
	return &DocumentHandler{
		store: store,
		bot:   bot,
	}
}

type CreateRequest struct {
	DocID string `json:"docId"`
	model.Submission
}

// Create registers a new document and posts its interactive notification.
// The store write always happens first; a dispatch failure is reported to
// the caller but never undoes the write.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := model.ValidateDocID(req.DocID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc := model.NewDocument(req.DocID, req.Submission, time.Now().UnixMilli())
	h.store.Put(doc)

	logger.Info(c.Request.Context(), "document created",
		"doc_id", doc.DocID,
		"category", doc.Category,
	)

	if _, err := h.bot.PostNew(doc); err != nil {
		logger.Error(c.Request.Context(), "failed to dispatch notification",
			"doc_id", doc.DocID,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to send notification",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "docId": doc.DocID})
}

// Get returns a single document record
func (h *DocumentHandler) Get(c *gin.Context) {
	docID := c.Param("docId")

	doc, ok := h.store.Get(docID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	c.JSON(http.StatusOK, doc)
}

type documentEntry struct {
	ID string `json:"id"`
	model.Document
}

// List returns all document records
func (h *DocumentHandler) List(c *gin.Context) {
	docs := h.store.List()

	result := make([]documentEntry, len(docs))
	for i, doc := range docs {
		result[i] = documentEntry{ID: doc.DocID, Document: doc}
	}

	c.JSON(http.StatusOK, result)
}

// Status reports liveness, bot connectivity, and the record count
func (h *DocumentHandler) Status(c *gin.Context) {
	var botUser any
	if h.bot.Ready() {
		botUser = h.bot.BotTag()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "OK",
		"botConnected":   h.bot.Ready(),
		"botUser":        botUser,
		"documentsCount": h.store.Count(),
	})
}

// Channels returns the per-channel send eligibility diagnostic
func (h *DocumentHandler) Channels(c *gin.Context) {
	if !h.bot.Ready() {
		c.JSON(http.StatusOK, gin.H{"ready": false, "guilds": []service.GuildChannels{}})
		return
	}

	guilds, err := h.bot.ListReachableChannels()
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list channels", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ready": true, "guilds": guilds})
}
