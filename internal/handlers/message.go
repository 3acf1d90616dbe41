package handlers

import (
	"context"
	"net/http"

	"neetprep-backend/internal/logger"
	"neetprep-backend/internal/models"
)

type MessageStore interface {
	List(ctx context.Context) ([]models.MessageRecord, error)
	Create(ctx context.Context, m *models.MessageRecord) error
	DeleteAll(ctx context.Context) (int64, error)
}

type MessageHandler struct {
	messages MessageStore
	log      *logger.Logger
}

func NewMessageHandler(messages MessageStore, log *logger.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, log: log}
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.List(r.Context())
	if err != nil {
		internalError(w, r, h.log, "Failed to fetch messages", err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	req.ApplyDefaults()

	msg := &models.MessageRecord{Text: req.Text, Sender: req.Sender}
	if err := h.messages.Create(r.Context(), msg); err != nil {
		internalError(w, r, h.log, "Failed to create message", err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (h *MessageHandler) Clear(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.messages.DeleteAll(r.Context())
	if err != nil {
		internalError(w, r, h.log, "Failed to clear messages", err)
		return
	}
	h.log.Info("Cleared chat log", "deleted", deleted)
	writeSuccess(w)
}
