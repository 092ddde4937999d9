package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shappycc2010-ctrl/HinGem/api/http/presenter"
	"github.com/shappycc2010-ctrl/HinGem/pkg/availability"
	"github.com/shappycc2010-ctrl/HinGem/pkg/chat"
)

const replyInternalError = "(Hingem encountered an internal error.)"

type ChatHandler struct {
	uc   chat.UseCase
	gate *availability.Gate
	log  *zap.Logger
}

// NewChatHandler builds the chat handler. gate may be nil (relay).
func NewChatHandler(uc chat.UseCase, gate *availability.Gate, log *zap.Logger) *ChatHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChatHandler{uc: uc, gate: gate, log: log}
}

type chatRequest struct {
	Message any `json:"message"`
}

func (h *ChatHandler) message(c *fiber.Ctx) string {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return ""
	}
	return messageText(req.Message)
}

// Chat answers a message, honouring the shutdown gate.
// @Summary Chat with Hingem
// @Description Sending the shutdown phrase toggles the server; while shut down every other message gets 503.
// @Tags    chat
// @Accept  json
// @Produce json
// @Param   input body chatRequest true "message"
// @Success 200 {object} presenter.ReplyResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ReplyResponse
// @Failure 503 {object} presenter.ReplyResponse
// @Router  /api/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	msg := h.message(c)
	if h.gate != nil {
		if d := h.gate.Evaluate(c.UserContext(), msg); d.Handled {
			return presenter.Reply(c, d.Status, d.Reply, chat.SourceServer)
		}
	}
	if msg == "" {
		return presenter.Error(c, http.StatusBadRequest, "missing message")
	}
	reply, err := h.uc.Reply(c.UserContext(), msg)
	if err != nil {
		h.log.Error("chat handler error", zap.Error(err))
		return presenter.Reply(c, http.StatusInternalServerError, replyInternalError, "")
	}
	return presenter.Reply(c, http.StatusOK, reply.Text, reply.Source)
}

// Relay answers a message with a single provider and echoes failures into the reply.
// @Summary Chat relay
// @Tags    chat
// @Accept  json
// @Produce json
// @Param   input body chatRequest true "message"
// @Success 200 {object} presenter.ReplyResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /chat [post]
func (h *ChatHandler) Relay(c *fiber.Ctx) error {
	msg := h.message(c)
	if msg == "" {
		return presenter.Error(c, http.StatusBadRequest, "missing message")
	}
	reply, err := h.uc.Reply(c.UserContext(), msg)
	if err != nil {
		h.log.Warn("relay provider error", zap.Error(err))
		return presenter.Reply(c, http.StatusOK, "Error: "+err.Error(), "")
	}
	return presenter.Reply(c, http.StatusOK, reply.Text, "")
}
