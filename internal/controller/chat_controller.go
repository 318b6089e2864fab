package controller

import (
	"bufio"
	"context"
	"fmt"

	"store-assistant-be/internal/dto"
	"store-assistant-be/internal/pkg/logger"
	"store-assistant-be/internal/pkg/serverutils"
	"store-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
}

type chatController struct {
	assistantService service.IAssistantService
	logger           logger.ILogger
}

func NewChatController(assistantService service.IAssistantService, logger logger.ILogger) IChatController {
	return &chatController{
		assistantService: assistantService,
		logger:           logger,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post(":sessionId/messages", c.SendMessage)
	h.Post(":sessionId/reset", c.ResetSession)
}

// SendMessage handles one conversation turn and streams the response as
// server-sent events: one "data:" event per fragment, closed with a [DONE]
// sentinel.
func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// The turn runs on a detached context: once accepted, a message is
	// processed to completion even if the client goes away mid-stream, so
	// conversation memory stays consistent with what was generated.
	fragments, err := c.assistantService.Submit(context.Background(), sessionID, req.Message)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		clientGone := false
		for fragment := range fragments {
			if clientGone {
				continue // drain so the turn still completes
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", fragment); err != nil {
				clientGone = true
				continue
			}
			if err := w.Flush(); err != nil {
				clientGone = true
				c.logger.Debug("chat", "client disconnected mid-stream", map[string]interface{}{
					"session_id": sessionID,
				})
			}
		}
		if !clientGone {
			fmt.Fprint(w, "data: [DONE]\n\n")
			w.Flush()
		}
	}))

	return nil
}

func (c *chatController) ResetSession(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")
	c.assistantService.Reset(sessionID)
	return ctx.JSON(serverutils.SuccessResponse("Session reset", dto.ResetSessionResponse{
		Message: "conversation memory cleared",
	}))
}
