package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hxlane/rental_go_server/config"
	"github.com/hxlane/rental_go_server/internal/api/middleware"
	"github.com/hxlane/rental_go_server/internal/pkg/response"
	"github.com/hxlane/rental_go_server/internal/service"
)

// MessengerHandler Messenger 绑定码 + 平台 webhook
type MessengerHandler struct {
	linkService *service.MessengerLinkService
	cfg         *config.MessengerConfig
	codeTTL     string
}

func NewMessengerHandler(linkService *service.MessengerLinkService, cfg *config.Config) *MessengerHandler {
	return &MessengerHandler{
		linkService: linkService,
		cfg:         &cfg.Messenger,
		codeTTL:     cfg.Notify.LinkCodeTTL().String(),
	}
}

// GenerateLinkCode 生成 Messenger 绑定码
// POST /api/v1/user/messenger/link-code
func (h *MessengerHandler) GenerateLinkCode(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	code, err := h.linkService.GenerateCode(c.Request.Context(), userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "请在有效期内把绑定码发送给主页", gin.H{
		"code":       code,
		"page_link":  h.cfg.PageLink,
		"expires_in": h.codeTTL,
	})
}

// VerifyWebhook 平台订阅校验握手
// GET /api/v1/webhooks/messenger
func (h *MessengerHandler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "subscribe" || token != h.cfg.VerifyToken {
		c.String(http.StatusForbidden, "verification failed")
		return
	}

	c.String(http.StatusOK, challenge)
}

type webhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		Messaging []struct {
			Sender struct {
				ID string `json:"id"`
			} `json:"sender"`
			Message struct {
				Text string `json:"text"`
			} `json:"message"`
		} `json:"messaging"`
	} `json:"entry"`
}

// ReceiveWebhook 处理用户发来的消息，命中绑定码即完成绑定。
// 平台要求 webhook 始终快速返回 200，处理失败也不例外
// POST /api/v1/webhooks/messenger
func (h *MessengerHandler) ReceiveWebhook(c *gin.Context) {
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.String(http.StatusOK, "EVENT_RECEIVED")
		return
	}

	for _, entry := range payload.Entry {
		for _, msg := range entry.Messaging {
			if msg.Message.Text == "" {
				continue
			}
			h.linkService.HandleIncoming(c.Request.Context(), msg.Sender.ID, msg.Message.Text)
		}
	}

	c.String(http.StatusOK, "EVENT_RECEIVED")
}
