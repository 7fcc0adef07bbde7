package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	channelapp "github.com/omnistock/backend/internal/application/channel"
	"github.com/omnistock/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Maximum webhook payload size (256KB - platform webhooks are small)
const maxWebhookPayloadSize = 262144

// Shopify webhook headers
const (
	shopifyHmacHeader      = "X-Shopify-Hmac-Sha256"
	shopifyTopicHeader     = "X-Shopify-Topic"
	shopifyWebhookIDHeader = "X-Shopify-Webhook-Id"
)

// Square webhook header
const squareSignatureHeader = "X-Square-Hmacsha256-Signature"

// Amazon SNS notification headers
const (
	amazonSignatureHeader   = "X-Amz-Sns-Signature"
	amazonTimestampHeader   = "X-Amz-Sns-Message-Timestamp"
	amazonMessageTypeHeader = "X-Amz-Sns-Message-Type"
)

// WebhookHandler handles inbound webhooks from sales platforms.
// These endpoints are called by the platforms and are authenticated by
// HMAC signatures instead of bearer tokens.
type WebhookHandler struct {
	BaseHandler
	webhookService *channelapp.WebhookService
	cfg            config.WebhookConfig
	logger         *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookService *channelapp.WebhookService, cfg config.WebhookConfig, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		cfg:            cfg,
		logger:         logger,
	}
}

// WebhookResponse represents the acknowledgement returned to the platform
type WebhookResponse struct {
	Received  bool   `json:"received" example:"true"`
	EventID   string `json:"event_id,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Message   string `json:"message,omitempty"`
}

// squareEnvelope is the outer structure of a Square webhook delivery
type squareEnvelope struct {
	EventID string `json:"event_id"`
	Type    string `json:"type"`
	Data    struct {
		Object struct {
			OrderCreated struct {
				OrderID string `json:"order_id"`
			} `json:"order_created"`
			Order channelapp.SquareOrderPayload `json:"order"`
		} `json:"object"`
	} `json:"data"`
}

func (h *WebhookHandler) readBody(c *gin.Context) ([]byte, bool) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, WebhookResponse{Message: "Failed to read request body"})
		return nil, false
	}
	if len(payload) > maxWebhookPayloadSize {
		c.JSON(http.StatusRequestEntityTooLarge, WebhookResponse{Message: "Payload too large"})
		return nil, false
	}
	return payload, true
}

// verifyShopifySignature checks the HMAC-SHA256 base64 digest Shopify
// attaches to every delivery. Verification is skipped when no secret is
// configured (development mode); production config requires one.
func (h *WebhookHandler) verifyShopifySignature(body []byte, signature string) bool {
	if h.cfg.ShopifySecret == "" {
		return true
	}
	mac := hmac.New(sha256.New, []byte(h.cfg.ShopifySecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// verifySquareSignature checks Square's HMAC-SHA256 signature over the
// notification URL concatenated with the body.
func (h *WebhookHandler) verifySquareSignature(c *gin.Context, body []byte, signature string) bool {
	if h.cfg.SquareSignatureKey == "" {
		return true
	}
	url := h.cfg.SquareNotificationURL
	if url == "" {
		scheme := "https"
		if c.Request.TLS == nil {
			scheme = "http"
		}
		url = scheme + "://" + c.Request.Host + c.Request.URL.Path
	}
	mac := hmac.New(sha256.New, []byte(h.cfg.SquareSignatureKey))
	mac.Write([]byte(url))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// amazonEnvelope is the outer SNS structure of an Amazon notification
type amazonEnvelope struct {
	MessageID    string `json:"MessageId"`
	Message      string `json:"Message"`
	SubscribeURL string `json:"SubscribeURL"`
}

// amazonMessage is the notification carried inside the SNS envelope
type amazonMessage struct {
	NotificationType string          `json:"NotificationType"`
	Payload          json.RawMessage `json:"Payload"`
}

// verifyAmazonSignature checks the HMAC-SHA256 hex digest Amazon
// computes over the timestamp and the body joined by a dot.
func (h *WebhookHandler) verifyAmazonSignature(body []byte, signature, timestamp string) bool {
	if h.cfg.AmazonSecret == "" {
		return true
	}
	if signature == "" || timestamp == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.cfg.AmazonSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleShopify godoc
// @Summary      Handle Shopify webhook
// @Description  Receive order and inventory level events from Shopify
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Shopify-Hmac-Sha256 header string true "HMAC-SHA256 signature (base64)"
// @Param        X-Shopify-Topic header string true "Webhook topic"
// @Param        X-Shopify-Webhook-Id header string true "Unique delivery ID"
// @Success      200 {object} WebhookResponse
// @Failure      400 {object} WebhookResponse
// @Failure      401 {object} WebhookResponse
// @Router       /webhooks/shopify [post]
func (h *WebhookHandler) HandleShopify(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	if !h.verifyShopifySignature(body, c.GetHeader(shopifyHmacHeader)) {
		h.logger.Warn("shopify webhook signature verification failed")
		c.JSON(http.StatusUnauthorized, WebhookResponse{Message: "Signature verification failed"})
		return
	}

	topic := c.GetHeader(shopifyTopicHeader)
	eventID := c.GetHeader(shopifyWebhookIDHeader)
	if eventID == "" {
		c.JSON(http.StatusBadRequest, WebhookResponse{Message: "Missing webhook ID header"})
		return
	}

	switch topic {
	case "orders/create", "orders/updated":
		var payload channelapp.ShopifyOrderPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			c.JSON(http.StatusBadRequest, WebhookResponse{Message: "Invalid order payload"})
			return
		}
		result, err := h.webhookService.ProcessShopifyOrder(c.Request.Context(), eventID, topic, payload)
		if err != nil {
			h.logger.Error("shopify order webhook failed",
				zap.String("event_id", eventID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, WebhookResponse{Message: "Webhook processing failed"})
			return
		}
		c.JSON(http.StatusOK, WebhookResponse{Received: true, EventID: result.EventID, Duplicate: result.Duplicate})

	case "inventory_levels/update":
		var payload channelapp.ShopifyInventoryLevelPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			c.JSON(http.StatusBadRequest, WebhookResponse{Message: "Invalid inventory level payload"})
			return
		}
		result, err := h.webhookService.ProcessShopifyInventoryLevel(c.Request.Context(), eventID, payload)
		if err != nil {
			h.logger.Error("shopify inventory webhook failed",
				zap.String("event_id", eventID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, WebhookResponse{Message: "Webhook processing failed"})
			return
		}
		c.JSON(http.StatusOK, WebhookResponse{Received: true, EventID: result.EventID, Duplicate: result.Duplicate})

	default:
		// Acknowledge unhandled topics so Shopify stops retrying
		h.logger.Debug("ignoring unhandled shopify topic", zap.String("topic", topic))
		c.JSON(http.StatusOK, WebhookResponse{Received: true, Message: "Topic not handled"})
	}
}

// HandleSquare godoc
// @Summary      Handle Square webhook
// @Description  Receive order events from Square
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Square-Hmacsha256-Signature header string true "HMAC-SHA256 signature (base64)"
// @Success      200 {object} WebhookResponse
// @Failure      400 {object} WebhookResponse
// @Failure      401 {object} WebhookResponse
// @Router       /webhooks/square [post]
func (h *WebhookHandler) HandleSquare(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	if !h.verifySquareSignature(c, body, c.GetHeader(squareSignatureHeader)) {
		h.logger.Warn("square webhook signature verification failed")
		c.JSON(http.StatusUnauthorized, WebhookResponse{Message: "Signature verification failed"})
		return
	}

	var envelope squareEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.JSON(http.StatusBadRequest, WebhookResponse{Message: "Invalid payload"})
		return
	}
	if envelope.EventID == "" {
		c.JSON(http.StatusBadRequest, WebhookResponse{Message: "Missing event ID"})
		return
	}

	if envelope.Type != "order.created" {
		h.logger.Debug("ignoring unhandled square event type", zap.String("type", envelope.Type))
		c.JSON(http.StatusOK, WebhookResponse{Received: true, Message: "Event type not handled"})
		return
	}

	payload := envelope.Data.Object.Order
	if payload.OrderID == "" {
		payload.OrderID = envelope.Data.Object.OrderCreated.OrderID
	}

	result, err := h.webhookService.ProcessSquareOrder(c.Request.Context(), envelope.EventID, payload)
	if err != nil {
		h.logger.Error("square order webhook failed",
			zap.String("event_id", envelope.EventID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, WebhookResponse{Message: "Webhook processing failed"})
		return
	}

	c.JSON(http.StatusOK, WebhookResponse{Received: true, EventID: result.EventID, Duplicate: result.Duplicate})
}

// HandleAmazon godoc
// @Summary      Handle Amazon notification
// @Description  Receive order and inventory change notifications delivered through SNS
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Amz-Sns-Signature header string true "HMAC-SHA256 signature (hex)"
// @Param        X-Amz-Sns-Message-Timestamp header string true "Delivery timestamp"
// @Param        X-Amz-Sns-Message-Type header string false "SNS message type"
// @Success      200 {object} WebhookResponse
// @Failure      400 {object} WebhookResponse
// @Failure      401 {object} WebhookResponse
// @Router       /webhooks/amazon [post]
func (h *WebhookHandler) HandleAmazon(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	var envelope amazonEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.JSON(http.StatusBadRequest, WebhookResponse{Message: "Invalid payload"})
		return
	}

	// SNS asks for the subscription to be confirmed out of band; the
	// delivery itself only needs acknowledging
	if c.GetHeader(amazonMessageTypeHeader) == "SubscriptionConfirmation" {
		h.logger.Info("amazon sns subscription confirmation received",
			zap.String("subscribe_url", envelope.SubscribeURL),
		)
		c.JSON(http.StatusOK, WebhookResponse{Received: true, Message: "Subscription confirmation received"})
		return
	}

	if !h.verifyAmazonSignature(body, c.GetHeader(amazonSignatureHeader), c.GetHeader(amazonTimestampHeader)) {
		h.logger.Warn("amazon webhook signature verification failed")
		c.JSON(http.StatusUnauthorized, WebhookResponse{Message: "Signature verification failed"})
		return
	}

	if envelope.MessageID == "" {
		c.JSON(http.StatusBadRequest, WebhookResponse{Message: "Missing message ID"})
		return
	}

	var message amazonMessage
	if err := json.Unmarshal([]byte(envelope.Message), &message); err != nil {
		c.JSON(http.StatusBadRequest, WebhookResponse{Message: "Invalid notification message"})
		return
	}

	switch message.NotificationType {
	case "ORDER_CHANGE":
		var payload channelapp.AmazonOrderPayload
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			c.JSON(http.StatusBadRequest, WebhookResponse{Message: "Invalid order payload"})
			return
		}
		result, err := h.webhookService.ProcessAmazonOrder(c.Request.Context(), envelope.MessageID, payload)
		if err != nil {
			h.logger.Error("amazon order webhook failed",
				zap.String("event_id", envelope.MessageID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, WebhookResponse{Message: "Webhook processing failed"})
			return
		}
		c.JSON(http.StatusOK, WebhookResponse{Received: true, EventID: result.EventID, Duplicate: result.Duplicate})

	case "INVENTORY_CHANGE":
		var payload channelapp.AmazonInventoryPayload
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			c.JSON(http.StatusBadRequest, WebhookResponse{Message: "Invalid inventory payload"})
			return
		}
		result, err := h.webhookService.ProcessAmazonInventory(c.Request.Context(), envelope.MessageID, payload)
		if err != nil {
			h.logger.Error("amazon inventory webhook failed",
				zap.String("event_id", envelope.MessageID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, WebhookResponse{Message: "Webhook processing failed"})
			return
		}
		c.JSON(http.StatusOK, WebhookResponse{Received: true, EventID: result.EventID, Duplicate: result.Duplicate})

	default:
		// Acknowledge unhandled types so SNS stops redelivering
		h.logger.Debug("ignoring unhandled amazon notification type",
			zap.String("type", message.NotificationType),
		)
		c.JSON(http.StatusOK, WebhookResponse{Received: true, Message: "Notification type not handled"})
	}
}
