// internal/adapters/out/ordersubmit/http_submitter.go
package ordersubmit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	orderdom "framecraft/internal/domain/order"
)

// HTTPSubmitter posts finalized orders to the downstream order service
// over HTTP. It implements usecase.OrderSubmitter.
type HTTPSubmitter struct {
	client  *http.Client
	baseURL string // e.g. "https://orders-service-xxxx.asia-northeast1.run.app"
	apiKey  string // used when the order service requires auth (ORDER_SERVICE_API_KEY)
}

func NewHTTPSubmitter(baseURL, apiKey string) *HTTPSubmitter {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")

	return &HTTPSubmitter{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// orderPayload is the wire shape the order service accepts. Kept apart
// from the domain struct so its schema can move independently.
type orderPayload struct {
	OrderNumber string             `json:"orderNumber"`
	SessionID   string             `json:"sessionId,omitempty"`
	Customer    customerPayload    `json:"customer"`
	Items       []orderItemPayload `json:"items"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type customerPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type orderItemPayload struct {
	ID         string `json:"id"`
	FrameSize  string `json:"frameSize"`
	FrameColor string `json:"frameColor"`
	Quantity   int    `json:"quantity"`
	Price      int64  `json:"price"`

	OriginalURL   string `json:"originalUrl,omitempty"`
	PrintURL      string `json:"printUrl,omitempty"`
	DisplayURL    string `json:"displayUrl,omitempty"`
	AssetPublicID string `json:"assetPublicId,omitempty"`
	UploadStatus  string `json:"uploadStatus"`
	UploadError   string `json:"uploadError,omitempty"`
}

// Submit sends the order and returns the id assigned by the order service.
func (s *HTTPSubmitter) Submit(ctx context.Context, o *orderdom.Order) (string, error) {
	if s == nil {
		return "", fmt.Errorf("order submitter is nil")
	}
	if o == nil {
		return "", fmt.Errorf("order is nil")
	}
	if s.baseURL == "" {
		return "", fmt.Errorf("baseURL is empty; order service endpoint not configured")
	}

	body, err := json.Marshal(payloadFromDomain(o))
	if err != nil {
		return "", fmt.Errorf("encode order: %w", err)
	}

	log.Printf("[ordersubmit] Submit start number=%s items=%d", o.Number, len(o.Items))

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/orders",
		bytes.NewReader(body),
	)
	if err != nil {
		log.Printf("[ordersubmit] create request FAILED err=%v", err)
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[ordersubmit] http request FAILED err=%v", err)
		return "", fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf(
			"[ordersubmit] submit FAILED status=%d body=%s",
			resp.StatusCode,
			string(bodyBytes),
		)
		return "", fmt.Errorf("submit order failed: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var res struct {
		OrderID string `json:"orderId"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Printf("[ordersubmit] decode response FAILED err=%v body=%s", err, string(bodyBytes))
		return "", fmt.Errorf("decode submit response: %w", err)
	}

	remoteID := res.OrderID
	if remoteID == "" {
		remoteID = res.ID
	}
	if remoteID == "" {
		log.Printf("[ordersubmit] response has empty order id body=%s", string(bodyBytes))
		return "", fmt.Errorf("submit response has empty order id")
	}

	log.Printf("[ordersubmit] Submit OK number=%s remoteId=%s", o.Number, remoteID)
	return remoteID, nil
}

func payloadFromDomain(o *orderdom.Order) orderPayload {
	items := make([]orderItemPayload, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemPayload{
			ID:         it.ID,
			FrameSize:  it.FrameSize,
			FrameColor: it.FrameColor,
			Quantity:   it.Quantity,
			Price:      it.Price,

			OriginalURL:   it.OriginalURL,
			PrintURL:      it.PrintURL,
			DisplayURL:    it.DisplayURL,
			AssetPublicID: it.AssetPublicID,
			UploadStatus:  it.UploadStatus,
			UploadError:   it.UploadError,
		})
	}

	return orderPayload{
		OrderNumber: o.Number,
		SessionID:   o.SessionID,
		Customer: customerPayload{
			Name:    o.Customer.Name,
			Email:   o.Customer.Email,
			Phone:   o.Customer.Phone,
			Address: o.Customer.Address,
		},
		Items:     items,
		CreatedAt: o.CreatedAt,
	}
}
