// internal/domain/order/entity.go
package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	cartdom "framecraft/internal/domain/cart"
)

var (
	ErrInvalidOrder    = errors.New("order: invalid")
	ErrResultsMismatch = errors.New("order: results do not match items")
	ErrInvalidCustomer = errors.New("order: invalid customer")
)

// Upload status markers stamped onto reconciled items.
const (
	UploadStatusSuccess = "success"
	UploadStatusFailed  = "failed"
)

// URLBundle is the normalized set of remote URLs for one uploaded image.
//
// The asset host performs a single upload per item, so Original/Print/
// Display currently carry the same value; the named slots exist so a
// host that generates real derivatives can be adopted without changing
// callers.
type URLBundle struct {
	Original string `json:"original" firestore:"original"`
	Print    string `json:"print" firestore:"print"`
	Display  string `json:"display" firestore:"display"`
	PublicID string `json:"publicId" firestore:"publicId"`
}

// UploadResult is the per-item outcome of the batch upload.
// ItemIndex is the position in the batch (not the item id).
// Exactly one of URLs / Error is set.
type UploadResult struct {
	ItemIndex int        `json:"itemIndex"`
	URLs      *URLBundle `json:"urls,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// SingleUploadBundle builds a URLBundle from one upload call.
func SingleUploadBundle(url, publicID string) *URLBundle {
	u := strings.TrimSpace(url)
	return &URLBundle{
		Original: u,
		Print:    u,
		Display:  u,
		PublicID: strings.TrimSpace(publicID),
	}
}

// Item is a reconciled order line: the cart line plus upload outcome.
type Item struct {
	cartdom.Item

	OriginalURL   string `json:"originalUrl,omitempty" firestore:"originalUrl,omitempty"`
	PrintURL      string `json:"printUrl,omitempty" firestore:"printUrl,omitempty"`
	DisplayURL    string `json:"displayUrl,omitempty" firestore:"displayUrl,omitempty"`
	AssetPublicID string `json:"assetPublicId,omitempty" firestore:"assetPublicId,omitempty"`

	UploadStatus string `json:"uploadStatus" firestore:"uploadStatus"`
	UploadError  string `json:"uploadError,omitempty" firestore:"uploadError,omitempty"`
}

// ReconcileItems merges batch results back into the item list.
//
// Pure function: inputs are not mutated and the output depends only on
// the inputs (calling it twice yields structurally identical output).
// Input order is preserved. A length mismatch is a structural error.
func ReconcileItems(items []cartdom.Item, results []UploadResult) ([]Item, error) {
	if len(items) != len(results) {
		return nil, ErrResultsMismatch
	}

	out := make([]Item, 0, len(items))
	for i, it := range items {
		res := results[i]

		oi := Item{Item: it}
		if res.URLs != nil {
			oi.OriginalURL = res.URLs.Original
			oi.PrintURL = res.URLs.Print
			oi.DisplayURL = res.URLs.Display
			oi.AssetPublicID = res.URLs.PublicID
			oi.UploadStatus = UploadStatusSuccess
		} else {
			oi.UploadStatus = UploadStatusFailed
			oi.UploadError = res.Error
		}
		out = append(out, oi)
	}
	return out, nil
}

// Customer is the order's customer block (collected at checkout).
type Customer struct {
	Name    string `json:"name" firestore:"name"`
	Email   string `json:"email" firestore:"email"`
	Phone   string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Address string `json:"address,omitempty" firestore:"address,omitempty"`
}

func (c Customer) validate() error {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Email) == "" {
		return ErrInvalidCustomer
	}
	return nil
}

// Order is the payload handed to the order-submission collaborator.
type Order struct {
	Number    string    `json:"orderNumber" firestore:"orderNumber"`
	SessionID string    `json:"sessionId" firestore:"sessionId"`
	Customer  Customer  `json:"customer" firestore:"customer"`
	Items     []Item    `json:"items" firestore:"items"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// NewOrder assembles an order from reconciled items.
func NewOrder(number, sessionID string, customer Customer, items []Item, now time.Time) (*Order, error) {
	num := strings.TrimSpace(number)
	if num == "" || len(items) == 0 {
		return nil, ErrInvalidOrder
	}
	if err := customer.validate(); err != nil {
		return nil, err
	}

	cp := make([]Item, len(items))
	copy(cp, items)

	return &Order{
		Number:    num,
		SessionID: strings.TrimSpace(sessionID),
		Customer:  customer,
		Items:     cp,
		CreatedAt: now,
	}, nil
}

// UploadedCount returns how many items carry a successful upload.
func (o *Order) UploadedCount() int {
	if o == nil {
		return 0
	}
	n := 0
	for _, it := range o.Items {
		if it.UploadStatus == UploadStatusSuccess {
			n++
		}
	}
	return n
}

// NewNumber builds an order number like "FRM-20260828153000-4821".
// n is a caller-supplied random component (kept out of this package so
// usecases can inject a deterministic source in tests).
func NewNumber(now time.Time, n int) string {
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("FRM-%s-%04d", now.UTC().Format("20060102150405"), n%10000)
}
