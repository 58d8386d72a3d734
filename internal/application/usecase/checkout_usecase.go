// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	cartdom "framecraft/internal/domain/cart"
	orderdom "framecraft/internal/domain/order"
	sessiondom "framecraft/internal/domain/session"
)

var (
	ErrCheckoutInvalidArgument = errors.New("checkout: invalid argument")
	ErrCheckoutNotConfigured   = errors.New("checkout: not configured")
	ErrCheckoutEmptyCart       = errors.New("checkout: no items")
	ErrCheckoutSubmitFailed    = errors.New("checkout: order submission failed")
)

// CheckoutInput carries the request side of a checkout attempt.
// Items may be empty, in which case the session cart is loaded instead.
type CheckoutInput struct {
	Items    []cartdom.Item
	Customer orderdom.Customer
}

// CheckoutSummary is what the caller (and the confirmation mail) sees.
type CheckoutSummary struct {
	OrderNumber   string          `json:"orderNumber"`
	RemoteOrderID string          `json:"remoteOrderId,omitempty"`
	TotalItems    int             `json:"totalItems"`
	Uploaded      int             `json:"uploaded"`
	Failed        int             `json:"failed"`
	Items         []orderdom.Item `json:"items"`
}

type systemRand struct{}

func (systemRand) IntN(n int) int { return rand.IntN(n) }

// CheckoutUsecase drives the whole order flow: load items, run the
// upload batch, reconcile outcomes, submit the order, notify.
//
// Partial upload failure does not abort checkout; the order is
// submitted with per-item status and the caller reports "N of M images
// uploaded". Only a structural problem or a rejected submission fails
// the flow.
type CheckoutUsecase struct {
	batch     *UploadBatchUsecase
	cartRepo  cartdom.Repository // optional; nil means items must come in the input
	submitter OrderSubmitter
	mail      EmailClient // optional
	mailFrom  string
	clock     Clock
	rnd       RandSource
}

func NewCheckoutUsecase(
	batch *UploadBatchUsecase,
	cartRepo cartdom.Repository,
	submitter OrderSubmitter,
	mail EmailClient,
	mailFrom string,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		batch:     batch,
		cartRepo:  cartRepo,
		submitter: submitter,
		mail:      mail,
		mailFrom:  strings.TrimSpace(mailFrom),
		clock:     systemClock{},
		rnd:       systemRand{},
	}
}

// NewCheckoutUsecaseWithClock is useful for tests.
func NewCheckoutUsecaseWithClock(
	batch *UploadBatchUsecase,
	cartRepo cartdom.Repository,
	submitter OrderSubmitter,
	mail EmailClient,
	mailFrom string,
	clock Clock,
	rnd RandSource,
) *CheckoutUsecase {
	uc := NewCheckoutUsecase(batch, cartRepo, submitter, mail, mailFrom)
	if clock != nil {
		uc.clock = clock
	}
	if rnd != nil {
		uc.rnd = rnd
	}
	return uc
}

// Checkout runs one checkout attempt for the session.
func (uc *CheckoutUsecase) Checkout(ctx context.Context, sess sessiondom.Context, in CheckoutInput) (*CheckoutSummary, error) {
	if uc == nil || uc.batch == nil || uc.submitter == nil {
		return nil, ErrCheckoutNotConfigured
	}
	if !sess.Valid() {
		return nil, ErrCheckoutInvalidArgument
	}

	items := in.Items
	fromCart := false
	if len(items) == 0 && uc.cartRepo != nil {
		c, err := uc.cartRepo.GetBySessionID(ctx, sess.SessionID)
		if err != nil {
			return nil, fmt.Errorf("checkout: load cart: %w", err)
		}
		if c != nil {
			items = c.Items
			fromCart = true
		}
	}
	if len(items) == 0 {
		return nil, ErrCheckoutEmptyCart
	}

	now := uc.clock.Now()
	orderNumber := orderdom.NewNumber(now, uc.rnd.IntN(10000))

	results, err := uc.batch.UploadBatch(ctx, items, orderNumber)
	if err != nil {
		return nil, err
	}

	reconciled, err := orderdom.ReconcileItems(items, results)
	if err != nil {
		return nil, err
	}

	o, err := orderdom.NewOrder(orderNumber, sess.SessionID, in.Customer, reconciled, now)
	if err != nil {
		return nil, err
	}

	remoteID, err := uc.submitter.Submit(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutSubmitFailed, err)
	}

	uploaded := o.UploadedCount()
	summary := &CheckoutSummary{
		OrderNumber:   orderNumber,
		RemoteOrderID: remoteID,
		TotalItems:    len(items),
		Uploaded:      uploaded,
		Failed:        len(items) - uploaded,
		Items:         reconciled,
	}

	// Post-submission steps are best-effort; the order is already placed.
	if fromCart {
		if err := uc.cartRepo.DeleteBySessionID(ctx, sess.SessionID); err != nil {
			log.Printf("[checkout] cart clear failed session=%s: %v", sess.SessionID, err)
		}
	}
	uc.sendConfirmation(ctx, in.Customer, summary)

	return summary, nil
}

func (uc *CheckoutUsecase) sendConfirmation(ctx context.Context, customer orderdom.Customer, s *CheckoutSummary) {
	if uc.mail == nil || uc.mailFrom == "" {
		return
	}
	to := strings.TrimSpace(customer.Email)
	if to == "" {
		return
	}

	subject := fmt.Sprintf("Framecraft order %s confirmed", s.OrderNumber)
	body := fmt.Sprintf(
		"Thanks for your order, %s!\n\nOrder number: %s\nItems: %d\nImages uploaded: %d of %d\n",
		customer.Name, s.OrderNumber, s.TotalItems, s.Uploaded, s.TotalItems,
	)
	if s.Failed > 0 {
		body += fmt.Sprintf("\n%d image(s) could not be uploaded; our team will follow up before printing.\n", s.Failed)
	}

	if err := uc.mail.Send(ctx, uc.mailFrom, to, subject, body); err != nil {
		log.Printf("[checkout] confirmation mail failed order=%s: %v", s.OrderNumber, err)
	}
}
