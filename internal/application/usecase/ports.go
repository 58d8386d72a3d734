// internal/application/usecase/ports.go
package usecase

import (
	"context"
	"time"

	orderdom "framecraft/internal/domain/order"
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// AssetUploader performs a single authenticated upload to the remote
// asset host. imageData is a data URI (or equivalent encoded string);
// destinationID names the remote object. Implementations return the
// canonical remote URL plus the remote-assigned identifier, and report
// every failure (encoding, network, non-2xx) as an error value.
type AssetUploader interface {
	Upload(ctx context.Context, imageData, destinationID string) (url string, assetID string, err error)
}

// OrderSubmitter hands the reconciled order to the order service.
// Its internal contract (persistence, payment kick-off) is opaque here;
// it returns the remote order id on success.
type OrderSubmitter interface {
	Submit(ctx context.Context, o *orderdom.Order) (string, error)
}

// EmailClient sends plain-text notification mail.
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// RandSource yields the random component for order numbers.
type RandSource interface {
	IntN(n int) int
}
