// Package payment talks to the hosted-checkout provider.
package payment

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/urbantrove-ng/Urbantrove-Api/models"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// StartRequest describes a payment session for an order or a plan.
type StartRequest struct {
	SubjectKind models.SubjectKind
	SubjectID   uint
	Amount      decimal.Decimal
	Description string
	Email       string
	FullName    string
}

// Session is what the client needs to redirect the buyer to the hosted page.
type Session struct {
	URL string `json:"url"`
	Ref string `json:"ref"`
}

// Outcome is a resolved callback: which subject it settles and whether it succeeded.
type Outcome struct {
	Status      Status             `json:"status"`
	SubjectKind models.SubjectKind `json:"subjectKind"`
	SubjectID   uint               `json:"subjectId"`
	Reference   string             `json:"reference"`
	Amount      string             `json:"amount,omitempty"`
	Currency    string             `json:"currency,omitempty"`
}

// Gateway is the payment provider boundary.
type Gateway interface {
	StartPayment(ctx context.Context, req StartRequest) (*Session, error)
	Resolve(ctx context.Context, query url.Values) (*Outcome, error)
	Receipt(ctx context.Context, ref string) (*Receipt, error)
}

// CartID encodes the subject into the provider's cart id, e.g. "order-12-1700000000".
// The trailing nonce keeps retried sessions unique at the provider.
func CartID(kind models.SubjectKind, id uint, nonce int64) string {
	return fmt.Sprintf("%s-%d-%d", kind, id, nonce)
}

// ParseCartID reverses CartID.
func ParseCartID(cartID string) (models.SubjectKind, uint, error) {
	parts := strings.Split(cartID, "-")
	if len(parts) < 2 {
		return "", 0, fmt.Errorf("malformed cart id %q", cartID)
	}
	kind := models.SubjectKind(parts[0])
	if kind != models.SubjectOrder && kind != models.SubjectPlan {
		return "", 0, fmt.Errorf("unknown subject kind in cart id %q", cartID)
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil || id == 0 {
		return "", 0, fmt.Errorf("bad subject id in cart id %q", cartID)
	}
	return kind, uint(id), nil
}
