package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/urbantrove-ng/Urbantrove-Api/config"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
)

// Telr order status codes returned by the "check" method.
const (
	telrStatusPending    = 1
	telrStatusAuthorised = 2
	telrStatusPaid       = 3
)

// Receipt is the order section of a Telr "check" response.
type Receipt struct {
	Ref         string `json:"ref"`
	CartID      string `json:"cartid"`
	Test        int    `json:"test"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Status      struct {
		Code int    `json:"code"`
		Text string `json:"text"`
	} `json:"status"`
	Transaction struct {
		Ref     string `json:"ref"`
		Type    string `json:"type"`
		Class   string `json:"class"`
		Status  string `json:"status"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"transaction"`
}

// Settled reports whether the provider has taken the money.
func (r Receipt) Settled() bool {
	return r.Status.Code == telrStatusAuthorised || r.Status.Code == telrStatusPaid
}

type telrError struct {
	Message string `json:"message"`
	Note    string `json:"note"`
}

type telrCreateResponse struct {
	Order struct {
		Ref string `json:"ref"`
		URL string `json:"url"`
	} `json:"order"`
	Error *telrError `json:"error,omitempty"`
}

type telrCheckResponse struct {
	Order Receipt    `json:"order"`
	Error *telrError `json:"error,omitempty"`
}

// Telr is the Gateway backed by Telr's hosted payment page API.
type Telr struct {
	cfg    config.TelrConfig
	client *http.Client
	now    func() time.Time
}

func NewTelr(cfg config.TelrConfig) *Telr {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Telr{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

func (t *Telr) configured() error {
	if t.cfg.StoreID == 0 || t.cfg.AuthKey == "" || t.cfg.APIURL == "" {
		return fmt.Errorf("%w: telr configuration missing", models.ErrUpstream)
	}
	return nil
}

func (t *Telr) testFlag() int {
	if t.cfg.TestMode() {
		return 1
	}
	return 0
}

// StartPayment creates a hosted payment page and returns its URL and order reference.
func (t *Telr) StartPayment(ctx context.Context, req StartRequest) (*Session, error) {
	if err := t.configured(); err != nil {
		return nil, err
	}

	cartID := CartID(req.SubjectKind, req.SubjectID, t.now().Unix())
	payload := map[string]interface{}{
		"method":  "create",
		"store":   t.cfg.StoreID,
		"authkey": t.cfg.AuthKey,
		"order": map[string]interface{}{
			"cartid":      cartID,
			"test":        t.testFlag(),
			"amount":      req.Amount.StringFixed(2),
			"currency":    t.cfg.Currency,
			"description": req.Description,
		},
		"customer": map[string]interface{}{
			"name":  req.FullName,
			"email": req.Email,
		},
		"return": map[string]string{
			"authorised": t.cfg.SuccessURL,
			"declined":   t.cfg.FailureURL,
			"cancelled":  t.cfg.CancelURL,
		},
	}

	var resp telrCreateResponse
	if err := t.post(ctx, payload, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: telr error: %s", models.ErrUpstream, resp.Error.Message)
	}
	if resp.Order.URL == "" {
		return nil, fmt.Errorf("%w: telr returned empty payment URL", models.ErrUpstream)
	}

	log.Printf("💳 Telr session %s created for %s", resp.Order.Ref, cartID)
	return &Session{URL: resp.Order.URL, Ref: resp.Order.Ref}, nil
}

// Receipt fetches the current state of a Telr order.
func (t *Telr) Receipt(ctx context.Context, ref string) (*Receipt, error) {
	if err := t.configured(); err != nil {
		return nil, err
	}
	if ref == "" {
		return nil, fmt.Errorf("%w: payment reference is required", models.ErrValidation)
	}

	payload := map[string]interface{}{
		"method":  "check",
		"store":   t.cfg.StoreID,
		"authkey": t.cfg.AuthKey,
		"order":   map[string]string{"ref": ref},
	}

	var resp telrCheckResponse
	if err := t.post(ctx, payload, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: telr error: %s", models.ErrUpstream, resp.Error.Message)
	}
	return &resp.Order, nil
}

// Resolve turns the return-URL query of a finished checkout into an Outcome.
func (t *Telr) Resolve(ctx context.Context, query url.Values) (*Outcome, error) {
	ref := query.Get("ref")
	if ref == "" {
		ref = query.Get("order_ref")
	}
	receipt, err := t.Receipt(ctx, ref)
	if err != nil {
		return nil, err
	}

	kind, id, err := ParseCartID(receipt.CartID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}

	outcome := &Outcome{
		Status:      StatusFailure,
		SubjectKind: kind,
		SubjectID:   id,
		Reference:   receipt.Ref,
		Amount:      receipt.Amount,
		Currency:    receipt.Currency,
	}
	if receipt.Transaction.Ref != "" {
		outcome.Reference = receipt.Transaction.Ref
	}
	if receipt.Settled() {
		outcome.Status = StatusSuccess
	}
	return outcome, nil
}

func (t *Telr) post(ctx context.Context, payload interface{}, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to reach Telr: %v", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read Telr response: %v", models.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: telr API error (%d): %s", models.ErrUpstream, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to parse Telr response: %v", models.ErrUpstream, err)
	}
	return nil
}
