package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	appconfig "mecanica_xpto_os/internal/config"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"go.uber.org/zap"
)

var (
	ErrMissingMercadoPagoAccessToken   = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
)

// paymentCreator is the slice of the SDK client the gateway uses.
type paymentCreator interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
}

// MercadoPagoGateway charges order budgets through the Mercado Pago SDK. In
// mock mode it approves every request locally and echoes the payload back.
type MercadoPagoGateway struct {
	client   paymentCreator
	mockMode bool
	log      *zap.Logger
	now      func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(cfg appconfig.PaymentsConfig, log *zap.Logger) (*MercadoPagoGateway, error) {
	if cfg.Mock {
		log.Info("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, log: log, now: time.Now}, nil
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := config.New(cfg.AccessToken)
	if err != nil {
		return nil, err
	}
	log.Info("[payment][gateway] Mercado Pago client initialized", zap.Bool("sandbox", IsSandboxToken(cfg.AccessToken)))
	return &MercadoPagoGateway{client: payment.NewClient(sdkCfg), log: log, now: time.Now}, nil
}

// IsSandboxToken reports whether token belongs to a Mercado Pago test account.
func IsSandboxToken(token string) bool {
	return strings.HasPrefix(strings.TrimSpace(token), "TEST-")
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	if g != nil && g.mockMode {
		return g.mockPayment(requestPayload)
	}
	if g == nil || g.client == nil {
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	g.log.Debug("[payment][gateway] create start", zap.Int("payload_len", len(requestPayload)))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		return "", "", nil, err
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		g.log.Warn("[payment][gateway] sdk create failed", zap.Error(err))
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	g.log.Info("[payment][gateway] create success", zap.Any("provider_payment_id", resp.ID), zap.String("provider_status", resp.Status))
	return fmt.Sprintf("%d", resp.ID), resp.Status, b, nil
}

func (g *MercadoPagoGateway) mockPayment(requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	now := g.now().UTC()
	id := strconv.FormatInt(now.UnixNano(), 10)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	if _, ok := resp["date_created"]; !ok {
		resp["date_created"] = now.Format(time.RFC3339Nano)
	}
	if _, ok := resp["date_approved"]; !ok {
		resp["date_approved"] = now.Format(time.RFC3339Nano)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	g.log.Info("[payment][gateway] mock create success", zap.String("provider_payment_id", id))
	return id, "approved", b, nil
}
