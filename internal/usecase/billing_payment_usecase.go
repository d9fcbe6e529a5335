package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrBillingPaymentNotFound         = errors.New("billing payment not found")
	ErrInvalidPaymentID               = errors.New("invalid payment id")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrBudgetNotApproved              = fmt.Errorf("%w: budget not approved", entities.ErrInvalidState)
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentSettings carries the Mercado Pago knobs read from config.
type PaymentSettings struct {
	MockMode        bool
	SandboxToken    bool
	TestPayerEmail  string
	TestPayerUserID string
}

// IBillingPaymentUseCase charges approved order budgets.
//
//   - POST /orders/{id}/payments => PayBudget()
type IBillingPaymentUseCase interface {
	PayBudget(ctx context.Context, orderID string, mpPayload json.RawMessage) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.BillingPayment, error)
}

type BillingPaymentUseCase struct {
	repo     interfaces.IBillingPaymentRepository
	orders   interfaces.IOrderRepository
	gateway  interfaces.IPaymentGateway
	clock    interfaces.IClock
	log      *zap.Logger
	settings PaymentSettings
}

var _ IBillingPaymentUseCase = (*BillingPaymentUseCase)(nil)

func NewBillingPaymentUseCase(
	repo interfaces.IBillingPaymentRepository,
	orders interfaces.IOrderRepository,
	gateway interfaces.IPaymentGateway,
	clock interfaces.IClock,
	log *zap.Logger,
	settings PaymentSettings,
) *BillingPaymentUseCase {
	return &BillingPaymentUseCase{repo: repo, orders: orders, gateway: gateway, clock: clock, log: log, settings: settings}
}

func (u *BillingPaymentUseCase) PayBudget(ctx context.Context, orderID string, mpPayload json.RawMessage) (entities.BillingPayment, error) {
	orderID = strings.TrimSpace(orderID)
	u.log.Info("[payment][usecase] pay-budget start", zap.String("order_id", orderID), zap.Int("payload_len", len(mpPayload)))
	if orderID == "" {
		return entities.BillingPayment{}, ErrInvalidOrderID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !u.settings.MockMode {
			u.log.Warn("[payment][usecase] invalid payload", zap.String("order_id", orderID))
			return entities.BillingPayment{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil {
		return entities.BillingPayment{}, ErrPaymentGatewayNotConfigured
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.BillingPayment{}, persistenceFailure(err)
	}
	if order.ID == "" {
		return entities.BillingPayment{}, ErrOrderNotFound
	}
	if order.Budget == nil || order.Budget.Status != entities.BudgetStatusApproved {
		u.log.Info("[payment][usecase] budget not approved", zap.String("order_id", orderID), zap.String("status", string(order.Status)))
		return entities.BillingPayment{}, ErrBudgetNotApproved
	}
	budget := *order.Budget

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		return entities.BillingPayment{}, ErrInvalidMPPayload
	}
	if !u.settings.MockMode {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			return entities.BillingPayment{}, ErrInvalidMPPayload
		}
		u.normalizeSandboxPayer(reqMap)
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			return entities.BillingPayment{}, ErrInvalidMPPayload
		}
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = orderID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Ordem de serviço %s", orderID)
	}
	// The budget is the source of truth for the amount.
	reqMap["transaction_amount"] = budget.Value.InexactFloat64()
	enriched, err := json.Marshal(reqMap)
	if err != nil {
		return entities.BillingPayment{}, err
	}

	providerID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, enriched)
	if err != nil {
		u.log.Warn("[payment][usecase] payment gateway failed", zap.String("order_id", orderID), zap.Error(err))
		return entities.BillingPayment{}, classifyGatewayError(err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		u.log.Warn("[payment][usecase] provider response unmarshal failed", zap.String("order_id", orderID), zap.Error(err))
	}

	p := entities.BillingPayment{
		ID:           providerID,
		OrderID:      orderID,
		BudgetID:     budget.ID,
		Amount:       budget.Value,
		Date:         u.clock.Now(),
		Status:       entities.PaymentStatusFromProvider(providerStatus),
		MPPayloadRaw: providerResp,
		MPPayload:    parsed,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		u.log.Error("[payment][usecase] payment persist failed", zap.String("order_id", orderID), zap.String("payment_id", p.ID), zap.Error(err))
		return entities.BillingPayment{}, persistenceFailure(err)
	}
	u.log.Info("[payment][usecase] pay-budget success",
		zap.String("order_id", orderID),
		zap.String("payment_id", created.ID),
		zap.String("status", string(created.Status)),
		zap.String("amount", created.Amount.StringFixed(2)),
	)
	return created, nil
}

func (u *BillingPaymentUseCase) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingPayment{}, ErrInvalidPaymentID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingPayment{}, persistenceFailure(err)
	}
	if p.ID == "" {
		return entities.BillingPayment{}, ErrBillingPaymentNotFound
	}
	return p, nil
}

func (u *BillingPaymentUseCase) ListByOrderID(ctx context.Context, orderID string) ([]entities.BillingPayment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	payments, err := u.repo.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, persistenceFailure(err)
	}
	return payments, nil
}

// ensurePayerDefaults fills payer.type and, in sandbox, a test payer email
// when neither id nor email were sent.
func (u *BillingPaymentUseCase) ensurePayerDefaults(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		payer = map[string]any{}
		m["payer"] = payer
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	switch {
	case u.settings.TestPayerEmail != "":
		payer["email"] = u.settings.TestPayerEmail
	case u.settings.SandboxToken:
		payer["email"] = "test_user_br@testuser.com"
	}
}

// normalizeSandboxPayer swaps the configured sandbox user id for its email.
func (u *BillingPaymentUseCase) normalizeSandboxPayer(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok || !u.settings.SandboxToken || u.settings.TestPayerUserID == "" || u.settings.TestPayerEmail == "" {
		return
	}
	if !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != u.settings.TestPayerUserID {
		return
	}
	payer["email"] = u.settings.TestPayerEmail
	delete(payer, "id")
	u.log.Debug("[payment][usecase] mapped sandbox payer user_id to payer.email")
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

var gatewayErrorMarkers = []struct {
	target  error
	markers []string
}{
	{ErrPaymentGatewayCustomerNotFound, []string{"customer not found", `"code":2002`}},
	{ErrPaymentGatewayInvalidUsers, []string{"invalid users involved", `"code":2034`}},
	{ErrPaymentGatewayUnauthorized, []string{`"error":"unauthorized"`, `"status":401`}},
	{ErrPaymentGatewayBadRequest, []string{`"error":"bad_request"`, `"status":400`}},
}

// classifyGatewayError maps Mercado Pago error bodies into our sentinels.
func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	for _, g := range gatewayErrorMarkers {
		for _, marker := range g.markers {
			if strings.Contains(msg, marker) {
				return fmt.Errorf("%w: %v", g.target, err)
			}
		}
	}
	return err
}
