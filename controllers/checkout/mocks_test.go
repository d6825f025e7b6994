package checkoutControllers

import (
	"context"
	"errors"

	"github.com/sunutees/storefront-api/catalog"
	"github.com/sunutees/storefront-api/models"
	"github.com/sunutees/storefront-api/payments"
)

// mockOracle implements catalog.Oracle over a fixed product map.
type mockOracle struct {
	products map[string]catalog.PriceInfo
	calls    int
}

func (m *mockOracle) FetchPrice(_ context.Context, productID string) (catalog.PriceInfo, error) {
	m.calls++
	info, ok := m.products[productID]
	if !ok {
		return catalog.PriceInfo{}, catalog.ErrNotFound
	}
	return info, nil
}

// mockResolver implements settings.Resolver.
type mockResolver struct {
	settings *models.TaxSettings
	err      error
}

func (m *mockResolver) TaxSettings(context.Context) (*models.TaxSettings, error) {
	return m.settings, m.err
}

// mockStore implements store.OrderStore and counts every call, so tests can
// assert persistence never happened on a blocked checkout.
type mockStore struct {
	UpsertCustomerCalls int
	CreateOrderCalls    int
	CreateItemCalls     int
	UpdateSessionCalls  int

	CreatedOrder      *models.Order
	CreatedItems      []models.OrderItem
	SessionID         string
	SessionURL        string
	SessionRaw        string
	UpsertCustomerErr error
	CreateOrderErr    error
	CreateItemErr     error
}

func (m *mockStore) UpsertCustomer(_ context.Context, customer models.Customer) (uint, error) {
	m.UpsertCustomerCalls++
	if m.UpsertCustomerErr != nil {
		return 0, m.UpsertCustomerErr
	}
	return 42, nil
}

func (m *mockStore) CreateOrder(_ context.Context, order *models.Order) error {
	m.CreateOrderCalls++
	if m.CreateOrderErr != nil {
		return m.CreateOrderErr
	}
	order.ID = 7
	order.OrderRef = "20250908130500-test"
	m.CreatedOrder = order
	return nil
}

func (m *mockStore) CreateOrderItem(_ context.Context, item *models.OrderItem) error {
	m.CreateItemCalls++
	if m.CreateItemErr != nil {
		return m.CreateItemErr
	}
	m.CreatedItems = append(m.CreatedItems, *item)
	return nil
}

func (m *mockStore) UpdateOrderPaymentSession(_ context.Context, _ uint, sessionID, checkoutURL, processorRaw string) error {
	m.UpdateSessionCalls++
	m.SessionID = sessionID
	m.SessionURL = checkoutURL
	m.SessionRaw = processorRaw
	return nil
}

func (m *mockStore) MarkPaymentOutcome(_ context.Context, _ string, _ models.PaymentStatus, _ string) (models.Order, error) {
	return models.Order{}, errors.New("not used in checkout tests")
}

// mockGateway implements payments.Gateway, capturing the submitted payload.
type mockGateway struct {
	Calls     int
	LastReq   payments.SessionRequest
	Session   payments.Session
	CreateErr error
}

func (m *mockGateway) CreateSession(_ context.Context, req payments.SessionRequest) (payments.Session, error) {
	m.Calls++
	m.LastReq = req
	if m.CreateErr != nil {
		return payments.Session{}, m.CreateErr
	}
	return m.Session, nil
}
