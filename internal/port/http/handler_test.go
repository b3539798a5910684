package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guitarshop/cart-service/internal/adapter/shopapi"
	"github.com/guitarshop/cart-service/internal/domain/entity"
	"github.com/guitarshop/cart-service/internal/platform/logger"
	"github.com/guitarshop/cart-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) State() entity.CartState {
	args := m.Called()
	return args.Get(0).(entity.CartState)
}

func (m *MockCartService) AddItem(ctx context.Context, product entity.Guitar) (entity.CartState, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(entity.CartState), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, productID int) (entity.CartState, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(entity.CartState), args.Error(1)
}

func (m *MockCartService) IncreaseQuantity(ctx context.Context, productID int) (entity.CartState, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(entity.CartState), args.Error(1)
}

func (m *MockCartService) DecreaseQuantity(ctx context.Context, productID int) (entity.CartState, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(entity.CartState), args.Error(1)
}

func (m *MockCartService) SetQuantity(ctx context.Context, productID, value int) (entity.CartState, error) {
	args := m.Called(ctx, productID, value)
	return args.Get(0).(entity.CartState), args.Error(1)
}

func (m *MockCartService) SetCoupon(ctx context.Context, code string) (entity.CartState, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(entity.CartState), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context) (entity.CartState, error) {
	args := m.Called(ctx)
	return args.Get(0).(entity.CartState), args.Error(1)
}

func (m *MockCartService) Apply(ctx context.Context, action entity.Action) (entity.CartState, error) {
	args := m.Called(ctx, action)
	return args.Get(0).(entity.CartState), args.Error(1)
}

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) ApplyPromoCode(ctx context.Context, code string) (entity.CartState, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(entity.CartState), args.Error(1)
}

func (m *MockCheckoutService) SubmitOrder(ctx context.Context, receiptEmail string) (*entity.Order, error) {
	args := m.Called(ctx, receiptEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListGuitars(ctx context.Context, query shopapi.GuitarQuery) ([]entity.Guitar, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Guitar), args.Error(1)
}

func (m *MockCatalogService) GetGuitar(ctx context.Context, productID int) (*entity.GuitarWithReviews, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GuitarWithReviews), args.Error(1)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) SubmitReview(ctx context.Context, draft entity.ReviewDraft) (*entity.Review, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

type noOpLogger struct{}

func (l *noOpLogger) Debug(args ...interface{})                   {}
func (l *noOpLogger) Debugf(template string, args ...interface{}) {}
func (l *noOpLogger) Info(args ...interface{})                    {}
func (l *noOpLogger) Infof(template string, args ...interface{})  {}
func (l *noOpLogger) Warn(args ...interface{})                    {}
func (l *noOpLogger) Warnf(template string, args ...interface{})  {}
func (l *noOpLogger) Error(args ...interface{})                   {}
func (l *noOpLogger) Errorf(template string, args ...interface{}) {}
func (l *noOpLogger) Fatal(args ...interface{})                   {}
func (l *noOpLogger) Fatalf(template string, args ...interface{}) {}
func (l *noOpLogger) With(args ...interface{}) logger.Logger      { return l }

type handlerFixture struct {
	cart     *MockCartService
	checkout *MockCheckoutService
	catalog  *MockCatalogService
	reviews  *MockReviewService
	mux      http.Handler
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		cart:     new(MockCartService),
		checkout: new(MockCheckoutService),
		catalog:  new(MockCatalogService),
		reviews:  new(MockReviewService),
	}
	handler := NewHandler(f.cart, f.checkout, f.catalog, f.reviews, nil, &noOpLogger{})
	f.mux = NewRouter(handler)
	return f
}

func (f *handlerFixture) do(t *testing.T, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

var _ service.CartService = (*MockCartService)(nil)
var _ service.CheckoutService = (*MockCheckoutService)(nil)
var _ service.CatalogService = (*MockCatalogService)(nil)
var _ service.ReviewService = (*MockReviewService)(nil)

func TestHandler_GetCart(t *testing.T) {
	f := newHandlerFixture()

	state := entity.EmptyCartState()
	state.Items[1] = entity.LineItem{
		Product:    entity.Guitar{ID: 1, Name: "CURT Z30 Plus", Price: 100},
		Quantity:   2,
		TotalPrice: 200,
	}
	state.TotalCartPrice = 200
	state.TotalCartPriceWithDiscount = 200
	state.ItemsQuantity = 2
	f.cart.On("State").Return(state).Once()

	rec := f.do(t, http.MethodGet, "/api/cart", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got entity.CartState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, state, got)
	f.cart.AssertExpectations(t)
}

func TestHandler_AddItem(t *testing.T) {
	f := newHandlerFixture()

	product := entity.Guitar{ID: 1, Name: "CURT Z30 Plus", Price: 100}
	next := entity.EmptyCartState()
	next.Items[1] = entity.LineItem{Product: product, Quantity: 1, TotalPrice: 100}
	next.TotalCartPrice = 100
	next.TotalCartPriceWithDiscount = 100
	next.ItemsQuantity = 1
	f.cart.On("AddItem", mock.Anything, product).Return(next, nil).Once()

	body, err := json.Marshal(map[string]entity.Guitar{"product": product})
	require.NoError(t, err)
	rec := f.do(t, http.MethodPost, "/api/cart/items", body)

	require.Equal(t, http.StatusOK, rec.Code)
	f.cart.AssertExpectations(t)
}

func TestHandler_RemoveMissingItemReturnsNotFound(t *testing.T) {
	f := newHandlerFixture()
	f.cart.On("RemoveItem", mock.Anything, 42).
		Return(entity.CartState{}, entity.ErrItemNotFound).Once()

	rec := f.do(t, http.MethodDelete, "/api/cart/items/42", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	f.cart.AssertExpectations(t)
}

func TestHandler_InvalidQuantityReturnsBadRequest(t *testing.T) {
	f := newHandlerFixture()
	f.cart.On("SetQuantity", mock.Anything, 1, 0).
		Return(entity.CartState{}, entity.ErrInvalidQuantity).Once()

	rec := f.do(t, http.MethodPut, "/api/cart/items/1", []byte(`{"quantity":0}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.cart.AssertExpectations(t)
}

func TestHandler_InvalidReviewReturnsBadRequest(t *testing.T) {
	f := newHandlerFixture()
	f.reviews.On("SubmitReview", mock.Anything, mock.Anything).
		Return(nil, entity.ErrInvalidReview).Once()

	rec := f.do(t, http.MethodPost, "/api/reviews", []byte(`{"userName":""}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.reviews.AssertExpectations(t)
}

func TestHandler_CheckoutEmptyCartReturnsBadRequest(t *testing.T) {
	f := newHandlerFixture()
	f.checkout.On("SubmitOrder", mock.Anything, "").
		Return(nil, entity.ErrEmptyCart).Once()

	rec := f.do(t, http.MethodPost, "/api/cart/checkout", []byte(`{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.checkout.AssertExpectations(t)
}

func TestHandler_RemoteFailureReturnsBadGateway(t *testing.T) {
	f := newHandlerFixture()
	f.catalog.On("ListGuitars", mock.Anything, shopapi.GuitarQuery{}).
		Return(nil, shopapi.ErrRemoteOperation).Once()

	rec := f.do(t, http.MethodGet, "/api/guitars", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	f.catalog.AssertExpectations(t)
}

func TestHandler_CheckoutWithoutBodySubmitsWithoutReceipt(t *testing.T) {
	f := newHandlerFixture()

	order := &entity.Order{ID: "order-1", TotalAmount: 200, TotalWithDiscount: 200}
	f.checkout.On("SubmitOrder", mock.Anything, "").Return(order, nil).Once()

	rec := f.do(t, http.MethodPost, "/api/cart/checkout", nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got entity.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, order.ID, got.ID)
	f.checkout.AssertExpectations(t)
}

func TestHandler_CheckoutPassesReceiptEmail(t *testing.T) {
	f := newHandlerFixture()

	order := &entity.Order{ID: "order-1"}
	f.checkout.On("SubmitOrder", mock.Anything, "buyer@example.com").Return(order, nil).Once()

	rec := f.do(t, http.MethodPost, "/api/cart/checkout", []byte(`{"email":"buyer@example.com"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	f.checkout.AssertExpectations(t)
}

func TestHandler_OrdersWithoutArchiveReturnsNotImplemented(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(t, http.MethodGet, "/api/orders", nil)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
