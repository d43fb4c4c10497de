package handler_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"customer-service/internal/domain/customer"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockCustomerService struct {
	mock.Mock
}

var _ customer.CustomerService = (*MockCustomerService)(nil)

func (_m *MockCustomerService) customerResult(ret mock.Arguments) (*customer.Customer, error) {
	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) Create(ctx context.Context, data customer.CustomerData) (*customer.Customer, error) {
	return _m.customerResult(_m.Called(ctx, data))
}

func (_m *MockCustomerService) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, bool, error) {
	ret := _m.Called(ctx, id)
	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

func (_m *MockCustomerService) Update(ctx context.Context, id uuid.UUID, data customer.CustomerData) (*customer.Customer, error) {
	return _m.customerResult(_m.Called(ctx, id, data))
}

func (_m *MockCustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *MockCustomerService) Search(ctx context.Context, criteria customer.SearchCriteria) ([]*customer.Customer, error) {
	ret := _m.Called(ctx, criteria)
	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) FindOrCreateByExternalIdentity(ctx context.Context, externalID string, data customer.CustomerData) (*customer.Customer, error) {
	return _m.customerResult(_m.Called(ctx, externalID, data))
}

func (_m *MockCustomerService) FindByExternalIdentity(ctx context.Context, externalID string) (*customer.Customer, bool, error) {
	ret := _m.Called(ctx, externalID)
	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

func (_m *MockCustomerService) UpdateByExternalIdentity(ctx context.Context, externalID string, data customer.CustomerData) (*customer.Customer, error) {
	return _m.customerResult(_m.Called(ctx, externalID, data))
}

func (_m *MockCustomerService) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	return req
}
