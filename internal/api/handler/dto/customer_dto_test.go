package dto

import (
	"strings"
	"testing"
	"time"

	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"customer-service/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CustomerRequest
		details map[string]string
	}{
		{
			name: "valid",
			req:  CustomerRequest{FirstName: "John", LastName: "Doe", Email: "john@example.com"},
		},
		{
			name: "all blank",
			req:  CustomerRequest{FirstName: " ", LastName: "", Email: ""},
			details: map[string]string{
				"firstName": "is required",
				"lastName":  "is required",
				"email":     "is required",
			},
		},
		{
			name:    "bad email",
			req:     CustomerRequest{FirstName: "John", LastName: "Doe", Email: "not-an-email"},
			details: map[string]string{"email": "must be a valid email"},
		},
		{
			name:    "long first name",
			req:     CustomerRequest{FirstName: strings.Repeat("a", 51), LastName: "Doe", Email: "john@example.com"},
			details: map[string]string{"firstName": "must be at most 50 characters long"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.details == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, tt.details, validation.ToDetails(err))
		})
	}
}

func TestCustomerRequest_ToData(t *testing.T) {
	req := CustomerRequest{FirstName: "John", LastName: "Doe", Email: "john@example.com"}

	assert.Equal(t, customer.CustomerData{FirstName: "John", LastName: "Doe", Email: "john@example.com"}, req.ToData())
}

func TestSearchCustomersRequest_ToCriteria(t *testing.T) {
	req := SearchCustomersRequest{LastName: "do"}

	criteria := req.ToCriteria()
	assert.Equal(t, customer.SearchCriteria{LastName: "do"}, criteria)
	assert.False(t, criteria.IsEmpty())
}

func TestNewCustomerResponse(t *testing.T) {
	assert.Equal(t, CustomerResponse{}, NewCustomerResponse(nil))

	ext := "octocat"
	now := time.Now()
	cust := &customer.Customer{
		ID:               uuid.New(),
		FirstName:        "Octo",
		LastName:         "Cat",
		Email:            "octo@example.com",
		ExternalIdentity: &ext,
		Version:          3,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	resp := NewCustomerResponse(cust)
	assert.Equal(t, cust.ID.String(), resp.ID)
	assert.Equal(t, "Octo", resp.FirstName)
	assert.Equal(t, &ext, resp.ExternalIdentity)
	assert.Equal(t, int64(3), resp.Version)

	list := NewCustomerListResponse([]*customer.Customer{cust, cust})
	require.Len(t, list, 2)
	assert.Equal(t, resp, list[1])
	assert.NotNil(t, NewCustomerListResponse(nil))
}

func TestTokenRequest_Validate(t *testing.T) {
	assert.NoError(t, (&TokenRequest{Username: "admin", Password: "admin"}).Validate())

	err := (&TokenRequest{}).Validate()
	require.Error(t, err)
	assert.Equal(t, map[string]string{"username": "is required", "password": "is required"}, validation.ToDetails(err))
}
