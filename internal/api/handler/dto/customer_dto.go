package dto

import (
	"time"

	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/validation"
)

type CustomerRequest struct {
	FirstName string `json:"firstName" validate:"notblank,max=50" example:"John"`
	LastName  string `json:"lastName" validate:"notblank,max=50" example:"Doe"`
	Email     string `json:"email" validate:"notblank,max=100,email" example:"john.doe@example.com"`
}

func (r *CustomerRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CustomerRequest) ToData() customer.CustomerData {
	return customer.CustomerData{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
}

// SearchCustomersRequest holds optional substring filters. Empty fields match everything.
type SearchCustomersRequest struct {
	FirstName string `json:"firstName,omitempty" example:"jo"`
	LastName  string `json:"lastName,omitempty" example:"do"`
	Email     string `json:"email,omitempty" example:"example.com"`
}

func (r *SearchCustomersRequest) ToCriteria() customer.SearchCriteria {
	return customer.SearchCriteria{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
}

type CustomerResponse struct {
	ID               string    `json:"id" example:"5b0f3c9e-8f0a-4a53-9d1e-2b8e3f9d7c11"`
	FirstName        string    `json:"firstName" example:"John"`
	LastName         string    `json:"lastName" example:"Doe"`
	Email            string    `json:"email" example:"john.doe@example.com"`
	ExternalIdentity *string   `json:"externalIdentity,omitempty" example:"auth0|12345"`
	Version          int64     `json:"version" example:"1"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	return CustomerResponse{
		ID:               cust.ID.String(),
		FirstName:        cust.FirstName,
		LastName:         cust.LastName,
		Email:            cust.Email,
		ExternalIdentity: cust.ExternalIdentity,
		Version:          cust.Version,
		CreatedAt:        cust.CreatedAt,
		UpdatedAt:        cust.UpdatedAt,
	}
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	resp := make([]CustomerResponse, len(customers))
	for i, cust := range customers {
		resp[i] = NewCustomerResponse(cust)
	}
	return resp
}
