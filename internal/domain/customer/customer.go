package customer

import (
	"strings"
	"time"

	"customer-service/internal/pkg/validation"

	"github.com/google/uuid"
)

type Customer struct {
	ID               uuid.UUID `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	ExternalIdentity *string   `json:"externalIdentity,omitempty"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CustomerData carries the caller-editable fields of a customer.
type CustomerData struct {
	FirstName string `json:"firstName" validate:"notblank,max=50"`
	LastName  string `json:"lastName" validate:"notblank,max=50"`
	Email     string `json:"email" validate:"notblank,max=100,email"`
}

func (d CustomerData) Validate() error {
	return validation.Struct(d)
}

func NewCustomer(data CustomerData) *Customer {
	return &Customer{
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
	}
}

func NewBoundCustomer(externalID string, data CustomerData) *Customer {
	c := NewCustomer(data)
	c.ExternalIdentity = &externalID
	return c
}

func (c *Customer) IsNew() bool {
	return c.ID == uuid.Nil
}

func (c *Customer) IsBound() bool {
	return c.ExternalIdentity != nil
}

// Apply replaces the editable fields. ID and ExternalIdentity are left alone.
func (c *Customer) Apply(data CustomerData) {
	c.FirstName = data.FirstName
	c.LastName = data.LastName
	c.Email = data.Email
}

func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	cp := *c
	if c.ExternalIdentity != nil {
		ext := *c.ExternalIdentity
		cp.ExternalIdentity = &ext
	}
	return &cp
}

type SearchCriteria struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (sc SearchCriteria) IsEmpty() bool {
	return sc.FirstName == "" && sc.LastName == "" && sc.Email == ""
}

// Matches reports whether every non-empty filter is a case-insensitive
// substring of the corresponding field.
func (sc SearchCriteria) Matches(c *Customer) bool {
	if c == nil {
		return false
	}
	return containsFold(c.FirstName, sc.FirstName) &&
		containsFold(c.LastName, sc.LastName) &&
		containsFold(c.Email, sc.Email)
}

func containsFold(value, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
}
