package partner

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/supplychain/backend/internal/domain/shared"
)

// Supplier represents a goods supplier in the partner context
// It is the aggregate root for supplier-related operations
type Supplier struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	ContactPerson string          `gorm:"type:varchar(100)"`
	Phone         string          `gorm:"type:varchar(50);index"`
	Email         string          `gorm:"type:varchar(200);index"`
	Address       string          `gorm:"type:text"`
	City          string          `gorm:"type:varchar(100)"`
	Country       string          `gorm:"type:varchar(100)"`
	TaxID         string          `gorm:"type:varchar(50)"`
	PaymentTerms  string          `gorm:"type:varchar(100)"` // e.g. "Net 30"
	CreditLimit   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Rating        int             `gorm:"not null;default:0;check:rating >= 0"` // 0-5
	Notes         string          `gorm:"type:text"`
	IsActive      bool            `gorm:"not null;default:true"`
	IsPreferred   bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(name string) (*Supplier, error) {
	if err := validateSupplierName(name); err != nil {
		return nil, err
	}

	supplier := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CreditLimit:       decimal.Zero,
		IsActive:          true,
	}

	supplier.AddDomainEvent(NewSupplierCreatedEvent(supplier))

	return supplier, nil
}

// Update updates the supplier's name and notes
func (s *Supplier) Update(name, notes string) error {
	if err := validateSupplierName(name); err != nil {
		return err
	}

	s.Name = name
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierUpdatedEvent(s))

	return nil
}

// SetContact sets the supplier's contact information
func (s *Supplier) SetContact(contactPerson, phone, email string) error {
	if contactPerson != "" && len(contactPerson) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	s.ContactPerson = contactPerson
	s.Phone = phone
	s.Email = email
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetAddress sets the supplier's address information
func (s *Supplier) SetAddress(address, city, country string) error {
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	if city != "" && len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}
	if country != "" && len(country) > 100 {
		return shared.NewDomainError("INVALID_COUNTRY", "Country cannot exceed 100 characters")
	}

	s.Address = address
	s.City = city
	s.Country = country
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetTaxID sets the supplier's tax identification number
func (s *Supplier) SetTaxID(taxID string) error {
	if taxID != "" && len(taxID) > 50 {
		return shared.NewDomainError("INVALID_TAX_ID", "Tax ID cannot exceed 50 characters")
	}

	s.TaxID = taxID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetPaymentTerms sets the supplier's payment terms and credit limit
func (s *Supplier) SetPaymentTerms(terms string, creditLimit decimal.Decimal) error {
	if terms != "" && len(terms) > 100 {
		return shared.NewDomainError("INVALID_PAYMENT_TERMS", "Payment terms cannot exceed 100 characters")
	}
	if creditLimit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	s.PaymentTerms = terms
	s.CreditLimit = creditLimit
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetRating sets the supplier's rating
func (s *Supplier) SetRating(rating int) error {
	if rating < 0 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 0 and 5")
	}

	s.Rating = rating
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// MarkPreferred marks the supplier as preferred
func (s *Supplier) MarkPreferred() {
	s.IsPreferred = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// UnmarkPreferred removes the preferred flag from the supplier
func (s *Supplier) UnmarkPreferred() {
	s.IsPreferred = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate activates the supplier
func (s *Supplier) Activate() error {
	if s.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Supplier is already active")
	}

	s.IsActive = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate deactivates the supplier
func (s *Supplier) Deactivate() error {
	if !s.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Supplier is already inactive")
	}

	s.IsActive = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// validateSupplierName validates the supplier name
func validateSupplierName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return nil
}

// validatePhone validates a phone number
func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	return nil
}

// validateEmail validates an email address
func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Email must contain @")
	}
	return nil
}
