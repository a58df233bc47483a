package invoice

import (
	"fmt"
	"time"

	"github.com/boostline-inc/boostline/internal/shared/biztime"
	"github.com/boostline-inc/boostline/internal/shared/id"
)

type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "draft"
	StatusIssued  InvoiceStatus = "issued"
	StatusPaid    InvoiceStatus = "paid"
	StatusVoid    InvoiceStatus = "void"
	StatusOverdue InvoiceStatus = "overdue"
)

var validStatuses = map[InvoiceStatus]bool{
	StatusDraft:   true,
	StatusIssued:  true,
	StatusPaid:    true,
	StatusVoid:    true,
	StatusOverdue: true,
}

func (s InvoiceStatus) String() string {
	return string(s)
}

// Invoice is a billing document. An invoice may only be deleted while no
// payments reference it; the use case layer enforces that guard through
// the ledger.
type Invoice struct {
	invID         uint
	userID        uint
	invoiceNumber string
	status        InvoiceStatus
	version       int
	createdAt     time.Time
	updatedAt     time.Time
}

// NewInvoice creates a draft invoice with a generated unique number.
func NewInvoice(userID uint) (*Invoice, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	now := biztime.NowUTC()
	body, err := id.Generate(8)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice number: %w", err)
	}
	number := fmt.Sprintf("INV-%d-%s", now.Year(), body)

	return &Invoice{
		userID:        userID,
		invoiceNumber: number,
		status:        StatusDraft,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructInvoice rebuilds an invoice from persistence.
func ReconstructInvoice(invID, userID uint, invoiceNumber string, status InvoiceStatus,
	version int, createdAt, updatedAt time.Time) (*Invoice, error) {

	if invID == 0 {
		return nil, fmt.Errorf("invoice ID cannot be zero")
	}
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid invoice status: %s", status)
	}

	return &Invoice{
		invID:         invID,
		userID:        userID,
		invoiceNumber: invoiceNumber,
		status:        status,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (i *Invoice) ID() uint              { return i.invID }
func (i *Invoice) UserID() uint          { return i.userID }
func (i *Invoice) InvoiceNumber() string { return i.invoiceNumber }
func (i *Invoice) Status() InvoiceStatus { return i.status }
func (i *Invoice) Version() int          { return i.version }
func (i *Invoice) CreatedAt() time.Time  { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time  { return i.updatedAt }

func (i *Invoice) SetID(invID uint) {
	i.invID = invID
}

func (i *Invoice) Issue() error {
	if i.status != StatusDraft {
		return fmt.Errorf("only draft invoices can be issued, status is %s", i.status)
	}
	i.status = StatusIssued
	i.touch()
	return nil
}

func (i *Invoice) MarkAsPaid() error {
	if i.status != StatusIssued && i.status != StatusOverdue {
		return fmt.Errorf("cannot mark invoice as paid with status %s", i.status)
	}
	i.status = StatusPaid
	i.touch()
	return nil
}

func (i *Invoice) MarkAsOverdue() error {
	if i.status != StatusIssued {
		return fmt.Errorf("only issued invoices can become overdue, status is %s", i.status)
	}
	i.status = StatusOverdue
	i.touch()
	return nil
}

func (i *Invoice) Void() error {
	if i.status == StatusPaid {
		return fmt.Errorf("paid invoices cannot be voided")
	}
	if i.status == StatusVoid {
		return nil
	}
	i.status = StatusVoid
	i.touch()
	return nil
}

func (i *Invoice) touch() {
	i.updatedAt = biztime.NowUTC()
	i.version++
}
