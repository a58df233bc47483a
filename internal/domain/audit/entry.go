// Package audit records privileged state-changing actions. Entries are
// immutable: the repository exposes Create and List only, never Update or
// Delete.
package audit

import (
	"fmt"
	"time"

	"github.com/boostline-inc/boostline/internal/shared/biztime"
)

// Actions recorded by the billing engine.
const (
	ActionSubscriptionCreated      = "subscription.created"
	ActionSubscriptionCancelled    = "subscription.cancelled"
	ActionPaymentRefunded          = "payment.refunded"
	ActionRefundReconcileRequired  = "payment.refund_reconcile_required"
	ActionRemoteCancelFailed       = "subscription.remote_cancel_failed"
	ActionUserDeleted              = "user.deleted"
	ActionPlanCreated              = "plan.created"
	ActionPlanUpdated              = "plan.updated"
	ActionPlanDeleted              = "plan.deleted"
	ActionInvoiceDeleted           = "invoice.deleted"
	ActionVerificationEmailResent  = "verification.email_resent"
)

// Entry is one immutable audit record.
type Entry struct {
	entryID    uint
	userID     uint
	action     string
	entityType string
	entityID   string
	details    map[string]interface{}
	createdAt  time.Time
}

func NewEntry(userID uint, action, entityType, entityID string, details map[string]interface{}) (*Entry, error) {
	if action == "" {
		return nil, fmt.Errorf("audit action is required")
	}
	if entityType == "" {
		return nil, fmt.Errorf("audit entity type is required")
	}
	if details == nil {
		details = make(map[string]interface{})
	}

	return &Entry{
		userID:     userID,
		action:     action,
		entityType: entityType,
		entityID:   entityID,
		details:    details,
		createdAt:  biztime.NowUTC(),
	}, nil
}

// ReconstructEntry rebuilds an entry from persistence.
func ReconstructEntry(entryID, userID uint, action, entityType, entityID string,
	details map[string]interface{}, createdAt time.Time) *Entry {

	if details == nil {
		details = make(map[string]interface{})
	}
	return &Entry{
		entryID:    entryID,
		userID:     userID,
		action:     action,
		entityType: entityType,
		entityID:   entityID,
		details:    details,
		createdAt:  createdAt,
	}
}

func (e *Entry) ID() uint                         { return e.entryID }
func (e *Entry) UserID() uint                     { return e.userID }
func (e *Entry) Action() string                   { return e.action }
func (e *Entry) EntityType() string               { return e.entityType }
func (e *Entry) EntityID() string                 { return e.entityID }
func (e *Entry) Details() map[string]interface{}  { return e.details }
func (e *Entry) CreatedAt() time.Time             { return e.createdAt }

func (e *Entry) SetID(entryID uint) {
	e.entryID = entryID
}
