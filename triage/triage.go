// Package triage applies operator actions to complaints.
package triage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rashtra/rashtra-api/models"
	"github.com/rashtra/rashtra-api/notify"
)

// ErrInvalidTransition rejects a status change the state machine does not allow
var ErrInvalidTransition = errors.New("invalid status transition")

// Store is the slice of the complaint store triage needs
type Store interface {
	FindByID(ctx context.Context, id string) (*models.Complaint, error)
	UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) error
	Delete(ctx context.Context, id string) error
}

// Auditor appends to the admin activity log
type Auditor interface {
	Append(ctx context.Context, activity models.AdminActivityType, details string) (string, error)
}

// Service runs operator actions. Callers must already be authorized as admin.
type Service struct {
	Store    Store
	Audit    Auditor
	Notifier notify.WorkOrderNotifier
}

// New returns a Service. A nil notifier drops work orders.
func New(store Store, audit Auditor, notifier notify.WorkOrderNotifier) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Service{Store: store, Audit: audit, Notifier: notifier}
}

// Transition moves complaint id to status to and returns the updated complaint
func (s *Service) Transition(ctx context.Context, id string, to models.ComplaintStatus) (*models.Complaint, error) {
	complaint, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	t, ok := lookupTransition(complaint.Status, to)
	if !ok {
		return nil, fmt.Errorf("%w: from %q to %q", ErrInvalidTransition, complaint.Status, to)
	}

	if err = s.Store.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	from := complaint.Status
	complaint.Status = to
	zap.S().Infow("complaint status changed", "id", id, "from", from, "to", to)

	if t.audited {
		if _, err = s.Audit.Append(ctx, models.ActivityRepairOrder, repairOrderDetails(id, to)); err != nil {
			return nil, fmt.Errorf("failed to record repair order: %w", err)
		}
	}

	if to == models.StatusAssigned {
		if err := s.Notifier.WorkOrder(ctx, *complaint); err != nil {
			zap.S().Warnw("work order notification failed", "id", id, "error", err)
		}
	}
	return complaint, nil
}

// Verify confirms a complaint from the waiting list
func (s *Service) Verify(ctx context.Context, id string) (*models.Complaint, error) {
	return s.Transition(ctx, id, models.StatusAutoVerified)
}

// Assign dispatches workers to a verified complaint
func (s *Service) Assign(ctx context.Context, id string) (*models.Complaint, error) {
	return s.Transition(ctx, id, models.StatusAssigned)
}

// MarkRepaired closes an assigned complaint
func (s *Service) MarkRepaired(ctx context.Context, id string) (*models.Complaint, error) {
	return s.Transition(ctx, id, models.StatusRepaired)
}

// Delete removes the complaint for good and records a DELETE_CASE entry
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	zap.S().Infow("complaint deleted", "id", id)
	if _, err := s.Audit.Append(ctx, models.ActivityDeleteCase, "Deleted case "+id); err != nil {
		return fmt.Errorf("failed to record deletion: %w", err)
	}
	return nil
}

func repairOrderDetails(id string, to models.ComplaintStatus) string {
	if to == models.StatusRepaired {
		return "Marked repaired: " + id
	}
	return "Assigned workers for " + id
}
