// Package commands contains the operations that change order state.
// Each command is a guarded value object paired with a handler exposing
// Handle(ctx, cmd).
package commands

import (
	"errors"

	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// Collaborators groups the side-effecting ports invoked after a successful charge,
// in the order the processor calls them.
type Collaborators struct {
	Repository ports.OrderRepository
	Notifier   ports.NotificationService
	Analytics  ports.AnalyticsService
	Backup     ports.BackupService
}

// Validate reports every missing collaborator at once.
func (c Collaborators) Validate() error {
	var err error
	if c.Repository == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("order repository"))
	}
	if c.Notifier == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("notification service"))
	}
	if c.Analytics == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("analytics service"))
	}
	if c.Backup == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("backup service"))
	}
	return err
}
