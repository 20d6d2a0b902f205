package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"checkout/internal/core/domain/services"
	"checkout/internal/core/domain/services/discount"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// Processing step names, used in wrapped errors and metrics.
const (
	StepCharge    = "charge"
	StepSave      = "save"
	StepNotify    = "notify"
	StepTrack     = "track"
	StepBackup    = "backup"
	StepLifecycle = "lifecycle"
)

// ProcessOrderCommandHandler is the order processor. It only sequences calls:
// pricing lives in the discount policy, charging in the gateway and every other
// side effect behind a port.
//
//	handler, err := NewProcessOrderCommandHandler(
//	    discount.PaypalDiscount{}, paypalGateway, collaborators, countries, metrics, logger)
//	cmd, _ := NewProcessOrderCommand(o)
//	result, err := handler.Handle(ctx, cmd)
//	// result.Total is 19.6 for a single {price: 10, quantity: 2} line
type ProcessOrderCommandHandler struct {
	policy        discount.Policy
	gateway       ports.PaymentGateway
	collaborators Collaborators
	countries     services.CountryPolicy
	metrics       ports.OrderMetrics
	logger        *slog.Logger
}

// NewProcessOrderCommandHandler checks that every dependency is present.
func NewProcessOrderCommandHandler(
	policy discount.Policy,
	gateway ports.PaymentGateway,
	collaborators Collaborators,
	countries services.CountryPolicy,
	metrics ports.OrderMetrics,
	logger *slog.Logger,
) (ProcessOrderCommandHandler, error) {
	var err error
	if policy == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("discount policy"))
	}
	if gateway == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("payment gateway"))
	}
	if countriesErr := countries.Validate(); countriesErr != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("country policy", countriesErr))
	}
	if metrics == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("order metrics"))
	}
	if logger == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("logger"))
	}
	if err = errors.Join(err, collaborators.Validate()); err != nil {
		return ProcessOrderCommandHandler{}, err
	}

	return ProcessOrderCommandHandler{
		policy:        policy,
		gateway:       gateway,
		collaborators: collaborators,
		countries:     countries,
		metrics:       metrics,
		logger:        logger.With("component", "order_processor"),
	}, nil
}

// Handle runs New -> Processing -> Done for the command's order:
//  1. reject unsupported countries before anything changes
//  2. start processing
//  3. subtotal = Σ price × quantity, total = policy(subtotal)
//  4. charge the total
//  5. save, notify, track, backup, in that order
//  6. finish
//
// Once the charge succeeds the remaining steps ignore cancellation of ctx.
// Steps are not atomic and nothing is compensated: an error from charge, save,
// notify or backup is returned as is and leaves the order in Processing. Track
// errors are recorded in the result and logged, never returned.
func (h ProcessOrderCommandHandler) Handle(ctx context.Context, cmd ProcessOrderCommand) (ProcessOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProcessOrderResult{}, err
	}

	o := cmd.Order()
	result := ProcessOrderResult{OrderID: o.ID(), Status: o.Status()}
	logger := h.logger.With("order_id", o.ID().String())

	if err := h.countries.Check(o.Country()); err != nil {
		return result, err
	}

	if err := o.Start(); err != nil {
		return result, h.fail(ctx, logger, StepLifecycle, err)
	}
	result.Status = o.Status()

	result.Subtotal = o.Subtotal()
	result.Total = h.policy.Apply(result.Subtotal)

	receipt, err := h.gateway.Charge(ctx, o.ID(), result.Total)
	if err != nil {
		return result, h.fail(ctx, logger, StepCharge, err)
	}
	result.Charge = receipt
	result.record(fmt.Sprintf("Charged via %s: %s", h.gateway.Name(), result.Total))

	// The customer has paid: the remaining steps must not be cut short by the caller.
	ctx = context.WithoutCancel(ctx)

	if err = h.collaborators.Repository.Save(ctx, o, result.Total); err != nil {
		return result, h.fail(ctx, logger, StepSave, err)
	}
	result.record("Order saved")

	if err = h.collaborators.Notifier.Notify(ctx, o, result.Total); err != nil {
		return result, h.fail(ctx, logger, StepNotify, err)
	}
	result.record("Customer notified")

	if err = h.collaborators.Analytics.Track(ctx, o); err != nil {
		h.metrics.StepFailed(StepTrack)
		logger.WarnContext(ctx, "Analytics tracking failed, continuing", "error", err)
		result.Analytics = AnalyticsOutcome{Err: err}
		result.record("Failed to post analytics")
	} else {
		result.Analytics = AnalyticsOutcome{Delivered: true}
		result.record("Analytics posted")
	}

	if err = h.collaborators.Backup.Backup(ctx, o); err != nil {
		return result, h.fail(ctx, logger, StepBackup, err)
	}
	result.record("Backup updated")

	if err = o.Finish(); err != nil {
		return result, h.fail(ctx, logger, StepLifecycle, err)
	}
	result.Status = o.Status()

	h.metrics.OrderProcessed(h.gateway.Name(), result.Total)
	logger.InfoContext(ctx, "Order processed",
		"subtotal", result.Subtotal.String(),
		"total", result.Total.String(),
		"transaction_id", receipt.TransactionID,
		"analytics_delivered", result.Analytics.Delivered,
	)

	return result, nil
}

func (h ProcessOrderCommandHandler) fail(
	ctx context.Context,
	logger *slog.Logger,
	step string,
	err error,
) error {
	h.metrics.StepFailed(step)
	logger.ErrorContext(ctx, "Order processing step failed", "step", step, "error", err)
	return fmt.Errorf("%s: %w", step, err)
}
