// Package rentflow implements the renter's payment collection flow: a
// strictly linear wizard from meter photo to electricity bill to a payment
// destination.
package rentflow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Step is the wizard's current position.
type Step int

const (
	StepIdle Step = iota
	StepMeter
	StepBill
	StepDestination
)

func (s Step) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepMeter:
		return "meter"
	case StepBill:
		return "bill"
	case StepDestination:
		return "destination"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

var (
	ErrNotIdle         = errors.New("a payment flow is already in progress")
	ErrWrongStep       = errors.New("step not reachable from the current state")
	ErrAlreadyAdvanced = errors.New("meter step already completed for this flow")
	ErrInvalidAmount   = errors.New("electricity amount must be a non-negative number")
)

// Flow is one payment collection attempt. Steps gate each other: destination
// is only reachable through meter and bill, exactly once each. Cancel from
// any step discards everything and returns to idle.
type Flow struct {
	step Step

	rentAmount  float64
	electricity float64
	total       float64

	// Latch: meter→bill may advance at most once per flow instance, even if
	// the completion event fires twice.
	meterDone bool
}

// New returns a flow at idle.
func New() *Flow {
	return &Flow{step: StepIdle}
}

// Step returns the current step.
func (f *Flow) Step() Step { return f.step }

// Total returns the computed payable amount. Valid once the bill step has
// completed.
func (f *Flow) Total() float64 { return f.total }

// Electricity returns the entered electricity amount.
func (f *Flow) Electricity() float64 { return f.electricity }

// Start begins the flow for the given monthly rent. Only legal from idle.
func (f *Flow) Start(rentAmount float64) error {
	if f.step != StepIdle {
		return ErrNotIdle
	}
	if rentAmount < 0 {
		return fmt.Errorf("%w: rent %.2f", ErrInvalidAmount, rentAmount)
	}
	f.rentAmount = rentAmount
	f.electricity = 0
	f.total = 0
	f.meterDone = false
	f.step = StepMeter
	return nil
}

// CompleteMeter advances from the meter step to the bill step, either because
// a meter photo was uploaded or because the renter chose to let the owner
// calculate. Duplicate completion events are rejected by the latch.
func (f *Flow) CompleteMeter() error {
	if f.step != StepMeter {
		return fmt.Errorf("%w: complete meter from %s", ErrWrongStep, f.step)
	}
	if f.meterDone {
		return ErrAlreadyAdvanced
	}
	f.meterDone = true
	f.step = StepBill
	return nil
}

// EnterBill records the electricity amount and computes the final total.
// Empty input means no electricity charge; negative or non-numeric input is
// rejected and the flow stays on the bill step.
func (f *Flow) EnterBill(electricity string) error {
	if f.step != StepBill {
		return fmt.Errorf("%w: enter bill from %s", ErrWrongStep, f.step)
	}

	amount := 0.0
	if s := strings.TrimSpace(electricity); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidAmount, electricity)
		}
		if v < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidAmount, electricity)
		}
		amount = v
	}

	f.electricity = amount
	f.total = f.rentAmount + amount
	f.step = StepDestination
	return nil
}

// Cancel aborts the flow from any step. All in-progress amounts are
// discarded; nothing persists across a cancel.
func (f *Flow) Cancel() {
	*f = Flow{step: StepIdle}
}

// Fail records a destination failure (upload error, network error, provider
// cancellation) and returns the flow to idle.
func (f *Flow) Fail() {
	f.Cancel()
}

// RetryDestination re-enters the flow at the start of the destination step
// after an explicit "Try Again", keeping the previously computed amounts.
// The meter and bill steps are not repeated.
func (f *Flow) RetryDestination(rentAmount, electricity float64) error {
	if f.step != StepIdle {
		return ErrNotIdle
	}
	if rentAmount < 0 || electricity < 0 {
		return ErrInvalidAmount
	}
	f.rentAmount = rentAmount
	f.electricity = electricity
	f.total = rentAmount + electricity
	f.meterDone = true
	f.step = StepDestination
	return nil
}
