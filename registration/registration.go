// Package registration is the public self-service page where exhibitors sign
// up for an open event.
package registration

import (
	"context"
	"fmt"

	"boothbuzz-admin/event"
	"boothbuzz-admin/exhibitor"
	"boothbuzz-admin/logger"
	"boothbuzz-admin/model"
	"boothbuzz-admin/store"
	"boothbuzz-admin/twilio"
	"boothbuzz-admin/validate"
)

type Registration struct {
	events     *event.Event
	exhibitors *exhibitor.Exhibitor
	sms        twilio.Sender
}

// New returns the registration service. sms may be twilio.Noop.
func New(client store.Client, sms twilio.Sender) *Registration {
	return &Registration{
		events:     event.New(client, nil),
		exhibitors: exhibitor.New(client),
		sms:        sms,
	}
}

// Open reports whether visitors may see and register for e.
func Open(e model.Event) bool {
	return e.Status == model.EventPublished || e.Status == model.EventOngoing
}

// Event returns the public summary of an open event. Drafts, completed and
// cancelled events are reported as missing.
func (r *Registration) Event(ctx context.Context, eventID string) (model.PublicEvent, error) {
	e, err := r.events.Get(ctx, eventID)
	if err != nil {
		return model.PublicEvent{}, err
	}
	if !Open(e) {
		logger.Infof(ctx, "Event: %s is %s and not open for registration", eventID, e.Status)
		return model.PublicEvent{}, &store.NoRowsError{Entity: "event", Op: "get"}
	}
	return model.NewPublicEvent(e), nil
}

// Prepare fixes the fields a visitor may not choose.
func Prepare(eventID string, in model.Exhibitor) model.Exhibitor {
	in.EventID = eventID
	in.PaymentStatus = model.PaymentPending
	in.Status = model.StatusActive
	if in.BoothSize == "" {
		in.BoothSize = model.BoothSmall
	}
	return in
}

// Register stores the exhibitor against an open event and sends a
// confirmation SMS. A failed SMS is logged; the registration stands.
func (r *Registration) Register(ctx context.Context, eventID string, in model.Exhibitor) (model.Exhibitor, error) {
	ev, err := r.Event(ctx, eventID)
	if err != nil {
		return model.Exhibitor{}, err
	}
	in = Prepare(eventID, in)
	if err := validate.Exhibitor(in); err != nil {
		return model.Exhibitor{}, err
	}

	created, err := r.exhibitors.Create(ctx, in)
	if err != nil {
		return model.Exhibitor{}, err
	}
	r.confirm(ctx, ev, created)
	return created, nil
}

func (r *Registration) confirm(ctx context.Context, ev model.PublicEvent, ex model.Exhibitor) {
	if r.sms == nil || ex.Phone == "" {
		return
	}
	msg := fmt.Sprintf("Hi %s, %s is registered for %s on %s. Booth: %s. Payment: %s.",
		ex.ContactPerson, ex.CompanyName, ev.Title, ev.EventDate, ex.BoothSize, ex.PaymentStatus)
	sid, err := r.sms.Send(ctx, ex.Phone, msg)
	if err != nil {
		logger.Warnf(ctx, "confirm: sms to exhibitor %s failed: %v", ex.ID, err)
		return
	}
	logger.Debugf(ctx, "confirm: sms %s sent to exhibitor %s", sid, ex.ID)
}
