package email

import (
	"context"
	"fmt"

	"github.com/avetrov/facilityhub/internal/kafka"
)

// Tag names the notification variant of a lifecycle transition. Approvals
// split into system- and admin-initiated variants even though both land on
// the same booking status.
type Tag string

const (
	TagPending        Tag = "PENDING"
	TagSystemApproved Tag = "SYSTEMAPPROVED"
	TagAdminApproved  Tag = "ADMINAPPROVED"
	TagRejected       Tag = "REJECTED"
	TagCancelled      Tag = "CANCELLED"
)

type template struct {
	subject string
	body    string
}

// templates is the fixed tag-to-content table, built once at startup and
// looked up per event. Unknown tags fall through to an error rather than a
// generic message.
var templates = map[Tag]template{
	TagPending: {
		subject: "Booking request received",
		body:    "Your booking for %s on %s is awaiting approval.",
	},
	TagSystemApproved: {
		subject: "Booking approved",
		body:    "Your booking for %s on %s was approved automatically.",
	},
	TagAdminApproved: {
		subject: "Booking approved",
		body:    "Your booking for %s on %s was approved by an administrator.",
	},
	TagRejected: {
		subject: "Booking rejected",
		body:    "Your booking for %s on %s was rejected. The deducted credit has been refunded.",
	},
	TagCancelled: {
		subject: "Booking cancelled",
		body:    "Your booking for %s on %s was cancelled. The deducted credit has been refunded.",
	},
}

// Content renders the subject and body for a booking event.
func Content(event kafka.BookingEvent) (subject, body string, err error) {
	tpl, ok := templates[Tag(event.Tag)]
	if !ok {
		return "", "", fmt.Errorf("no email template for tag %q", event.Tag)
	}
	when := fmt.Sprintf("%s %s", event.BookedOn.Format("2006-01-02"), event.TimeSlot)
	return tpl.subject, fmt.Sprintf(tpl.body, event.Reference, when), nil
}

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	subject, body, err := Content(event)
	if err != nil {
		return err
	}
	fmt.Printf("send email to %s: %s - %s\n", event.Email, subject, body)
	return nil
}
