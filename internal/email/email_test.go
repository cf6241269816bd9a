package email

import (
	"testing"
	"time"

	"github.com/avetrov/facilityhub/internal/kafka"
	"github.com/stretchr/testify/assert"
)

func testEvent(tag string) kafka.BookingEvent {
	return kafka.BookingEvent{
		Type:      "booking_rejected",
		Reference: "ref-1",
		Email:     "sam@example.com",
		BookedOn:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:  "10:00 - 11:00",
		Tag:       tag,
	}
}

func TestContent_EveryTagHasTemplate(t *testing.T) {
	for _, tag := range []Tag{TagPending, TagSystemApproved, TagAdminApproved, TagRejected, TagCancelled} {
		subject, body, err := Content(testEvent(string(tag)))
		assert.NoError(t, err, "tag %s", tag)
		assert.NotEmpty(t, subject)
		assert.Contains(t, body, "ref-1")
		assert.Contains(t, body, "2024-02-01 10:00 - 11:00")
	}
}

func TestContent_ApprovalVariantsDiffer(t *testing.T) {
	_, system, err := Content(testEvent(string(TagSystemApproved)))
	assert.NoError(t, err)
	_, admin, err := Content(testEvent(string(TagAdminApproved)))
	assert.NoError(t, err)
	assert.NotEqual(t, system, admin)
}

func TestContent_RefundMentionedOnTerminalStates(t *testing.T) {
	for _, tag := range []Tag{TagRejected, TagCancelled} {
		_, body, err := Content(testEvent(string(tag)))
		assert.NoError(t, err)
		assert.Contains(t, body, "refunded")
	}
}

func TestContent_UnknownTag(t *testing.T) {
	_, _, err := Content(testEvent("CONFIRMED"))
	assert.Error(t, err)
}
