// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used by the publisher and the notification consumer.
const (
	OTPQueueName     = "notification.otp"
	ContactQueueName = "contact.message"
)

// OTPIssuedEvent is published when a signup generates a verification code.
// No mail provider is integrated; downstream consumers (currently the
// in-process notification consumer, eventually a mail service) deliver
// the code out-of-band.
type OTPIssuedEvent struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	IssuedAt string `json:"issued_at"`
}

// ContactMessageEvent carries a contact-form submission. The service keeps
// no contact state; the event is the only record besides the operational log.
type ContactMessageEvent struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Message    string `json:"message"`
	ReceivedAt string `json:"received_at"`
}
