// Package queue defines message payloads exchanged over the message
// broker and the background consumer that audits them.
package queue

// Queue names used for ticket lifecycle events.  Both queues are
// declared durable by publisher and consumer alike.
const (
	TicketPurchasedQueue = "ticket.purchased"
	TicketRedeemedQueue  = "ticket.redeemed"
)

// TicketEvent is published when a ticket is purchased or redeemed.
// It carries enough denormalized context for downstream consumers
// (notifications, analytics, the audit log) to act without querying
// the primary database.  EventID is a UUID assigned at publish time.
type TicketEvent struct {
	EventID    string `json:"event_id"`
	TicketID   uint64 `json:"ticket_id"`
	UserID     uint64 `json:"user_id"`
	SessionID  uint64 `json:"session_id"`
	MovieName  string `json:"movie_name"`
	Date       string `json:"date"`      // session calendar date, YYYY-MM-DD
	TimeSlot   string `json:"time_slot"` // canonical "HH:MM-HH:MM" range
	OccurredAt string `json:"occurred_at"`
}
