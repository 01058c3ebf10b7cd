package model

import "time"

// Ticket is a customer's claim on exactly one session.  A session can
// sell at most one ticket (`tickets.session_id` is unique), so the
// presence of any row means the session is full.  The only mutation a
// ticket ever sees is the single false -> true flip of IsRedeemed at
// the theatre door.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – customer who bought the ticket.
//  SessionID  – session the ticket admits to.
//  IsRedeemed – whether the ticket has been used.
//  CreatedAt  – purchase timestamp.
//  UpdatedAt  – last update timestamp.
type Ticket struct {
	ID         uint64    // tickets.id
	UserID     uint64    // tickets.user_id
	SessionID  uint64    // tickets.session_id
	IsRedeemed bool      // tickets.is_redeemed
	CreatedAt  time.Time // tickets.created_at
	UpdatedAt  time.Time // tickets.updated_at
}
