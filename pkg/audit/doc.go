// Package audit provides audit logging for RecallKit operations.
//
// Events are written to stdout in RFC5424 syslog format and, when
// AUDIT_DATABASE_URL is set, persisted to the messages table.
//
// # Event Types
//
//   - Topic uploads and deletions
//   - Progress document updates and resets
//   - Card reviews
//   - Rejected API tokens
//
// # Usage
//
//	audit.Log(audit.ReviewEvent{Actor: id.Name(), Profile: "alice", CardID: cardID, Correct: true})
//
// Set RECALLKIT_AUDIT_ENABLED=false to disable audit output entirely.
package audit
