// Package sessionlog writes session-scoped, line-oriented log files with a
// bordered header and footer.
//
// Invariants:
// - A session is an explicit handle; operations after End return ErrSessionClosed.
// - The header's "When generated" line is a parse contract: End recovers the
//   start time from disk, so label, spacing, and timestamp format never change.
// - Entry lines render as "<timestamp>; <CAT>; <message>" with second precision.
// - Writes for the same handle are serialized; files are opened in append mode.
//
// Usage:
//
//	meta, _ := sessionlog.CollectMetadata()
//	s, _ := sessionlog.Begin("/tmp/run.log", meta)
//	_ = s.Log(sessionlog.INF, "starting work")
//	summary, _ := s.End()
//	_ = summary
package sessionlog
