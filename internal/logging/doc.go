// Package logging provides structured logging for bonitahooks using slog.
//
// Hook dispatch writes its advisory warnings to stderr, which is also where
// logs go. The default level is therefore Warn and the dispatcher only logs
// at Debug, so a plain hook run never mixes log lines into the warning stream.
//
// # Setup
//
// [Setup] builds the process logger from CLI options: a colour-aware text
// handler (or JSON) on the primary writer and, optionally, a JSON file sink
// combined through [MultiHandler].
//
// # Testing
//
// Use [ForTest] to route log output through the testing framework and
// [NewDiscard] where output should be suppressed entirely.
package logging
