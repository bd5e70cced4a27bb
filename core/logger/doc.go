// Package logger is a structured event log for shell sessions.
//
// Each event is written as a single JSON object per line so logs can be
// tailed and appended to by many sessions.
package logger
