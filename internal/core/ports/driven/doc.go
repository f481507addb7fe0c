// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SearchAPI: the external search endpoint
//   - AdminAPI: the job-code admin resource
//   - SearchLogAPI: the read-only search log
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Recognizer: speech-to-text. Without it, only typed input is offered.
//   - Confirmer: when nil, destructive actions are refused.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
