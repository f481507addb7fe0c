// Package services implements the driving port interfaces.
// Services contain the core behaviour of the job-code lookup client and
// orchestrate calls to driven ports (adapters).
//
// SearchSession is the single writer of the search state. AdminService and
// SearchLogService proxy the admin resources. VoiceInput wraps an optional
// speech recogniser.
package services
