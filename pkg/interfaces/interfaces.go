// Package interfaces defines the core interfaces used throughout the application.
package interfaces

import "time"

// IdleSource reports how long the user has been away from keyboard and mouse.
type IdleSource interface {
	IdleDuration() (time.Duration, error)
}

// TitleSink receives the status text shown on the tray icon.
type TitleSink interface {
	SetTitle(title string)
	SetTooltip(tooltip string)
}

// SoundPlayer plays the reminder sound without waiting for it to finish.
type SoundPlayer interface {
	Play() error
	Close() error
}

// RateLimiter limits notification frequency.
type RateLimiter interface {
	Allow() bool
	Reset()
}

// StatusReporter reports notification delivery status.
type StatusReporter interface {
	ReportSending()
	ReportSuccess()
	ReportFailure()
}
