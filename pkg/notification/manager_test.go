package notification_test

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/idle-reminder/pkg/interfaces"
	"github.com/Veraticus/idle-reminder/pkg/notification"
	"github.com/Veraticus/idle-reminder/pkg/testutil"
)

// recordingReporter tracks the reported status sequence
type recordingReporter struct {
	events []string
}

func (r *recordingReporter) ReportSending() { r.events = append(r.events, "sending") }
func (r *recordingReporter) ReportSuccess() { r.events = append(r.events, "success") }
func (r *recordingReporter) ReportFailure() { r.events = append(r.events, "failure") }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestManager_Send(t *testing.T) {
	tests := []struct {
		name              string
		rateLimiter       *testutil.MockRateLimiter
		notifierError     error
		wantErr           bool
		wantAttempts      int
		wantDelivered     int
		wantReportEvents  []string
		wantLimiterCalled int
	}{
		{
			name:             "successful send without rate limiter",
			wantAttempts:     1,
			wantDelivered:    1,
			wantReportEvents: []string{"sending", "success"},
		},
		{
			name:              "allowed by rate limiter",
			rateLimiter:       testutil.NewMockRateLimiter(true),
			wantAttempts:      1,
			wantDelivered:     1,
			wantReportEvents:  []string{"sending", "success"},
			wantLimiterCalled: 1,
		},
		{
			name:              "rate limited",
			rateLimiter:       testutil.NewMockRateLimiter(false),
			wantAttempts:      0,
			wantDelivered:     0,
			wantLimiterCalled: 1,
		},
		{
			name:             "notifier error",
			notifierError:    errors.New("send failed"),
			wantErr:          true,
			wantAttempts:     1,
			wantDelivered:    0,
			wantReportEvents: []string{"sending", "failure"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := testutil.NewMockNotifier()
			notifier.SetError(tt.notifierError)
			reporter := &recordingReporter{}

			var limiter interfaces.RateLimiter
			if tt.rateLimiter != nil {
				limiter = tt.rateLimiter
			}
			manager := notification.NewManager(notifier, limiter, discardLogger())
			manager.SetStatusReporter(reporter)

			err := manager.Send(notification.Notification{Title: "Test", Message: "Test message", Kind: notification.KindBreak})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.Len(t, notifier.GetAttempts(), tt.wantAttempts)
			assert.Len(t, notifier.GetNotifications(), tt.wantDelivered)
			assert.Equal(t, tt.wantReportEvents, reporter.events)
			if tt.rateLimiter != nil {
				assert.Equal(t, tt.wantLimiterCalled, tt.rateLimiter.GetAllowCount())
			}
		})
	}
}

func TestManager_SendWithoutReporter(t *testing.T) {
	notifier := testutil.NewMockNotifier()
	manager := notification.NewManager(notifier, nil, discardLogger())

	require.NoError(t, manager.Send(notification.Notification{Title: "Test"}))
	assert.Len(t, notifier.GetNotifications(), 1)
}

func TestManager_ConcurrentSend(t *testing.T) {
	notifier := testutil.NewMockNotifier()
	manager := notification.NewManager(notifier, notification.NewTokenBucketRateLimiter(10, 0), discardLogger())

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = manager.Send(notification.Notification{Title: "Test"})
		}()
	}
	wg.Wait()

	assert.Len(t, notifier.GetNotifications(), 10)
}
