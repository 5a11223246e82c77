package notification

import (
	"errors"
	"testing"
)

func TestNewNotificationManager(t *testing.T) {
	nm := NewNotificationManager()
	if nm == nil {
		t.Error("NewNotificationManager returned nil")
	}
	if nm.notifiers == nil {
		t.Error("notifiers map not initialized")
	}
	if nm.notificationRegistry == nil {
		t.Error("notificationRegistry map not initialized")
	}
}

func TestRegisterNotifier(t *testing.T) {
	nm := NewNotificationManager()
	mockNotifier := &MockNotifier{}

	nm.RegisterNotifier(EmailSystem, mockNotifier)
	if n, exists := nm.notifiers[EmailSystem]; !exists {
		t.Error("Notifier not registered")
	} else if n != mockNotifier {
		t.Error("Wrong notifier registered")
	}

	// Test overwriting existing notifier
	newMockNotifier := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, newMockNotifier)
	if n := nm.notifiers[EmailSystem]; n != newMockNotifier {
		t.Error("Notifier not overwritten")
	}
}

func TestRegisterNotification(t *testing.T) {
	nm := NewNotificationManager()

	tests := []struct {
		name        string
		notifType   NoticeType
		system      NotificationSystem
		template    NoticeTemplate
		shouldError bool
	}{
		{
			name:        "Valid registration with both Text and Html",
			notifType:   ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example", Text: "example", Html: "<p>example</p>"},
			shouldError: false,
		},
		{
			name:        "Valid registration with Text only",
			notifType:   ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example", Text: "example"},
			shouldError: false,
		},
		{
			name:        "Empty notification type",
			notifType:   "",
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example", Text: "example"},
			shouldError: true,
		},
		{
			name:        "Empty system",
			notifType:   ExampleNotice,
			system:      "",
			template:    NoticeTemplate{Subject: "Example", Text: "example"},
			shouldError: true,
		},
		{
			name:        "Empty template body",
			notifType:   ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example"},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := nm.RegisterNotification(tt.notifType, tt.system, tt.template)
			if tt.shouldError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSend(t *testing.T) {
	nm := NewNotificationManager()
	mock := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, mock)

	err := nm.RegisterNotification(UserInviteNotice, EmailSystem, NoticeTemplate{
		Subject: "You have been invited",
		Text:    "Hello {{.Handle}}",
	})
	if err != nil {
		t.Fatalf("RegisterNotification failed: %v", err)
	}

	// Unregistered notice type
	err = nm.Send(InviteConfirmationNotice, EmailSystem, NotificationData{To: "a@example.edu"})
	if err == nil {
		t.Error("expected error for unregistered notice type")
	}

	// Registered notice type
	err = nm.Send(UserInviteNotice, EmailSystem, NotificationData{To: "a@example.edu"})
	if err != nil {
		t.Errorf("Send failed: %v", err)
	}
	if len(mock.SentNotifications) != 1 {
		t.Fatalf("expected 1 sent notification, got %d", len(mock.SentNotifications))
	}
	if mock.SentNotifications[0].To != "a@example.edu" {
		t.Errorf("wrong recipient: %s", mock.SentNotifications[0].To)
	}
}

func TestSendFailureInjection(t *testing.T) {
	nm := NewNotificationManager()
	sendErr := errors.New("smtp unavailable")
	mock := &MockNotifier{FailFor: map[string]error{"bad@example.edu": sendErr}}
	nm.RegisterNotifier(EmailSystem, mock)

	err := nm.RegisterNotification(UserInviteNotice, EmailSystem, NoticeTemplate{
		Subject: "You have been invited",
		Text:    "Hello",
	})
	if err != nil {
		t.Fatalf("RegisterNotification failed: %v", err)
	}

	err = nm.Send(UserInviteNotice, EmailSystem, NotificationData{To: "bad@example.edu"})
	if !errors.Is(err, sendErr) {
		t.Errorf("expected injected error, got %v", err)
	}
	if len(mock.SentNotifications) != 0 {
		t.Errorf("failed send should not be recorded, got %d", len(mock.SentNotifications))
	}
}
