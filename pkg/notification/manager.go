package notification

import (
	"fmt"
)

// NotificationSystem represents a type of notification system (e.g., email, SMS).
type NotificationSystem string

// NoticeType represents a type of notice (e.g., "user_invite").
type NoticeType string

const (
	EmailSystem NotificationSystem = "email"

	// UserInviteNotice is the invitation email sent to each invited handle.
	UserInviteNotice NoticeType = "user_invite"
	// InviteConfirmationNotice is the summary email sent back to the inviter.
	InviteConfirmationNotice NoticeType = "invite_confirmation"

	ExampleNotice NoticeType = "example"
)

// NoticeTemplate holds the subject and body templates for one notice.
// Text and Html are Go template sources; either may be empty.
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

// NotificationManager manages notifiers and notice templates.
type NotificationManager struct {
	notifiers            map[NotificationSystem]Notifier
	notificationRegistry map[NoticeType]map[NotificationSystem]NoticeTemplate
}

// NewNotificationManager creates and returns a new NotificationManager.
func NewNotificationManager() *NotificationManager {
	return &NotificationManager{
		notifiers:            make(map[NotificationSystem]Notifier),
		notificationRegistry: make(map[NoticeType]map[NotificationSystem]NoticeTemplate),
	}
}

// RegisterNotifier registers a notifier for a specific system.
func (nm *NotificationManager) RegisterNotifier(system NotificationSystem, notifier Notifier) {
	nm.notifiers[system] = notifier
}

// RegisterNotification adds a notice template to the registry.
func (nm *NotificationManager) RegisterNotification(notifType NoticeType, system NotificationSystem, template NoticeTemplate) error {
	if notifType == "" || system == "" {
		return fmt.Errorf("invalid input: notification type and system cannot be empty")
	}
	if template.Text == "" && template.Html == "" {
		return fmt.Errorf("invalid input: template must define a Text or Html body")
	}

	if _, exists := nm.notificationRegistry[notifType]; !exists {
		nm.notificationRegistry[notifType] = make(map[NotificationSystem]NoticeTemplate)
	}

	nm.notificationRegistry[notifType][system] = template
	return nil
}

// Send sends a notification using the registered template for the given
// notice type and system.
func (nm *NotificationManager) Send(notifType NoticeType, system NotificationSystem, notification NotificationData) error {
	return nm.SendWithTemplate(notifType, system, notification, NoticeTemplate{})
}

// SendWithTemplate sends a notification, overriding the registered template
// with any non-empty fields of override. Settings-managed subjects and bodies
// take precedence over the embedded defaults this way.
func (nm *NotificationManager) SendWithTemplate(notifType NoticeType, system NotificationSystem, notification NotificationData, override NoticeTemplate) error {
	systemTemplates, exists := nm.notificationRegistry[notifType]
	if !exists {
		return fmt.Errorf("no templates registered for notification type: %s", notifType)
	}

	template, exists := systemTemplates[system]
	if !exists {
		return fmt.Errorf("no template registered for system: %s under notification type: %s", system, notifType)
	}

	if override.Subject != "" {
		template.Subject = override.Subject
	}
	if override.Text != "" {
		template.Text = override.Text
		template.Html = ""
	}
	if override.Html != "" {
		template.Html = override.Html
	}

	notifier, exists := nm.notifiers[system]
	if !exists {
		return fmt.Errorf("no notifier registered for system: %s", system)
	}

	return notifier.Send(notifType, notification, template)
}
