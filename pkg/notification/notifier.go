package notification

// NotificationData carries the per-message fields handed to a Notifier.
type NotificationData struct {
	To      string            // Recipient identifier (e.g., email address)
	ReplyTo string            // Optional: Reply-To address for email notifications
	Subject string            // Optional: Subject override
	Data    map[string]string // Template data used when rendering the notice template
}

// Notifier delivers a rendered notice through one notification system.
type Notifier interface {
	Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error
}
