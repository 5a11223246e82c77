package notification

// MockNotifier records sent notifications for tests. Addresses present in
// FailFor produce the mapped error instead of a delivery.
type MockNotifier struct {
	SentNotifications []NotificationData
	FailFor           map[string]error
}

func (m *MockNotifier) Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error {
	if err, ok := m.FailFor[notification.To]; ok {
		return err
	}
	m.SentNotifications = append(m.SentNotifications, notification)
	return nil
}
