package builder

import "forsign-esign/internal/domain/entity"

// resolveChannels sets the notification and authentication channels of m and
// copies the contact the selected channel needs.
func resolveChannels(n Notification, a DoubleAuthentication, m *entity.Member) {
	switch n.kind {
	case notifyEmail:
		m.NotificationChannel = entity.NotificationChannelEmail
		m.Email = n.email
	case notifyNone:
		m.NotificationChannel = entity.NotificationChannelNone
	}

	var channel entity.AuthenticationChannel
	switch a.kind {
	case authNone:
		return
	case authEmail:
		channel = entity.AuthenticationChannelEmail
		m.Email = a.contact
	case authSMS:
		channel = entity.AuthenticationChannelSMS
		m.Phone = a.contact
	case authWhatsApp:
		channel = entity.AuthenticationChannelWhatsApp
		m.Phone = a.contact
	}
	m.AuthenticationChannel = &channel
}
