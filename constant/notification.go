package constant

// NotificationKind identifies a lifecycle event delivered to buyer or seller.
type NotificationKind string

const (
	NotifyRequested       NotificationKind = "requested"
	NotifyApproved        NotificationKind = "approved"
	NotifyRejected        NotificationKind = "rejected"
	NotifyCancelRequested NotificationKind = "cancel-requested"
	NotifyCancelApproved  NotificationKind = "cancel-approved"
	NotifyCancelRejected  NotificationKind = "cancel-rejected"
	NotifyConfirmed       NotificationKind = "confirmed"
	NotifyReminder3Day    NotificationKind = "reminder-3day"
	NotifyAutoConfirm7Day NotificationKind = "auto-confirmed-7day"
)
