package models

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationAssignment NotificationType = "Assignment"
	NotificationGrade      NotificationType = "Grade"
	NotificationClass      NotificationType = "Class"
	NotificationGeneral    NotificationType = "General"
)

// Notification is delivered to student sessions over the notification stream.
type Notification struct {
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"isRead"`
	CreatedAt string           `json:"createdAt"`
	UserID    string           `json:"userId"`
}
