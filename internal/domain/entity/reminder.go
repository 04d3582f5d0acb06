package entity

import "time"

// Reminder priorities and recurrence types.
const (
	ReminderPriorityHigh   = "high"
	ReminderPriorityMedium = "medium"
	ReminderPriorityLow    = "low"

	RecurrenceNone    = "none"
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

// Reminder is a user task or an engine-generated insight notification.
// Completed flips via the completion toggle; Notified flips once when the
// due-scan fires, so a reminder is never announced twice.
type Reminder struct {
	ID          string
	UserID      string
	Title       string
	Description string
	DueAt       time.Time
	Priority    string
	Category    string
	Recurrence  string

	Completed bool
	Notified  bool

	CreatedAt time.Time
}
