package dto

import "time"

// AchievementDTO one achievement with its unlock state for a user.
type AchievementDTO struct {
	Code        string     `json:"code"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// ReminderRequest body of POST /api/reminders.
type ReminderRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueAt       time.Time `json:"due_at"`
	Priority    string    `json:"priority"`
	Category    string    `json:"category"`
	Recurrence  string    `json:"recurrence,omitempty"`
}

// ReminderResponse public view of a reminder.
type ReminderResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueAt       time.Time `json:"due_at"`
	Priority    string    `json:"priority"`
	Category    string    `json:"category"`
	Recurrence  string    `json:"recurrence"`
	Completed   bool      `json:"completed"`
	Notified    bool      `json:"notified"`
}
