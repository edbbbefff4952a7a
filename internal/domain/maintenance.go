package domain

import "time"

type IssueStatus string

const (
	IssueOpen       IssueStatus = "open"
	IssueInProgress IssueStatus = "in-progress"
	IssueCompleted  IssueStatus = "completed"
)

// MaintenanceIssue is a reported problem in a room or common area.
type MaintenanceIssue struct {
	ID          string      `json:"id"`
	LocationID  string      `json:"location_id" validate:"required"`
	Description string      `json:"description" validate:"required"`
	Status      IssueStatus `json:"status"`
	AssignedTo  string      `json:"assigned_to"`
	TemplateID  string      `json:"template_id,omitempty"`
	IsRecurring bool        `json:"is_recurring"`
	ReportedAt  time.Time   `json:"reported_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type TaskFrequency string

const (
	FrequencyMonthly TaskFrequency = "monthly"
)

// RecurringTask is a template that spawns a MaintenanceIssue each time
// NextDue comes around, provided the previous one was closed.
type RecurringTask struct {
	ID          string        `json:"id"`
	Description string        `json:"description" validate:"required"`
	LocationID  string        `json:"location_id" validate:"required"`
	Frequency   TaskFrequency `json:"frequency"`
	NextDue     string        `json:"next_due"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
