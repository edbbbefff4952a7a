package maintenance

import (
	"context"

	"coliving/internal/domain"
)

type IssueRepository interface {
	CreateIssue(ctx context.Context, issue *domain.MaintenanceIssue) error
	GetIssue(ctx context.Context, id string) (*domain.MaintenanceIssue, error)
	ListIssues(ctx context.Context, status domain.IssueStatus) ([]domain.MaintenanceIssue, error)
	UpdateIssueStatus(ctx context.Context, id string, status domain.IssueStatus, assignedTo string) error
	HasOpenIssueForTemplate(ctx context.Context, templateID string) (bool, error)
}

type TemplateRepository interface {
	Create(ctx context.Context, t *domain.RecurringTask) error
	List(ctx context.Context) ([]domain.RecurringTask, error)
	ListDue(ctx context.Context, today string) ([]domain.RecurringTask, error)
	UpdateNextDue(ctx context.Context, id, nextDue string) error
}

// Broadcaster pushes an entity-change event to connected dashboard
// sessions after a successful mutation.
type Broadcaster interface {
	Publish(entity, action, id string)
}
