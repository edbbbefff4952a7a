package repository

import (
	"context"
	"time"

	"coliving/internal/domain"

	"gorm.io/gorm"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

type maintenanceIssueModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	LocationID  string    `gorm:"column:location_id;index"`
	Description string    `gorm:"column:description;type:text"`
	Status      string    `gorm:"column:status;index"`
	AssignedTo  string    `gorm:"column:assigned_to"`
	TemplateID  *string   `gorm:"column:template_id;index"`
	IsRecurring bool      `gorm:"column:is_recurring"`
	ReportedAt  time.Time `gorm:"column:reported_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (maintenanceIssueModel) TableName() string { return "maintenance_issues" }

func toDomainIssue(m maintenanceIssueModel) domain.MaintenanceIssue {
	return domain.MaintenanceIssue{
		ID:          m.ID,
		LocationID:  m.LocationID,
		Description: m.Description,
		Status:      domain.IssueStatus(m.Status),
		AssignedTo:  m.AssignedTo,
		TemplateID:  strValue(m.TemplateID),
		IsRecurring: m.IsRecurring,
		ReportedAt:  m.ReportedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *MaintenanceRepository) CreateIssue(ctx context.Context, issue *domain.MaintenanceIssue) error {
	m := maintenanceIssueModel{
		ID:          issue.ID,
		LocationID:  issue.LocationID,
		Description: issue.Description,
		Status:      string(issue.Status),
		AssignedTo:  issue.AssignedTo,
		TemplateID:  strPtr(issue.TemplateID),
		IsRecurring: issue.IsRecurring,
		ReportedAt:  issue.ReportedAt,
		UpdatedAt:   issue.UpdatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*issue = toDomainIssue(m)
	return nil
}

func (r *MaintenanceRepository) GetIssue(ctx context.Context, id string) (*domain.MaintenanceIssue, error) {
	var m maintenanceIssueModel
	tx := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	issue := toDomainIssue(m)
	return &issue, nil
}

// ListIssues returns issues newest first, optionally filtered by status.
func (r *MaintenanceRepository) ListIssues(ctx context.Context, status domain.IssueStatus) ([]domain.MaintenanceIssue, error) {
	q := r.db.WithContext(ctx).Order("reported_at DESC, id")
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	var ms []maintenanceIssueModel
	if tx := q.Find(&ms); tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.MaintenanceIssue, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainIssue(m))
	}
	return out, nil
}

func (r *MaintenanceRepository) UpdateIssueStatus(ctx context.Context, id string, status domain.IssueStatus, assignedTo string) error {
	updates := map[string]any{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if assignedTo != "" {
		updates["assigned_to"] = assignedTo
	}
	tx := r.db.WithContext(ctx).Model(&maintenanceIssueModel{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasOpenIssueForTemplate reports whether a recurring template still has an
// unfinished issue, which blocks the next firing.
func (r *MaintenanceRepository) HasOpenIssueForTemplate(ctx context.Context, templateID string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&maintenanceIssueModel{}).
		Where("template_id = ? AND status <> ?", templateID, string(domain.IssueCompleted)).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
