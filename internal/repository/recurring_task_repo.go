package repository

import (
	"context"
	"time"

	"coliving/internal/domain"

	"gorm.io/gorm"
)

type RecurringTaskRepository struct {
	db *gorm.DB
}

func NewRecurringTaskRepository(db *gorm.DB) *RecurringTaskRepository {
	return &RecurringTaskRepository{db: db}
}

type recurringTaskModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Description string    `gorm:"column:description;type:text"`
	LocationID  string    `gorm:"column:location_id"`
	Frequency   string    `gorm:"column:frequency"`
	NextDue     string    `gorm:"column:next_due;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (recurringTaskModel) TableName() string { return "recurring_tasks" }

func toDomainRecurringTask(m recurringTaskModel) domain.RecurringTask {
	return domain.RecurringTask{
		ID:          m.ID,
		Description: m.Description,
		LocationID:  m.LocationID,
		Frequency:   domain.TaskFrequency(m.Frequency),
		NextDue:     m.NextDue,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *RecurringTaskRepository) Create(ctx context.Context, t *domain.RecurringTask) error {
	m := recurringTaskModel{
		ID:          t.ID,
		Description: t.Description,
		LocationID:  t.LocationID,
		Frequency:   string(t.Frequency),
		NextDue:     t.NextDue,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = toDomainRecurringTask(m)
	return nil
}

func (r *RecurringTaskRepository) List(ctx context.Context) ([]domain.RecurringTask, error) {
	var ms []recurringTaskModel
	tx := r.db.WithContext(ctx).Order("next_due, id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRecurringTasks(ms), nil
}

// ListDue returns templates whose nextDue is on or before the given day,
// in nextDue order. Date strings compare correctly as strings.
func (r *RecurringTaskRepository) ListDue(ctx context.Context, today string) ([]domain.RecurringTask, error) {
	var ms []recurringTaskModel
	tx := r.db.WithContext(ctx).
		Where("next_due <= ?", today).
		Order("next_due, id").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRecurringTasks(ms), nil
}

func (r *RecurringTaskRepository) UpdateNextDue(ctx context.Context, id, nextDue string) error {
	tx := r.db.WithContext(ctx).Model(&recurringTaskModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"next_due": nextDue, "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func toDomainRecurringTasks(ms []recurringTaskModel) []domain.RecurringTask {
	out := make([]domain.RecurringTask, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainRecurringTask(m))
	}
	return out
}
