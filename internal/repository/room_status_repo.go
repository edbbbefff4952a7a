package repository

import (
	"context"
	"time"

	"coliving/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomStatusRepository struct {
	db *gorm.DB
}

func NewRoomStatusRepository(db *gorm.DB) *RoomStatusRepository {
	return &RoomStatusRepository{db: db}
}

type roomStatusModel struct {
	RoomID     string    `gorm:"column:room_id;primaryKey"`
	Status     string    `gorm:"column:status"`
	AssignedTo string    `gorm:"column:assigned_to"`
	Priority   int       `gorm:"column:priority"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (roomStatusModel) TableName() string { return "room_statuses" }

func toDomainRoomStatus(m roomStatusModel) domain.RoomStatus {
	return domain.RoomStatus{
		RoomID:     m.RoomID,
		Status:     domain.HousekeepingStatus(m.Status),
		AssignedTo: m.AssignedTo,
		Priority:   m.Priority,
		UpdatedAt:  m.UpdatedAt,
	}
}

// GetAll returns the stored status map keyed by room id. Rooms with no row
// are implicitly clean.
func (r *RoomStatusRepository) GetAll(ctx context.Context) (map[string]domain.RoomStatus, error) {
	var ms []roomStatusModel
	tx := r.db.WithContext(ctx).Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make(map[string]domain.RoomStatus, len(ms))
	for _, m := range ms {
		out[m.RoomID] = toDomainRoomStatus(m)
	}
	return out, nil
}

func (r *RoomStatusRepository) Get(ctx context.Context, roomID string) (*domain.RoomStatus, error) {
	var m roomStatusModel
	tx := r.db.WithContext(ctx).First(&m, "room_id = ?", roomID)
	if tx.Error != nil {
		return nil, tx.Error
	}
	s := toDomainRoomStatus(m)
	return &s, nil
}

// Upsert overwrites the room's stored housekeeping state.
func (r *RoomStatusRepository) Upsert(ctx context.Context, s domain.RoomStatus) error {
	m := roomStatusModel{
		RoomID:     s.RoomID,
		Status:     string(s.Status),
		AssignedTo: s.AssignedTo,
		Priority:   s.Priority,
		UpdatedAt:  time.Now(),
	}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "assigned_to", "priority", "updated_at"}),
	}).Create(&m)
	return tx.Error
}

// MarkClean resets the room to the canonical clean baseline.
func (r *RoomStatusRepository) MarkClean(ctx context.Context, roomID string) error {
	return r.Upsert(ctx, domain.CleanBaseline(roomID))
}
