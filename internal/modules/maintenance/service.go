package maintenance

import (
	"context"
	"errors"
	"log"
	"time"

	"coliving/internal/dateutil"
	"coliving/internal/domain"
	"coliving/internal/pkg/ids"
	"coliving/internal/pkg/validator"

	"gorm.io/gorm"
)

var validIssueStatuses = map[domain.IssueStatus]bool{
	domain.IssueOpen:       true,
	domain.IssueInProgress: true,
	domain.IssueCompleted:  true,
}

type Service struct {
	issues    IssueRepository
	templates TemplateRepository
	events    Broadcaster
}

func NewService(issues IssueRepository, templates TemplateRepository, events Broadcaster) *Service {
	return &Service{issues: issues, templates: templates, events: events}
}

type ReportIssueRequest struct {
	LocationID  string `json:"location_id" binding:"required"`
	Description string `json:"description" binding:"required"`
	AssignedTo  string `json:"assigned_to"`
}

func (s *Service) ReportIssue(ctx context.Context, req ReportIssueRequest) (*domain.MaintenanceIssue, error) {
	assigned := req.AssignedTo
	if assigned == "" {
		assigned = domain.UnassignedStaff
	}
	issue := &domain.MaintenanceIssue{
		ID:          ids.New(),
		LocationID:  req.LocationID,
		Description: req.Description,
		Status:      domain.IssueOpen,
		AssignedTo:  assigned,
		ReportedAt:  time.Now(),
		UpdatedAt:   time.Now(),
	}
	if errs := validator.Validate(issue); errs != nil {
		return nil, ErrValidation
	}
	if err := s.issues.CreateIssue(ctx, issue); err != nil {
		return nil, err
	}
	s.publish("maintenance_issue", "created", issue.ID)
	return issue, nil
}

func (s *Service) ListIssues(ctx context.Context, status string) ([]domain.MaintenanceIssue, error) {
	st := domain.IssueStatus(status)
	if status != "" && !validIssueStatuses[st] {
		return nil, ErrInvalidStatus
	}
	return s.issues.ListIssues(ctx, st)
}

func (s *Service) UpdateIssueStatus(ctx context.Context, id string, status domain.IssueStatus, assignedTo string) error {
	if !validIssueStatuses[status] {
		return ErrInvalidStatus
	}
	if err := s.issues.UpdateIssueStatus(ctx, id, status, assignedTo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIssueNotFound
		}
		return err
	}
	s.publish("maintenance_issue", "updated", id)
	return nil
}

type CreateTemplateRequest struct {
	Description string `json:"description" binding:"required"`
	LocationID  string `json:"location_id" binding:"required"`
	Frequency   string `json:"frequency"`
	NextDue     string `json:"next_due" binding:"required"`
}

func (s *Service) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*domain.RecurringTask, error) {
	freq := domain.TaskFrequency(req.Frequency)
	if freq == "" {
		freq = domain.FrequencyMonthly
	}
	if freq != domain.FrequencyMonthly {
		return nil, ErrInvalidFrequency
	}
	if _, err := dateutil.ParseDate(req.NextDue); err != nil {
		return nil, ErrValidation
	}
	t := &domain.RecurringTask{
		ID:          ids.New(),
		Description: req.Description,
		LocationID:  req.LocationID,
		Frequency:   freq,
		NextDue:     req.NextDue,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if errs := validator.Validate(t); errs != nil {
		return nil, ErrValidation
	}
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	s.publish("recurring_task", "created", t.ID)
	return t, nil
}

func (s *Service) ListTemplates(ctx context.Context) ([]domain.RecurringTask, error) {
	return s.templates.List(ctx)
}

// FireDue walks the due templates sequentially and spawns an issue for each
// one without an open issue, advancing nextDue by one calendar month. Safe
// to re-run: a template whose previous issue is still open is skipped
// without touching its schedule. Returns the number of issues created.
func (s *Service) FireDue(ctx context.Context, today string) (int, error) {
	if today == "" {
		today = dateutil.FormatDate(time.Now())
	}
	due, err := s.templates.ListDue(ctx, today)
	if err != nil {
		return 0, err
	}

	fired := 0
	for _, t := range due {
		open, err := s.issues.HasOpenIssueForTemplate(ctx, t.ID)
		if err != nil {
			log.Printf("recurring_fire template_id=%s open_check_failed error=%q", t.ID, err.Error())
			continue
		}
		if open {
			continue
		}

		issue := &domain.MaintenanceIssue{
			ID:          ids.New(),
			LocationID:  t.LocationID,
			Description: t.Description,
			Status:      domain.IssueOpen,
			AssignedTo:  domain.UnassignedStaff,
			TemplateID:  t.ID,
			IsRecurring: true,
			ReportedAt:  time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := s.issues.CreateIssue(ctx, issue); err != nil {
			log.Printf("recurring_fire template_id=%s issue_create_failed error=%q", t.ID, err.Error())
			continue
		}

		next := dateutil.AddMonths(t.NextDue, 1)
		if next == "" {
			log.Printf("recurring_fire template_id=%s bad_next_due value=%q", t.ID, t.NextDue)
			continue
		}
		if err := s.templates.UpdateNextDue(ctx, t.ID, next); err != nil {
			log.Printf("recurring_fire template_id=%s advance_failed error=%q", t.ID, err.Error())
			continue
		}

		fired++
		s.publish("maintenance_issue", "created", issue.ID)
	}
	return fired, nil
}

func (s *Service) publish(entity, action, id string) {
	if s.events != nil {
		s.events.Publish(entity, action, id)
	}
}
