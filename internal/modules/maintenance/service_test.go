package maintenance

import (
	"context"
	"testing"

	"coliving/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockIssueRepository struct {
	mock.Mock
}

func (m *MockIssueRepository) CreateIssue(ctx context.Context, issue *domain.MaintenanceIssue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockIssueRepository) GetIssue(ctx context.Context, id string) (*domain.MaintenanceIssue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceIssue), args.Error(1)
}

func (m *MockIssueRepository) ListIssues(ctx context.Context, status domain.IssueStatus) ([]domain.MaintenanceIssue, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MaintenanceIssue), args.Error(1)
}

func (m *MockIssueRepository) UpdateIssueStatus(ctx context.Context, id string, status domain.IssueStatus, assignedTo string) error {
	args := m.Called(ctx, id, status, assignedTo)
	return args.Error(0)
}

func (m *MockIssueRepository) HasOpenIssueForTemplate(ctx context.Context, templateID string) (bool, error) {
	args := m.Called(ctx, templateID)
	return args.Bool(0), args.Error(1)
}

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, t *domain.RecurringTask) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTemplateRepository) List(ctx context.Context) ([]domain.RecurringTask, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringTask), args.Error(1)
}

func (m *MockTemplateRepository) ListDue(ctx context.Context, today string) ([]domain.RecurringTask, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringTask), args.Error(1)
}

func (m *MockTemplateRepository) UpdateNextDue(ctx context.Context, id, nextDue string) error {
	args := m.Called(ctx, id, nextDue)
	return args.Error(0)
}

func TestReportIssue_Defaults(t *testing.T) {
	issues := new(MockIssueRepository)
	templates := new(MockTemplateRepository)
	svc := NewService(issues, templates, nil)

	issues.On("CreateIssue", mock.Anything, mock.MatchedBy(func(i *domain.MaintenanceIssue) bool {
		return i.LocationID == "cn-101" &&
			i.Status == domain.IssueOpen &&
			i.AssignedTo == domain.UnassignedStaff &&
			!i.IsRecurring &&
			i.ID != ""
	})).Return(nil)

	issue, err := svc.ReportIssue(context.Background(), ReportIssueRequest{
		LocationID:  "cn-101",
		Description: "Leaking tap",
	})

	require.NoError(t, err)
	assert.Equal(t, "Leaking tap", issue.Description)
	issues.AssertExpectations(t)
}

func TestReportIssue_Validation(t *testing.T) {
	svc := NewService(new(MockIssueRepository), new(MockTemplateRepository), nil)

	_, err := svc.ReportIssue(context.Background(), ReportIssueRequest{Description: "no location"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListIssues_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(new(MockIssueRepository), new(MockTemplateRepository), nil)

	_, err := svc.ListIssues(context.Background(), "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateIssueStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(new(MockIssueRepository), new(MockTemplateRepository), nil)

	err := svc.UpdateIssueStatus(context.Background(), "i1", "done", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCreateTemplate_MonthlyDefault(t *testing.T) {
	issues := new(MockIssueRepository)
	templates := new(MockTemplateRepository)
	svc := NewService(issues, templates, nil)

	templates.On("Create", mock.Anything, mock.MatchedBy(func(task *domain.RecurringTask) bool {
		return task.Frequency == domain.FrequencyMonthly && task.NextDue == "2024-04-01"
	})).Return(nil)

	task, err := svc.CreateTemplate(context.Background(), CreateTemplateRequest{
		Description: "Boiler pressure check",
		LocationID:  "casa-norte",
		NextDue:     "2024-04-01",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.FrequencyMonthly, task.Frequency)
	templates.AssertExpectations(t)
}

func TestCreateTemplate_RejectsNonMonthlyFrequency(t *testing.T) {
	svc := NewService(new(MockIssueRepository), new(MockTemplateRepository), nil)

	_, err := svc.CreateTemplate(context.Background(), CreateTemplateRequest{
		Description: "Filter swap",
		LocationID:  "casa-norte",
		Frequency:   "weekly",
		NextDue:     "2024-04-01",
	})
	assert.ErrorIs(t, err, ErrInvalidFrequency)
}

func TestCreateTemplate_RejectsMissingLocation(t *testing.T) {
	svc := NewService(new(MockIssueRepository), new(MockTemplateRepository), nil)

	_, err := svc.CreateTemplate(context.Background(), CreateTemplateRequest{
		Description: "Filter swap",
		NextDue:     "2024-04-01",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateTemplate_RejectsBadDueDate(t *testing.T) {
	svc := NewService(new(MockIssueRepository), new(MockTemplateRepository), nil)

	_, err := svc.CreateTemplate(context.Background(), CreateTemplateRequest{
		Description: "Filter swap",
		LocationID:  "casa-norte",
		NextDue:     "April 1st",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFireDue_SpawnsIssueAndAdvancesSchedule(t *testing.T) {
	issues := new(MockIssueRepository)
	templates := new(MockTemplateRepository)
	svc := NewService(issues, templates, nil)

	due := []domain.RecurringTask{
		{ID: "t1", Description: "Boiler pressure check", LocationID: "casa-norte", Frequency: domain.FrequencyMonthly, NextDue: "2024-03-01"},
	}
	templates.On("ListDue", mock.Anything, "2024-03-05").Return(due, nil)
	issues.On("HasOpenIssueForTemplate", mock.Anything, "t1").Return(false, nil)
	issues.On("CreateIssue", mock.Anything, mock.MatchedBy(func(i *domain.MaintenanceIssue) bool {
		return i.TemplateID == "t1" &&
			i.IsRecurring &&
			i.Status == domain.IssueOpen &&
			i.AssignedTo == domain.UnassignedStaff &&
			i.Description == "Boiler pressure check"
	})).Return(nil)
	templates.On("UpdateNextDue", mock.Anything, "t1", "2024-04-01").Return(nil)

	fired, err := svc.FireDue(context.Background(), "2024-03-05")

	require.NoError(t, err)
	assert.Equal(t, 1, fired)
	issues.AssertExpectations(t)
	templates.AssertExpectations(t)
}

func TestFireDue_SkipsTemplateWithOpenIssue(t *testing.T) {
	issues := new(MockIssueRepository)
	templates := new(MockTemplateRepository)
	svc := NewService(issues, templates, nil)

	due := []domain.RecurringTask{
		{ID: "t1", Description: "Boiler pressure check", LocationID: "casa-norte", NextDue: "2024-03-01"},
	}
	templates.On("ListDue", mock.Anything, "2024-03-05").Return(due, nil)
	issues.On("HasOpenIssueForTemplate", mock.Anything, "t1").Return(true, nil)

	fired, err := svc.FireDue(context.Background(), "2024-03-05")

	require.NoError(t, err)
	assert.Equal(t, 0, fired)
	issues.AssertNotCalled(t, "CreateIssue", mock.Anything, mock.Anything)
	templates.AssertNotCalled(t, "UpdateNextDue", mock.Anything, mock.Anything, mock.Anything)
}

func TestFireDue_MonthEndRollover(t *testing.T) {
	issues := new(MockIssueRepository)
	templates := new(MockTemplateRepository)
	svc := NewService(issues, templates, nil)

	due := []domain.RecurringTask{
		{ID: "t1", Description: "Deep clean", LocationID: "casa-sur", NextDue: "2024-01-31"},
	}
	templates.On("ListDue", mock.Anything, "2024-01-31").Return(due, nil)
	issues.On("HasOpenIssueForTemplate", mock.Anything, "t1").Return(false, nil)
	issues.On("CreateIssue", mock.Anything, mock.Anything).Return(nil)
	// January 31 plus one month rolls over past February.
	templates.On("UpdateNextDue", mock.Anything, "t1", "2024-03-02").Return(nil)

	fired, err := svc.FireDue(context.Background(), "2024-01-31")

	require.NoError(t, err)
	assert.Equal(t, 1, fired)
	templates.AssertExpectations(t)
}

func TestFireDue_ContinuesAfterPerTemplateFailure(t *testing.T) {
	issues := new(MockIssueRepository)
	templates := new(MockTemplateRepository)
	svc := NewService(issues, templates, nil)

	due := []domain.RecurringTask{
		{ID: "t1", Description: "Broken date", LocationID: "casa-norte", NextDue: "bogus"},
		{ID: "t2", Description: "Boiler pressure check", LocationID: "casa-norte", NextDue: "2024-03-01"},
	}
	templates.On("ListDue", mock.Anything, "2024-03-05").Return(due, nil)
	issues.On("HasOpenIssueForTemplate", mock.Anything, mock.Anything).Return(false, nil)
	issues.On("CreateIssue", mock.Anything, mock.Anything).Return(nil)
	templates.On("UpdateNextDue", mock.Anything, "t2", "2024-04-01").Return(nil)

	fired, err := svc.FireDue(context.Background(), "2024-03-05")

	require.NoError(t, err)
	// t1 cannot advance its schedule so it does not count as fired.
	assert.Equal(t, 1, fired)
	templates.AssertExpectations(t)
}
