package workers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"reliefhub_backend/internal/models"
	"reliefhub_backend/internal/repositories"
	"reliefhub_backend/internal/services"
	"reliefhub_backend/internal/workers"
	"reliefhub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type countingNotifier struct {
	mu    sync.Mutex
	calls int
}

func (c *countingNotifier) NotifyUser(userID string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
}

type sweepFixture struct {
	db           *gorm.DB
	worker       *workers.ReminderWorker
	resourceRepo repositories.ResourceRequestRepository
	programRepo  repositories.ProgramRepository
	memberID     string
	requesterID  string
	programID    string
}

func newSweepFixture(t *testing.T, staleness time.Duration) *sweepFixture {
	db := helpers.NewTestDB(t)
	notificationRepo := repositories.NewNotificationRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	programRepo := repositories.NewProgramRepository(db)
	resourceRepo := repositories.NewResourceRequestRepository(db)

	dispatch := services.NewDispatchService(notificationRepo, profileRepo, programRepo, &countingNotifier{})
	worker := workers.NewReminderWorker(resourceRepo, dispatch, time.Hour, staleness)

	require.NoError(t, profileRepo.Create(&models.Profile{
		UserID: "requester-1", FullName: "Requester", Role: models.UserRoleVolunteer,
	}))
	require.NoError(t, profileRepo.Create(&models.Profile{
		UserID: "member-1", FullName: "Member", Role: models.UserRoleVolunteer,
	}))

	program := &models.Program{
		Title:        "Flood Response",
		DisasterType: "flood",
		Severity:     models.SeverityRed,
		Status:       models.ProgramStatusActive,
		CreatedBy:    "ngo-1",
	}
	require.NoError(t, programRepo.Create(program))

	for _, volunteerID := range []string{"requester-1", "member-1"} {
		require.NoError(t, programRepo.CreateMembership(&models.ProgramMembership{
			ProgramID:   program.ID,
			VolunteerID: volunteerID,
		}))
	}

	return &sweepFixture{
		db:           db,
		worker:       worker,
		resourceRepo: resourceRepo,
		programRepo:  programRepo,
		memberID:     "member-1",
		requesterID:  "requester-1",
		programID:    program.ID,
	}
}

func (f *sweepFixture) seedRequest(t *testing.T, age time.Duration, status models.ResourceRequestStatus) *models.ResourceRequest {
	request := &models.ResourceRequest{
		ProgramID:   f.programID,
		RequesterID: f.requesterID,
		ItemName:    "Water filters",
		Quantity:    4,
		Status:      status,
	}
	request.CreatedAt = time.Now().Add(-age)
	require.NoError(t, f.db.Create(request).Error)
	return request
}

func (f *sweepFixture) reminderCount(t *testing.T, userID string) int {
	var count int64
	require.NoError(t, f.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, models.NotificationResourceRequest).
		Count(&count).Error)
	return int(count)
}

func TestSweepRemindsStalePendingRequests(t *testing.T) {
	f := newSweepFixture(t, 10*time.Minute)
	request := f.seedRequest(t, 30*time.Minute, models.ResourceStatusPending)

	f.worker.Sweep(context.Background())

	assert.Equal(t, 1, f.reminderCount(t, f.memberID))
	assert.Equal(t, 0, f.reminderCount(t, f.requesterID), "requester is never reminded of their own request")

	stored, err := f.resourceRepo.FindByID(request.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastNotifiedAt, "sweep records when it last notified")
}

func TestSweepIsIdempotentWithinWindow(t *testing.T) {
	f := newSweepFixture(t, 10*time.Minute)
	f.seedRequest(t, 30*time.Minute, models.ResourceStatusPending)

	ctx := context.Background()
	f.worker.Sweep(ctx)
	f.worker.Sweep(ctx)

	assert.Equal(t, 1, f.reminderCount(t, f.memberID), "a freshly reminded request is no longer stale")
}

func TestSweepSkipsFreshAndNonPendingRequests(t *testing.T) {
	f := newSweepFixture(t, 10*time.Minute)
	f.seedRequest(t, time.Minute, models.ResourceStatusPending)
	f.seedRequest(t, 30*time.Minute, models.ResourceStatusProviding)
	f.seedRequest(t, 30*time.Minute, models.ResourceStatusCompleted)

	f.worker.Sweep(context.Background())

	assert.Equal(t, 0, f.reminderCount(t, f.memberID))
}
