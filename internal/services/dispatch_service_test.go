package services_test

import (
	"context"
	"sync"
	"testing"

	"reliefhub_backend/internal/models"
	"reliefhub_backend/internal/repositories"
	"reliefhub_backend/internal/services"
	"reliefhub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recorderNotifier captures NotifyUser calls instead of pushing to sockets.
type recorderNotifier struct {
	mu    sync.Mutex
	calls map[string]int
}

func newRecorderNotifier() *recorderNotifier {
	return &recorderNotifier{calls: make(map[string]int)}
}

func (r *recorderNotifier) NotifyUser(userID string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[userID]++
}

type dispatchFixture struct {
	db               *gorm.DB
	dispatch         services.DispatchService
	notificationRepo repositories.NotificationRepository
	profileRepo      repositories.ProfileRepository
	programRepo      repositories.ProgramRepository
	notifier         *recorderNotifier
}

func newDispatchFixture(t *testing.T) *dispatchFixture {
	db := helpers.NewTestDB(t)
	notificationRepo := repositories.NewNotificationRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	programRepo := repositories.NewProgramRepository(db)
	notifier := newRecorderNotifier()

	return &dispatchFixture{
		db:               db,
		dispatch:         services.NewDispatchService(notificationRepo, profileRepo, programRepo, notifier),
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		programRepo:      programRepo,
		notifier:         notifier,
	}
}

func (f *dispatchFixture) seedProfile(t *testing.T, name string, role models.UserRole) string {
	profile := &models.Profile{
		UserID:   "user-" + name,
		FullName: name,
		Role:     role,
	}
	require.NoError(t, f.profileRepo.Create(profile))
	return profile.UserID
}

func (f *dispatchFixture) seedProgram(t *testing.T, creatorID, title string) *models.Program {
	program := &models.Program{
		Title:        title,
		DisasterType: "flood",
		Severity:     models.SeverityRed,
		Status:       models.ProgramStatusActive,
		CreatedBy:    creatorID,
		LocationName: "Riverside District",
	}
	require.NoError(t, f.programRepo.Create(program))
	return program
}

func (f *dispatchFixture) notificationsFor(t *testing.T, userID string) []models.Notification {
	rows, err := f.notificationRepo.FindUserNotifications(userID, "")
	require.NoError(t, err)
	return rows
}

func TestProgramCreatedNotifiesAllVolunteers(t *testing.T) {
	f := newDispatchFixture(t)

	ngo := f.seedProfile(t, "Relief NGO", models.UserRoleNGO)
	vol1 := f.seedProfile(t, "Volunteer One", models.UserRoleVolunteer)
	vol2 := f.seedProfile(t, "Volunteer Two", models.UserRoleVolunteer)
	program := f.seedProgram(t, ngo, "Flood Response")

	require.NoError(t, f.dispatch.ProgramCreated(context.Background(), program))

	for _, volunteerID := range []string{vol1, vol2} {
		rows := f.notificationsFor(t, volunteerID)
		require.Len(t, rows, 1)
		assert.Equal(t, models.NotificationProgramAlert, rows[0].Type)
		assert.Equal(t, "New FLOOD relief program: Flood Response", rows[0].Message)
		require.NotNil(t, rows[0].ProgramID)
		assert.Equal(t, program.ID, *rows[0].ProgramID)
	}

	// The NGO coordinator is not a volunteer and gets nothing.
	assert.Empty(t, f.notificationsFor(t, ngo))
	assert.Equal(t, 1, f.notifier.calls[vol1])
	assert.Equal(t, 1, f.notifier.calls[vol2])
}

func TestResourceRequestedSkipsRequester(t *testing.T) {
	f := newDispatchFixture(t)

	ngo := f.seedProfile(t, "Relief NGO", models.UserRoleNGO)
	requester := f.seedProfile(t, "Requester", models.UserRoleVolunteer)
	member := f.seedProfile(t, "Member", models.UserRoleVolunteer)
	program := f.seedProgram(t, ngo, "Flood Response")

	for _, volunteerID := range []string{requester, member} {
		require.NoError(t, f.programRepo.CreateMembership(&models.ProgramMembership{
			ProgramID:   program.ID,
			VolunteerID: volunteerID,
		}))
	}

	request := &models.ResourceRequest{
		ProgramID:   program.ID,
		RequesterID: requester,
		ItemName:    "Drinking water",
		Quantity:    20,
		Status:      models.ResourceStatusPending,
	}
	require.NoError(t, f.db.Create(request).Error)

	require.NoError(t, f.dispatch.ResourceRequested(context.Background(), request))

	rows := f.notificationsFor(t, member)
	require.Len(t, rows, 1)
	assert.Equal(t, "Resource needed: Drinking water (x20) for Flood Response", rows[0].Message)
	require.NotNil(t, rows[0].ResourceRequestID)
	assert.Equal(t, request.ID, *rows[0].ResourceRequestID)

	// The requester already knows what they asked for.
	assert.Empty(t, f.notificationsFor(t, requester))
}

func TestReminderDueUsesStillNeededWording(t *testing.T) {
	f := newDispatchFixture(t)

	ngo := f.seedProfile(t, "Relief NGO", models.UserRoleNGO)
	requester := f.seedProfile(t, "Requester", models.UserRoleVolunteer)
	member := f.seedProfile(t, "Member", models.UserRoleVolunteer)
	program := f.seedProgram(t, ngo, "Flood Response")

	for _, volunteerID := range []string{requester, member} {
		require.NoError(t, f.programRepo.CreateMembership(&models.ProgramMembership{
			ProgramID:   program.ID,
			VolunteerID: volunteerID,
		}))
	}

	request := &models.ResourceRequest{
		ProgramID:   program.ID,
		RequesterID: requester,
		ItemName:    "Blankets",
		Quantity:    5,
		Status:      models.ResourceStatusPending,
	}
	require.NoError(t, f.db.Create(request).Error)

	require.NoError(t, f.dispatch.ReminderDue(context.Background(), request))

	rows := f.notificationsFor(t, member)
	require.Len(t, rows, 1)
	assert.Equal(t, "Still needed: Blankets (x5) for Flood Response", rows[0].Message)
	assert.Empty(t, f.notificationsFor(t, requester))
}

func TestEmergencyRaisedNotifiesEveryProfile(t *testing.T) {
	f := newDispatchFixture(t)

	ngo := f.seedProfile(t, "Relief NGO", models.UserRoleNGO)
	vol := f.seedProfile(t, "Volunteer", models.UserRoleVolunteer)

	emergency := &models.EmergencyRequest{
		Type:    models.EmergencyMedical,
		Lat:     51.1,
		Lng:     71.4,
		Address: "Central Square 1",
		Status:  models.EmergencyStatusPending,
	}
	require.NoError(t, f.db.Create(emergency).Error)

	require.NoError(t, f.dispatch.EmergencyRaised(context.Background(), emergency))

	for _, userID := range []string{ngo, vol} {
		rows := f.notificationsFor(t, userID)
		require.Len(t, rows, 1)
		assert.Equal(t, models.NotificationEmergency, rows[0].Type)
		assert.Equal(t, "🚨 MEDICAL emergency at Central Square 1", rows[0].Message)
		require.NotNil(t, rows[0].EmergencyID)
		assert.Equal(t, emergency.ID, *rows[0].EmergencyID)
	}
}

func TestDispatchWithNoRecipientsIsANoop(t *testing.T) {
	f := newDispatchFixture(t)

	ngo := f.seedProfile(t, "Relief NGO", models.UserRoleNGO)
	program := f.seedProgram(t, ngo, "Flood Response")

	// No volunteers registered yet.
	require.NoError(t, f.dispatch.ProgramCreated(context.Background(), program))

	var count int64
	require.NoError(t, f.db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}
