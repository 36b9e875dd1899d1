package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phoneindex/phoneindex-backend/internal/models"
	"github.com/phoneindex/phoneindex-backend/internal/storage"
)

func newTestFoundService(store *MockStorage, mail *MockMailer) *FoundReportService {
	svc := NewFoundReportService(store, mail, "https://phoneindex.cm/")
	svc.now = func() time.Time { return testClock }
	return svc
}

func foundSubmission() *FoundSubmission {
	return &FoundSubmission{
		Description:      "Black Samsung with a cracked corner",
		FoundAt:          testClock.Add(-time.Hour),
		LocationFound:    "Bus stop at Poste Centrale, Yaounde",
		Condition:        models.ConditionGood,
		ReturnPreference: models.ReturnViaPolice,
		FinderName:       "Jean",
	}
}

func stolenDeviceWithCase(ownerID uuid.UUID) (*models.Device, *models.TheftCase) {
	device := normalDevice(ownerID)
	device.Status = models.DeviceStatusStolen
	tc := &models.TheftCase{
		ID:       uuid.New(),
		CaseID:   "CR-20260314-CE-0001",
		DeviceID: device.ID,
		Status:   models.CaseStatusActive,
	}
	return device, tc
}

func TestSubmitMatchesByCaseID(t *testing.T) {
	store := new(MockStorage)
	mail := new(MockMailer)
	svc := newTestFoundService(store, mail)

	ownerID := uuid.New()
	device, tc := stolenDeviceWithCase(ownerID)
	owner := &models.User{ID: ownerID, Email: "owner@example.com"}

	store.On("CaseByCaseID", tc.CaseID).Return(tc, nil)
	store.On("DeviceByID", device.ID).Return(device, nil)
	store.On("CreateFoundReport", mock.AnythingOfType("*models.FoundReport")).Return(nil)
	store.On("UserByID", ownerID).Return(owner, nil)
	mail.On("Send", mock.Anything, owner.Email, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	sub := foundSubmission()
	sub.CaseIDHint = tc.CaseID

	result, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.True(t, result.NotificationSent)
	require.NotNil(t, result.Report.LinkedCaseID)
	require.NotNil(t, result.Report.LinkedDeviceID)
	assert.Equal(t, tc.ID, *result.Report.LinkedCaseID)
	assert.Equal(t, device.ID, *result.Report.LinkedDeviceID)
	assert.True(t, result.Report.IsProcessed)
	mail.AssertExpectations(t)
}

func TestSubmitMatchesByIMEIWithOpenCase(t *testing.T) {
	store := new(MockStorage)
	mail := new(MockMailer)
	svc := newTestFoundService(store, mail)

	ownerID := uuid.New()
	device, tc := stolenDeviceWithCase(ownerID)
	owner := &models.User{ID: ownerID, Email: "owner@example.com"}

	store.On("DeviceByIMEI", device.IMEI).Return(device, nil)
	store.On("CaseByDeviceID", device.ID).Return(tc, nil)
	store.On("CreateFoundReport", mock.AnythingOfType("*models.FoundReport")).Return(nil)
	store.On("UserByID", ownerID).Return(owner, nil)
	mail.On("Send", mock.Anything, owner.Email, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	sub := foundSubmission()
	sub.IMEIHint = device.IMEI

	result, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	require.NotNil(t, result.Report.LinkedCaseID)
	assert.Equal(t, tc.ID, *result.Report.LinkedCaseID)
}

func TestSubmitIMEIMatchIgnoresResolvedCase(t *testing.T) {
	store := new(MockStorage)
	mail := new(MockMailer)
	svc := newTestFoundService(store, mail)

	ownerID := uuid.New()
	device, tc := stolenDeviceWithCase(ownerID)
	tc.Status = models.CaseStatusOwnerRecovered
	owner := &models.User{ID: ownerID, Email: "owner@example.com"}

	store.On("DeviceByIMEI", device.IMEI).Return(device, nil)
	store.On("CaseByDeviceID", device.ID).Return(tc, nil)
	store.On("CreateFoundReport", mock.AnythingOfType("*models.FoundReport")).Return(nil)
	store.On("UserByID", ownerID).Return(owner, nil)
	mail.On("Send", mock.Anything, owner.Email, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	sub := foundSubmission()
	sub.IMEIHint = device.IMEI

	result, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Nil(t, result.Report.LinkedCaseID)
	require.NotNil(t, result.Report.LinkedDeviceID)
}

func TestSubmitUnmatchedStillPersisted(t *testing.T) {
	store := new(MockStorage)
	mail := new(MockMailer)
	svc := newTestFoundService(store, mail)

	store.On("CaseByCaseID", "CR-20260314-CE-9998").Return(nil, storage.ErrNotFound)
	store.On("DeviceByIMEI", "490154203237518").Return(nil, storage.ErrNotFound)
	store.On("CreateFoundReport", mock.AnythingOfType("*models.FoundReport")).Return(nil)

	sub := foundSubmission()
	sub.CaseIDHint = "CR-20260314-CE-9998"
	sub.IMEIHint = "490154203237518"

	result, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.False(t, result.NotificationSent)
	assert.False(t, result.Report.IsProcessed)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestSubmitMailFailureDoesNotFailSubmission(t *testing.T) {
	store := new(MockStorage)
	mail := new(MockMailer)
	svc := newTestFoundService(store, mail)

	ownerID := uuid.New()
	device, tc := stolenDeviceWithCase(ownerID)
	owner := &models.User{ID: ownerID, Email: "owner@example.com"}

	store.On("CaseByCaseID", tc.CaseID).Return(tc, nil)
	store.On("DeviceByID", device.ID).Return(device, nil)
	store.On("CreateFoundReport", mock.AnythingOfType("*models.FoundReport")).Return(nil)
	store.On("UserByID", ownerID).Return(owner, nil)
	mail.On("Send", mock.Anything, owner.Email, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp unreachable"))

	sub := foundSubmission()
	sub.CaseIDHint = tc.CaseID

	result, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.False(t, result.NotificationSent)
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FoundSubmission)
		wantErr error
	}{
		{
			name: "no identifying hints",
			mutate: func(s *FoundSubmission) {
				s.CaseIDHint, s.IMEIHint, s.Description = "", "", "  "
			},
			wantErr: ErrNoIdentifyingHints,
		},
		{
			name:    "unknown condition",
			mutate:  func(s *FoundSubmission) { s.Condition = "MINT" },
			wantErr: ErrInvalidCondition,
		},
		{
			name:    "unknown return preference",
			mutate:  func(s *FoundSubmission) { s.ReturnPreference = "CARRIER_PIGEON" },
			wantErr: ErrInvalidReturnPreference,
		},
		{
			name: "direct contact without contact details",
			mutate: func(s *FoundSubmission) {
				s.ReturnPreference = models.ReturnDirectContact
				s.FinderEmail, s.FinderPhone = "", ""
			},
			wantErr: ErrContactRequired,
		},
		{
			name:    "missing found location",
			mutate:  func(s *FoundSubmission) { s.LocationFound = " " },
			wantErr: ErrMissingFoundLocation,
		},
		{
			name:    "missing found time",
			mutate:  func(s *FoundSubmission) { s.FoundAt = time.Time{} },
			wantErr: ErrMissingFoundTime,
		},
		{
			name:    "found time in the future",
			mutate:  func(s *FoundSubmission) { s.FoundAt = testClock.Add(time.Hour) },
			wantErr: ErrFoundTimeInFuture,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStorage)
			mail := new(MockMailer)
			svc := newTestFoundService(store, mail)

			sub := foundSubmission()
			tt.mutate(sub)

			_, err := svc.Submit(context.Background(), sub)
			assert.ErrorIs(t, err, tt.wantErr)
			store.AssertNotCalled(t, "CreateFoundReport", mock.Anything)
		})
	}
}

func TestListForCase(t *testing.T) {
	ownerID := uuid.New()
	staffID := uuid.New()
	strangerID := uuid.New()

	device, tc := stolenDeviceWithCase(ownerID)
	linked := []models.FoundReport{
		{ID: uuid.New(), LinkedCaseID: &tc.ID},
	}

	store := new(MockStorage)
	svc := newTestFoundService(store, new(MockMailer))
	store.On("CaseByCaseID", tc.CaseID).Return(tc, nil)
	store.On("DeviceByID", device.ID).Return(device, nil)
	store.On("UserByID", staffID).Return(&models.User{ID: staffID, Role: "staff"}, nil)
	store.On("UserByID", strangerID).Return(&models.User{ID: strangerID, Role: "user"}, nil)
	store.On("FoundReportsByCase", tc.ID).Return(linked, nil)

	reports, err := svc.ListForCase(ownerID, tc.CaseID)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	_, err = svc.ListForCase(staffID, tc.CaseID)
	assert.NoError(t, err)

	_, err = svc.ListForCase(strangerID, tc.CaseID)
	assert.ErrorIs(t, err, ErrPermission)
}

func TestListForCaseUnknownCase(t *testing.T) {
	store := new(MockStorage)
	svc := newTestFoundService(store, new(MockMailer))

	store.On("CaseByCaseID", "CR-20260314-CE-9999").Return(nil, storage.ErrNotFound)

	_, err := svc.ListForCase(uuid.New(), "CR-20260314-CE-9999")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSubmitDefaultsConditionToUnknown(t *testing.T) {
	store := new(MockStorage)
	mail := new(MockMailer)
	svc := newTestFoundService(store, mail)

	store.On("CreateFoundReport", mock.AnythingOfType("*models.FoundReport")).Return(nil)

	sub := foundSubmission()
	sub.Condition = ""

	result, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, models.ConditionUnknown, result.Report.Condition)
}
