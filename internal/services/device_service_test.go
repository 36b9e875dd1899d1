package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phoneindex/phoneindex-backend/internal/models"
	"github.com/phoneindex/phoneindex-backend/internal/storage"
)

func deviceRegistration() *DeviceRegistration {
	return &DeviceRegistration{
		IMEI:      "490154203237518",
		Make:      "Samsung",
		ModelName: "Galaxy S21",
		Color:     "Black",
	}
}

func TestRegisterDevice(t *testing.T) {
	store := new(MockStorage)
	svc := NewDeviceService(store)

	ownerID := uuid.New()
	store.On("DeviceByIMEI", "490154203237518").Return(nil, storage.ErrNotFound)
	store.On("CreateDevice", mock.AnythingOfType("*models.Device")).Return(nil)

	device, err := svc.Register(ownerID, deviceRegistration())
	require.NoError(t, err)
	assert.Equal(t, "490154203237518", device.IMEI)
	assert.Equal(t, models.DeviceStatusNormal, device.Status)
	assert.Equal(t, ownerID, device.OwnerID)
	store.AssertExpectations(t)
}

func TestRegisterDeviceTrimsIMEI(t *testing.T) {
	store := new(MockStorage)
	svc := NewDeviceService(store)

	store.On("DeviceByIMEI", "490154203237518").Return(nil, storage.ErrNotFound)
	store.On("CreateDevice", mock.AnythingOfType("*models.Device")).Return(nil)

	reg := deviceRegistration()
	reg.IMEI = "  490154203237518  "

	device, err := svc.Register(uuid.New(), reg)
	require.NoError(t, err)
	assert.Equal(t, "490154203237518", device.IMEI)
}

func TestRegisterDeviceInvalidIMEI(t *testing.T) {
	store := new(MockStorage)
	svc := NewDeviceService(store)

	tests := []string{
		"12345",            // too short
		"49015420323751a",  // non-digit
		"490154203237519",  // bad check digit
		"4901542032375181", // too long
	}

	for _, bad := range tests {
		reg := deviceRegistration()
		reg.IMEI = bad
		_, err := svc.Register(uuid.New(), reg)
		assert.ErrorIs(t, err, ErrInvalidIMEI, "imei %q", bad)
	}
	store.AssertNotCalled(t, "CreateDevice", mock.Anything)
}

func TestRegisterDeviceMissingInfo(t *testing.T) {
	store := new(MockStorage)
	svc := NewDeviceService(store)

	reg := deviceRegistration()
	reg.ModelName = "  "

	_, err := svc.Register(uuid.New(), reg)
	assert.ErrorIs(t, err, ErrMissingDeviceInfo)
}

func TestRegisterDeviceDuplicateIMEI(t *testing.T) {
	store := new(MockStorage)
	svc := NewDeviceService(store)

	existing := normalDevice(uuid.New())
	store.On("DeviceByIMEI", existing.IMEI).Return(existing, nil)

	_, err := svc.Register(uuid.New(), deviceRegistration())
	assert.ErrorIs(t, err, ErrDuplicateIMEI)
}

func TestRegisterDeviceLosesInsertRace(t *testing.T) {
	store := new(MockStorage)
	svc := NewDeviceService(store)

	store.On("DeviceByIMEI", "490154203237518").Return(nil, storage.ErrNotFound)
	store.On("CreateDevice", mock.AnythingOfType("*models.Device")).Return(storage.ErrDuplicate)

	_, err := svc.Register(uuid.New(), deviceRegistration())
	assert.ErrorIs(t, err, ErrDuplicateIMEI)
}

func TestGetDeviceOwnerOnly(t *testing.T) {
	store := new(MockStorage)
	svc := NewDeviceService(store)

	ownerID := uuid.New()
	device := normalDevice(ownerID)
	store.On("DeviceByID", device.ID).Return(device, nil)

	got, err := svc.Get(ownerID, device.ID)
	require.NoError(t, err)
	assert.Equal(t, device.ID, got.ID)

	_, err = svc.Get(uuid.New(), device.ID)
	assert.ErrorIs(t, err, ErrPermission)
}

func TestDeleteDevice(t *testing.T) {
	store := new(MockStorage)
	svc := NewDeviceService(store)

	ownerID := uuid.New()
	device := normalDevice(ownerID)
	store.On("DeviceByID", device.ID).Return(device, nil)
	store.On("DeleteDeviceCascade", device.ID).Return(nil)

	require.NoError(t, svc.Delete(ownerID, device.ID))
	store.AssertExpectations(t)
}

func TestDeleteDeviceNotOwner(t *testing.T) {
	store := new(MockStorage)
	svc := NewDeviceService(store)

	device := normalDevice(uuid.New())
	store.On("DeviceByID", device.ID).Return(device, nil)

	err := svc.Delete(uuid.New(), device.ID)
	assert.ErrorIs(t, err, ErrPermission)
	store.AssertNotCalled(t, "DeleteDeviceCascade", mock.Anything)
}
