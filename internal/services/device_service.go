package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/phoneindex/phoneindex-backend/internal/imei"
	"github.com/phoneindex/phoneindex-backend/internal/models"
	"github.com/phoneindex/phoneindex-backend/internal/storage"
)

// DeviceService owns registered devices and their status field.
type DeviceService struct {
	store storage.Storage
}

func NewDeviceService(store storage.Storage) *DeviceService {
	return &DeviceService{store: store}
}

// DeviceRegistration carries the descriptive fields for a new device.
type DeviceRegistration struct {
	IMEI                   string
	Make                   string
	ModelName              string
	Color                  string
	StorageCapacity        string
	DistinguishingFeatures string
}

// Register validates the IMEI and creates the device at status NORMAL.
func (s *DeviceService) Register(ownerID uuid.UUID, reg *DeviceRegistration) (*models.Device, error) {
	cleaned := strings.TrimSpace(reg.IMEI)
	if err := imei.Validate(cleaned); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidIMEI, err)
	}
	if strings.TrimSpace(reg.Make) == "" || strings.TrimSpace(reg.ModelName) == "" {
		return nil, ErrMissingDeviceInfo
	}

	if _, err := s.store.DeviceByIMEI(cleaned); err == nil {
		return nil, ErrDuplicateIMEI
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	device := &models.Device{
		ID:                     uuid.New(),
		OwnerID:                ownerID,
		IMEI:                   cleaned,
		Make:                   strings.TrimSpace(reg.Make),
		ModelName:              strings.TrimSpace(reg.ModelName),
		Color:                  strings.TrimSpace(reg.Color),
		StorageCapacity:        strings.TrimSpace(reg.StorageCapacity),
		DistinguishingFeatures: strings.TrimSpace(reg.DistinguishingFeatures),
		Status:                 models.DeviceStatusNormal,
	}

	if err := s.store.CreateDevice(device); err != nil {
		// Unique constraint is the backstop against a concurrent
		// registration of the same IMEI.
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrDuplicateIMEI
		}
		return nil, fmt.Errorf("failed to register device: %w", err)
	}

	slog.Info("device registered", "imei", device.IMEI, "user_id", ownerID.String())
	return device, nil
}

// ListForOwner returns the owner's devices, newest registration first.
func (s *DeviceService) ListForOwner(ownerID uuid.UUID) ([]models.Device, error) {
	return s.store.DevicesByOwner(ownerID)
}

// Get returns a device if the requester owns it.
func (s *DeviceService) Get(requesterID, deviceID uuid.UUID) (*models.Device, error) {
	device, err := s.store.DeviceByID(deviceID)
	if err != nil {
		return nil, err
	}
	if device.OwnerID != requesterID {
		return nil, ErrPermission
	}
	return device, nil
}

// Delete removes a device and cascades through its theft case: found
// reports tied to that case are deleted, found reports that only point
// at the device keep their row with the link nulled.
func (s *DeviceService) Delete(requesterID, deviceID uuid.UUID) error {
	device, err := s.store.DeviceByID(deviceID)
	if err != nil {
		return err
	}
	if device.OwnerID != requesterID {
		return ErrPermission
	}

	if err := s.store.DeleteDeviceCascade(device.ID); err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}

	slog.Info("device deleted", "imei", device.IMEI, "user_id", requesterID.String())
	return nil
}
