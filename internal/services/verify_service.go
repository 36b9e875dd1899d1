package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/phoneindex/phoneindex-backend/internal/dto"
	"github.com/phoneindex/phoneindex-backend/internal/imei"
	"github.com/phoneindex/phoneindex-backend/internal/models"
	"github.com/phoneindex/phoneindex-backend/internal/storage"
)

// VerifyService is the public IMEI lookup tool: anyone can check
// whether a device is currently reported stolen.
type VerifyService struct {
	store storage.Storage
}

func NewVerifyService(store storage.Storage) *VerifyService {
	return &VerifyService{store: store}
}

// Verify validates the IMEI and reports the device's standing. Devices
// in NORMAL, RECOVERED or FALSE_ALARM all report as clean to the public.
func (s *VerifyService) Verify(imeiStr string) (*dto.VerificationResult, error) {
	if err := imei.Validate(imeiStr); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidIMEI, err)
	}

	device, err := s.store.DeviceByIMEI(imeiStr)
	if errors.Is(err, storage.ErrNotFound) {
		return &dto.VerificationResult{
			IMEI:    imeiStr,
			Status:  dto.VerificationNotInRegistry,
			Message: "This IMEI was not found in our device registry. It is not reported as stolen through our system.",
		}, nil
	}
	if err != nil {
		return nil, err
	}

	if device.Status != models.DeviceStatusStolen {
		slog.Info("imei verified clean", "imei", imeiStr)
		return &dto.VerificationResult{
			IMEI:    imeiStr,
			Status:  dto.VerificationClean,
			Message: "This device is registered in our system and is NOT currently reported as stolen.",
		}, nil
	}

	result := &dto.VerificationResult{
		IMEI:    imeiStr,
		Status:  dto.VerificationStolen,
		Message: "This device is reported STOLEN. Do not buy it. You can submit a found report to help return it.",
		Device: &dto.DeviceSummary{
			Make:            device.Make,
			ModelName:       device.ModelName,
			Color:           device.Color,
			StorageCapacity: device.StorageCapacity,
		},
	}

	tc, err := s.store.CaseByDeviceID(device.ID)
	if err == nil {
		result.Case = &dto.CaseSummary{
			CaseID:     tc.CaseID,
			Status:     string(tc.Status),
			ReportedAt: tc.ReportedAt,
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	slog.Info("imei verified stolen", "imei", imeiStr)
	return result, nil
}
