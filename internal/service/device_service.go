package service

import (
	"context"
	"fmt"

	"course-platform-be/internal/dto"
	"course-platform-be/internal/pkg/apperror"
	"course-platform-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type IDeviceService interface {
	RegisterDevice(ctx context.Context, userId uuid.UUID, req *dto.RegisterDeviceRequest) (*dto.RegisterDeviceResponse, error)
}

// deviceService enforces the per-account device ceiling that keeps paid
// course access from being shared. Fingerprints live in a Redis set per user.
type deviceService struct {
	redis      *redis.Client
	maxDevices int
	logger     logger.ILogger
}

func NewDeviceService(redisClient *redis.Client, maxDevices int, log logger.ILogger) IDeviceService {
	return &deviceService{
		redis:      redisClient,
		maxDevices: maxDevices,
		logger:     log,
	}
}

func deviceKey(userId uuid.UUID) string {
	return fmt.Sprintf("devices:%s", userId)
}

func (s *deviceService) RegisterDevice(ctx context.Context, userId uuid.UUID, req *dto.RegisterDeviceRequest) (*dto.RegisterDeviceResponse, error) {
	key := deviceKey(userId)

	known, err := s.redis.SIsMember(ctx, key, req.Fingerprint).Result()
	if err != nil {
		return nil, fmt.Errorf("checking device registration: %w", err)
	}

	if !known {
		count, err := s.redis.SCard(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("counting devices: %w", err)
		}
		if count >= int64(s.maxDevices) {
			return nil, apperror.Conflict(fmt.Sprintf("device limit of %d reached", s.maxDevices))
		}
		if err := s.redis.SAdd(ctx, key, req.Fingerprint).Err(); err != nil {
			return nil, fmt.Errorf("registering device: %w", err)
		}
		s.logger.Info("DEVICE", "New device registered", map[string]interface{}{
			"user_id": userId.String(),
		})
	}

	count, err := s.redis.SCard(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("counting devices: %w", err)
	}

	return &dto.RegisterDeviceResponse{
		Registered:  true,
		DeviceCount: int(count),
		DeviceLimit: s.maxDevices,
	}, nil
}
