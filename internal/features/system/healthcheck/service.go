package system_healthcheck

import (
	"context"
	"log/slog"

	"taskboard/internal/config"
	"taskboard/internal/downdetect"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

type HealthcheckService struct {
	downdetectService *downdetect.DowndetectService
	diskPath          string
	logger            *slog.Logger
}

// GetHealth reports DOWN when the database fails and DEGRADED when only the
// cache does. Resource usage is best effort and omitted on error.
func (s *HealthcheckService) GetHealth(ctx context.Context) *HealthcheckResponseDTO {
	response := &HealthcheckResponseDTO{
		Status:   HealthStatusOk,
		Database: ComponentStatus{Status: HealthStatusOk},
	}

	if err := s.downdetectService.CheckDatabase(ctx); err != nil {
		response.Status = HealthStatusDown
		response.Database = ComponentStatus{Status: HealthStatusDown, Error: err.Error()}
	}

	if config.GetEnv().IsCacheEnabled() {
		response.Cache = &ComponentStatus{Status: HealthStatusOk}

		if err := s.downdetectService.CheckCache(); err != nil {
			response.Cache = &ComponentStatus{Status: HealthStatusDown, Error: err.Error()}
			if response.Status == HealthStatusOk {
				response.Status = HealthStatusDegraded
			}
		}
	}

	resources, err := s.getResourceUsage(ctx)
	if err != nil {
		s.logger.Warn("failed to read resource usage", "error", err)
	} else {
		response.Resources = resources
	}

	return response
}

func (s *HealthcheckService) getResourceUsage(ctx context.Context) (*ResourceUsage, error) {
	memory, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	usage, err := disk.UsageWithContext(ctx, s.diskPath)
	if err != nil {
		return nil, err
	}

	return &ResourceUsage{
		MemoryUsedPercent: memory.UsedPercent,
		DiskUsedPercent:   usage.UsedPercent,
		DiskFreeBytes:     usage.Free,
	}, nil
}
