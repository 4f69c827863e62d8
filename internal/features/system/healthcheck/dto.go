package system_healthcheck

type HealthStatus string

const (
	HealthStatusOk       HealthStatus = "OK"
	HealthStatusDegraded HealthStatus = "DEGRADED"
	HealthStatusDown     HealthStatus = "DOWN"
)

type ComponentStatus struct {
	Status HealthStatus `json:"status"`
	Error  string       `json:"error,omitempty"`
}

type ResourceUsage struct {
	MemoryUsedPercent float64 `json:"memoryUsedPercent"`
	DiskUsedPercent   float64 `json:"diskUsedPercent"`
	DiskFreeBytes     uint64  `json:"diskFreeBytes"`
}

type HealthcheckResponseDTO struct {
	Status    HealthStatus     `json:"status"`
	Database  ComponentStatus  `json:"database"`
	Cache     *ComponentStatus `json:"cache,omitempty"`
	Resources *ResourceUsage   `json:"resources,omitempty"`
}
