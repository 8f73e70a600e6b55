package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

type HealthChecker struct {
	db *pgxpool.Pool
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

// SystemHealth carries host stats for the detailed health endpoint.
type SystemHealth struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
	MemoryTotalMB uint64  `json:"memory_total_mb"`
}

type DetailedHealthStatus struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
	System   SystemHealth   `json:"system"`
}

func NewHealthChecker(db *pgxpool.Pool) *HealthChecker {
	return &HealthChecker{db: db}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
	}
}

// CheckDetailed adds host CPU/memory stats on top of the basic check.
// Stat collection failures zero the fields rather than flipping the status.
func (h *HealthChecker) CheckDetailed() DetailedHealthStatus {
	basic := h.CheckBasic()

	var system SystemHealth
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		system.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		system.MemoryPercent = vm.UsedPercent
		system.MemoryUsedMB = vm.Used / 1024 / 1024
		system.MemoryTotalMB = vm.Total / 1024 / 1024
	}

	return DetailedHealthStatus{
		Status:   basic.Status,
		Database: basic.Database,
		System:   system,
	}
}

func (h *HealthChecker) checkDatabase() DatabaseHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return DatabaseHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}
