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

// DetailedStatus adds host resource usage for the monitoring view.
type DetailedStatus struct {
	HealthStatus
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    uint64  `json:"memory_used_bytes"`
	MemoryTotal   uint64  `json:"memory_total_bytes"`
	ActiveConns   int32   `json:"db_active_connections"`
	IdleConns     int32   `json:"db_idle_connections"`
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

func (h *HealthChecker) CheckDetailed() DetailedStatus {
	detailed := DetailedStatus{HealthStatus: h.CheckBasic()}

	cpuPercents, _ := cpu.Percent(0, false)
	if len(cpuPercents) > 0 {
		detailed.CPUPercent = cpuPercents[0]
	}

	if memStats, err := mem.VirtualMemory(); err == nil {
		detailed.MemoryPercent = memStats.UsedPercent
		detailed.MemoryUsed = memStats.Used
		detailed.MemoryTotal = memStats.Total
	}

	stat := h.db.Stat()
	detailed.ActiveConns = stat.AcquiredConns()
	detailed.IdleConns = stat.IdleConns()

	return detailed
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
