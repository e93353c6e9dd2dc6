package service

import (
	"time"

	"github.com/khoshimi/Pupupu/logger"
	"github.com/khoshimi/Pupupu/web/entity"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/atomic"
)

var startTime = time.Now()

// RequestCount tracks served HTTP requests since startup.
var RequestCount atomic.Int64

// ServerService collects process and host health for the admin status
// endpoint.
type ServerService struct {
	userService UserService
	workService WorkService
}

func (s *ServerService) GetStatus() *entity.Status {
	status := &entity.Status{}
	status.Uptime = uint64(time.Since(startTime).Seconds())
	status.Requests = RequestCount.Load()

	if percents, err := cpu.Percent(0, false); err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}
	if cores, err := cpu.Counts(false); err != nil {
		logger.Warning("get cpu count failed:", err)
	} else {
		status.CpuCores = cores
	}

	if memInfo, err := mem.VirtualMemory(); err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	if diskInfo, err := disk.Usage("/"); err != nil {
		logger.Warning("get disk usage failed:", err)
	} else {
		status.Disk.Current = diskInfo.Used
		status.Disk.Total = diskInfo.Total
	}

	if users, err := s.userService.CountUsers(); err != nil {
		logger.Warning("count users failed:", err)
	} else {
		status.Users = users
	}
	if works, err := s.workService.CountWorks(); err != nil {
		logger.Warning("count works failed:", err)
	} else {
		status.Works = works
	}

	return status
}
