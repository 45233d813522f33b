// Package system reports host resource information for the info command.
package system

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Vitals represents host resource usage relevant to running environments.
type Vitals struct {
	Hostname    string
	OS          string
	CPUPercent  float64
	MemPercent  float64
	MemTotal    uint64
	DiskPercent float64
	DiskFree    uint64
}

// GetVitals retrieves current host resource usage.
func GetVitals() (*Vitals, error) {
	cpuPercent, err := cpu.Percent(time.Second, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU usage: %w", err)
	}
	cpuUsage := 0.0
	if len(cpuPercent) > 0 {
		cpuUsage = cpuPercent[0]
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to get memory usage: %w", err)
	}

	diskStat, err := disk.Usage("/")
	if err != nil {
		return nil, fmt.Errorf("failed to get disk usage: %w", err)
	}

	info, err := host.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	return &Vitals{
		Hostname:    info.Hostname,
		OS:          fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion),
		CPUPercent:  cpuUsage,
		MemPercent:  memStat.UsedPercent,
		MemTotal:    memStat.Total,
		DiskPercent: diskStat.UsedPercent,
		DiskFree:    diskStat.Free,
	}, nil
}

// Rows formats the vitals as key/value rows for table display.
func (v *Vitals) Rows() [][]string {
	return [][]string{
		{"Hostname", v.Hostname},
		{"OS", v.OS},
		{"CPU usage", fmt.Sprintf("%.1f%%", v.CPUPercent)},
		{"Memory", fmt.Sprintf("%.1f%% of %s", v.MemPercent, humanize.IBytes(v.MemTotal))},
		{"Disk", fmt.Sprintf("%.1f%% used, %s free", v.DiskPercent, humanize.IBytes(v.DiskFree))},
	}
}
