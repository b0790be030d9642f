package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
)

var ErrNoSoCSensor = errors.New("no soc temperature sensor")

// socSensorKeys are substrings of sensor keys that report the board or CPU die.
var socSensorKeys = []string{"cpu_thermal", "soc_thermal", "soc", "coretemp", "k10temp", "cpu"}

// HostSoCSource reads the board temperature through gopsutil.
type HostSoCSource struct {
	timeout time.Duration
	read    func(ctx context.Context) ([]host.TemperatureStat, error)
}

func NewHostSoCSource(timeout time.Duration) *HostSoCSource {
	return &HostSoCSource{timeout: timeout, read: host.SensorsTemperaturesWithContext}
}

// SoCTemperature returns the hottest matching sensor.
func (s *HostSoCSource) SoCTemperature() (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	stats, err := s.read(ctx)
	if err != nil && len(stats) == 0 {
		return 0, fmt.Errorf("read sensors: %w", err)
	}
	return pickSoCTemperature(stats)
}

func pickSoCTemperature(stats []host.TemperatureStat) (float64, error) {
	best, found := 0.0, false
	for _, st := range stats {
		key := strings.ToLower(st.SensorKey)
		for _, want := range socSensorKeys {
			if strings.Contains(key, want) {
				if !found || st.Temperature > best {
					best, found = st.Temperature, true
				}
				break
			}
		}
	}
	if !found {
		return 0, ErrNoSoCSensor
	}
	return best, nil
}
