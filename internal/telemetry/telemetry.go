// Package telemetry synthesizes plausible resource-usage values for server
// records. There is no agent integration; new records get random telemetry
// so the dashboard has something to show.
package telemetry

import (
	"math"
	"math/rand/v2"
)

// Uptime bounds in seconds: 1 hour to 100 days.
const (
	MinUptime = 3600
	MaxUptime = 8640000
)

// Usage holds one set of synthesized resource-usage values
type Usage struct {
	CPU    float64 // fraction in [0,1], 2 decimals
	Memory float64 // whole percent in [0,100]
	Disk   float64 // fraction in [0,1], 2 decimals
	Uptime int64   // seconds in [MinUptime, MaxUptime]
}

// Random returns a fresh set of usage values
func Random() Usage {
	return Usage{
		CPU:    round2(rand.Float64()),
		Memory: float64(rand.IntN(101)),
		Disk:   round2(rand.Float64()),
		Uptime: MinUptime + rand.Int64N(MaxUptime-MinUptime+1),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
