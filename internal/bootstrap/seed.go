// Package bootstrap populates first-run demo data: default accounts and a
// synthetic server fleet.
package bootstrap

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"fleetdash/internal/auth"
	"fleetdash/internal/model"
	"fleetdash/internal/telemetry"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const seedServerCount = 50

var (
	seedStatuses = []model.ServerStatus{
		model.ServerStatusOnline,
		model.ServerStatusOffline,
		model.ServerStatusMaintenance,
		model.ServerStatusError,
	}
	seedLocations = []string{"US-East", "US-West", "EU-Central", "Asia-Pacific", "Canada", "Australia"}
	seedOSTypes   = []string{"Ubuntu 20.04", "Ubuntu 22.04", "CentOS 7", "CentOS 8", "RHEL 8", "Windows Server 2019", "Windows Server 2022"}
)

// Seed idempotently ensures the default accounts exist and, if the inventory
// is empty, creates the sample server fleet.
func Seed(gdb *gorm.DB, log *logrus.Entry) error {
	if err := ensureUser(gdb, log, "admin", "admin@example.com", "admin123", true); err != nil {
		return err
	}
	if err := ensureUser(gdb, log, "demo", "demo@example.com", "demo123", false); err != nil {
		return err
	}

	var count int64
	if err := gdb.Model(&model.Server{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count servers: %w", err)
	}
	if count > 0 {
		return nil
	}

	servers := sampleServers()
	if err := gdb.Create(&servers).Error; err != nil {
		return fmt.Errorf("failed to seed servers: %w", err)
	}
	log.Infof("seeded %d sample servers", seedServerCount)
	return nil
}

// ensureUser creates the account if no user with that username exists
func ensureUser(gdb *gorm.DB, log *logrus.Entry, username, email, password string, isAdmin bool) error {
	var existing model.User
	err := gdb.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up user %q: %w", username, err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password for %q: %w", username, err)
	}

	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		IsActive:     true,
	}
	if err := gdb.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create user %q: %w", username, err)
	}
	log.Infof("created default user %q", username)
	return nil
}

// sampleServers generates the synthetic fleet. Names and hostnames are
// numbered sequentially; addresses walk a /16 range by divmod.
func sampleServers() []model.Server {
	servers := make([]model.Server, 0, seedServerCount)
	for i := 1; i <= seedServerCount; i++ {
		usage := telemetry.Random()
		servers = append(servers, model.Server{
			Name:        fmt.Sprintf("server-%02d", i),
			Hostname:    fmt.Sprintf("srv%02d.example.com", i),
			IPAddress:   fmt.Sprintf("192.168.%d.%d", (i-1)/256, (i-1)%256+1),
			Status:      seedStatuses[rand.IntN(len(seedStatuses))],
			CPUUsage:    usage.CPU,
			MemoryUsage: usage.Memory,
			DiskUsage:   usage.Disk,
			Uptime:      usage.Uptime,
			Location:    seedLocations[rand.IntN(len(seedLocations))],
			OS:          seedOSTypes[rand.IntN(len(seedOSTypes))],
		})
	}
	return servers
}
