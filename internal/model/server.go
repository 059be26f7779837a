package model

// ServerStatus represents server status
type ServerStatus string

const (
	ServerStatusOnline      ServerStatus = "online"
	ServerStatusOffline     ServerStatus = "offline"
	ServerStatusMaintenance ServerStatus = "maintenance"
	ServerStatusError       ServerStatus = "error"
)

// Server represents a server inventory record. CPUUsage and DiskUsage are
// fractions in [0,1]; MemoryUsage is a whole percent in [0,100]; Uptime is
// in seconds.
type Server struct {
	BaseModel
	Name        string       `gorm:"type:varchar(128);not null" json:"name"`
	Hostname    string       `gorm:"type:varchar(255);not null" json:"hostname"`
	IPAddress   string       `gorm:"type:varchar(64);not null" json:"ip_address"`
	Status      ServerStatus `gorm:"type:varchar(16);default:'online'" json:"status"`
	CPUUsage    float64      `gorm:"default:0" json:"cpu_usage"`
	MemoryUsage float64      `gorm:"default:0" json:"memory_usage"`
	DiskUsage   float64      `gorm:"default:0" json:"disk_usage"`
	Uptime      int64        `gorm:"default:0" json:"uptime"`
	Location    string       `gorm:"type:varchar(64);default:'Unknown'" json:"location"`
	OS          string       `gorm:"type:varchar(64);default:'Linux';column:os" json:"os"`
}

// TableName specifies the table name for Server model
func (Server) TableName() string {
	return "servers"
}
