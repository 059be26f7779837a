package servers

// CreateRequest represents the create-server request body. Resource usage is
// not client-supplied; it is synthesized on creation.
type CreateRequest struct {
	Name      string `json:"name" binding:"required"`
	Hostname  string `json:"hostname" binding:"required"`
	IPAddress string `json:"ip_address" binding:"required"`
	Status    string `json:"status" binding:"omitempty,oneof=online offline maintenance error"`
	Location  string `json:"location"`
	OS        string `json:"os"`
}

// UpdateRequest represents a server patch. Only fields present in the
// payload are applied; updated_at is refreshed on every successful update.
type UpdateRequest struct {
	Name        *string  `json:"name"`
	Hostname    *string  `json:"hostname"`
	IPAddress   *string  `json:"ip_address"`
	Status      *string  `json:"status" binding:"omitempty,oneof=online offline maintenance error"`
	CPUUsage    *float64 `json:"cpu_usage"`
	MemoryUsage *float64 `json:"memory_usage"`
	DiskUsage   *float64 `json:"disk_usage"`
	Uptime      *int64   `json:"uptime"`
	Location    *string  `json:"location"`
	OS          *string  `json:"os"`
}
