package domain

const (
	AppName         = "Django Demo"
	StatusRunning   = "running"
	DatabaseHealthy = "connected"
)

type ServiceInfo struct {
	App      string `json:"app"`
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
	Storage  string `json:"storage"`
}

const (
	CheckWorking    = "working"
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"
)

type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (h HealthReport) Healthy() bool {
	return h.Status == HealthHealthy
}
