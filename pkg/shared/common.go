package shared

const (
	StatusOK     = "OK"
	StatusFailed = "FAILED"
)

// Versions holds build version information of the core application.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// GenericResult describes the outcome of a single command launch.
type GenericResult struct {
	Args    interface{} `json:"args"`
	Result  interface{} `json:"result"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
}

// GenericLaunchesResult groups the results of all launches of a command.
type GenericLaunchesResult struct {
	Launches []GenericResult `json:"launches"`
}
