package mcpserver

// RunChecksInput selects what a run_checks call executes.
type RunChecksInput struct {
	OutputPath string `json:"output_path,omitempty"`
	ConfigPath string `json:"config_path,omitempty"`
}

// RunChecksOutput mirrors the run report for MCP clients.
type RunChecksOutput struct {
	Success        bool          `json:"success"`
	Passed         int           `json:"passed"`
	Failed         int           `json:"failed"`
	Missing        int           `json:"missing"`
	Checks         []CheckStatus `json:"checks"`
	TranscriptPath string        `json:"transcript_path"`
}

// CheckStatus is the outcome of one check in a run_checks call.
type CheckStatus struct {
	Name     string `json:"name"`
	Command  string `json:"command"`
	Status   string `json:"status"`
	ExitCode int    `json:"exit_code,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// ListChecksInput selects the suite a list_checks call describes.
type ListChecksInput struct {
	ConfigPath string `json:"config_path,omitempty"`
}

// ListChecksOutput names the checks a run would execute.
type ListChecksOutput struct {
	Checks []CheckInfo `json:"checks"`
}

// CheckInfo describes one configured check.
type CheckInfo struct {
	Name    string `json:"name"`
	Command string `json:"command"`
}
