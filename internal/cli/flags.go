package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile  string
	Provider string
	EnvFile  string
	Key      string
	Quiet    bool

	// Probe flags
	ExpectModel string
	ListModels  bool
	Describe    string
	SmokeTest   bool
	SmokeModel  string
	Timeout     time.Duration

	// Batch flags
	BatchFile string

	// History flags
	History      bool
	HistoryLimit int
	NoHistory    bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Provider:     "gemini",
		EnvFile:      ".env",
		ExpectModel:  "gemini-1.5-pro",
		SmokeModel:   "gemini-1.5-flash",
		Timeout:      30 * time.Second,
		HistoryLimit: 20,
	}
}
