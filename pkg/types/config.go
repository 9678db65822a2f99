package types

// Config holds backend selection and console limits.
type Config struct {
	Backend        string `json:"backend" yaml:"backend"`
	DataFile       string `json:"data_file" yaml:"data_file"`
	HistorySize    int    `json:"history_size" yaml:"history_size"`
	MaxScriptDepth int    `json:"max_script_depth" yaml:"max_script_depth"`
}

// Supported backend names.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Defaults applied when a key is absent from config.yaml.
const (
	DefaultBackend        = BackendJSON
	DefaultDataFile       = "vehicles.json"
	DefaultHistorySize    = 5
	DefaultMaxScriptDepth = 16
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendJSON:   true,
	BackendSQLite: true,
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		Backend:        DefaultBackend,
		DataFile:       DefaultDataFile,
		HistorySize:    DefaultHistorySize,
		MaxScriptDepth: DefaultMaxScriptDepth,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.DataFile == "" {
		return ErrDataFileEmpty
	}
	if c.HistorySize <= 0 {
		return ErrHistorySizeInvalid
	}
	if c.MaxScriptDepth <= 0 {
		return ErrScriptDepthInvalid
	}
	return nil
}
