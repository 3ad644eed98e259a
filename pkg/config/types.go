package config

// Default values for server configuration.
const (
	DefaultPort         = 4280
	DefaultContractsDir = "./pacts"
	DefaultReadTimeout  = 30
	DefaultWriteTimeout = 30
)

// ServerConfiguration holds the runtime configuration for the mock server.
type ServerConfiguration struct {
	// Port is the HTTP listen port.
	Port int `json:"port" yaml:"port"`

	// Host is the listen address. Empty binds all interfaces.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// ContractsDir is the top-level contracts directory: one subdirectory
	// per provider, one contract file per consumer.
	ContractsDir string `json:"contractsDir" yaml:"contractsDir"`

	// CustomRoutesFile optionally points at a custom routes file.
	CustomRoutesFile string `json:"customRoutesFile,omitempty" yaml:"customRoutesFile,omitempty"`

	// ReadTimeout and WriteTimeout are in seconds.
	ReadTimeout  int `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`
	WriteTimeout int `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`

	// LogFormat is text or json.
	LogFormat string `json:"logFormat,omitempty" yaml:"logFormat,omitempty"`
}

// DefaultServerConfiguration returns the default configuration.
func DefaultServerConfiguration() *ServerConfiguration {
	return &ServerConfiguration{
		Port:         DefaultPort,
		ContractsDir: DefaultContractsDir,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}
