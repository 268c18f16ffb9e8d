package config

const (
	defaultDaemonHost            = "127.0.0.1"
	defaultDaemonPort            = 4216
	defaultConnectTimeoutSeconds = 5
	defaultStartupTimeoutSeconds = 30
	defaultMinHeapMB             = 64
	defaultMaxHeapMB             = 1024
	defaultArgumentPolicy        = "filter"
	defaultDataDir               = "~/.local/share/kiln"
	defaultLogDir                = "~/.local/share/kiln/logs"
	defaultHistoryMaxEntries     = 500
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Daemon: Daemon{
			Host:                  defaultDaemonHost,
			Port:                  defaultDaemonPort,
			AutoStart:             true,
			ConnectTimeoutSeconds: defaultConnectTimeoutSeconds,
			StartupTimeoutSeconds: defaultStartupTimeoutSeconds,
		},
		JVM: JVM{
			MinHeapMB: defaultMinHeapMB,
			MaxHeapMB: defaultMaxHeapMB,
		},
		Client: Client{
			ArgumentPolicy: defaultArgumentPolicy,
			LegacySentinel: true,
		},
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		History: History{
			Enabled:    true,
			MaxEntries: defaultHistoryMaxEntries,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
