package config

const (
	AppName = "dispatch"

	// EnvPrefix is prepended to every configuration key read from the environment.
	EnvPrefix = "DISPATCH"
	// ConfigPathEnvVar points at an explicit configuration file.
	ConfigPathEnvVar = "DISPATCH_CONFIG"

	// DotConfigFileName is looked up in the current working directory.
	DotConfigFileName = ".dispatch.yaml"
	// ConfigFileName is looked up under the XDG config directories.
	ConfigFileName = "config.yaml"

	DefaultTaskfile    = "Taskfile.yaml"
	DefaultTaskName    = "default"
	DefaultHelpMarker  = "#/"
	DefaultAppDir      = "app"
	DefaultLogsLevel   = "Info"
	DefaultLogsFile    = "/dev/stderr"
	DefaultDotenvFile  = ".env"
	DefaultTestsSubdir = "tests"

	TaskfileFlag  = "taskfile"
	LogsLevelFlag = "logs-level"
	LogsFileFlag  = "logs-file"
	ConfigFlag    = "config"
	VerboseFlag   = "verbose"
)
