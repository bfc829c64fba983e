package schema

// Configuration is the decoded form of `.dispatch.yaml` merged with
// DISPATCH_* environment variables and command-line flags.
type Configuration struct {
	Taskfile    string      `yaml:"taskfile" json:"taskfile" mapstructure:"taskfile"`
	DefaultTask string      `yaml:"default_task" json:"default_task" mapstructure:"default_task"`
	HelpMarker  string      `yaml:"help_marker" json:"help_marker" mapstructure:"help_marker"`
	Dotenv      []string    `yaml:"dotenv,omitempty" json:"dotenv,omitempty" mapstructure:"dotenv"`
	Env         EnvSettings `yaml:"env,omitempty" json:"env,omitempty" mapstructure:"env"`
	Logs        Logs        `yaml:"logs,omitempty" json:"logs,omitempty" mapstructure:"logs"`

	// ConfigFile is the absolute path of the config file that was read, if any.
	ConfigFile string `yaml:"-" json:"config_file,omitempty" mapstructure:"-"`
	// BasePath is the absolute directory holding the Taskfile.
	BasePath string `yaml:"-" json:"base_path,omitempty" mapstructure:"-"`
}

// EnvSettings describes the directories exported to tasks.
type EnvSettings struct {
	AppDir     string   `yaml:"app_dir" json:"app_dir" mapstructure:"app_dir"`
	SourceDirs []string `yaml:"source_dirs,omitempty" json:"source_dirs,omitempty" mapstructure:"source_dirs"`
}

type Logs struct {
	File  string `yaml:"file" json:"file" mapstructure:"file"`
	Level string `yaml:"level" json:"level" mapstructure:"level"`
	// Verbose adds the context table and full error chain to printed errors.
	Verbose bool `yaml:"verbose" json:"verbose" mapstructure:"verbose"`
}
