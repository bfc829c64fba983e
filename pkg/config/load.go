package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	errUtils "github.com/cloudposse/dispatch/errors"
	log "github.com/cloudposse/dispatch/pkg/logger"
	"github.com/cloudposse/dispatch/pkg/schema"
)

// LoadConfig loads the configuration from the following sources (from lower to higher priority):
// defaults
// system config dirs ($XDG_CONFIG_DIRS/dispatch/config.yaml)
// user config dir ($XDG_CONFIG_HOME/dispatch/config.yaml)
// current directory (.dispatch.yaml)
// the file named by DISPATCH_CONFIG or --config
// DISPATCH_* ENV vars
// command-line flags
func LoadConfig(flags *pflag.FlagSet) (schema.Configuration, error) {
	var cfg schema.Configuration

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaultConfiguration(v)

	for _, path := range configSearchPaths(flags) {
		found, err := mergeConfigFile(v, path)
		if err != nil {
			return cfg, errUtils.Build(errUtils.ErrLoadConfig).
				WithCause(err).
				WithContext("file", path).
				Err()
		}
		if found {
			cfg.ConfigFile = path
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("env.app_dir", EnvPrefix+"_APP_DIR")
	_ = v.BindEnv("env.source_dirs", EnvPrefix+"_SOURCE_DIRS")

	if err := bindFlags(v, flags); err != nil {
		return cfg, errUtils.Build(errUtils.ErrLoadConfig).WithCause(err).Err()
	}

	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		stringToFieldsHookFunc(),
	)))
	if err != nil {
		return cfg, errUtils.Build(errUtils.ErrLoadConfig).WithCause(err).Err()
	}

	if err := resolvePaths(&cfg); err != nil {
		return cfg, errUtils.Build(errUtils.ErrLoadConfig).WithCause(err).Err()
	}

	log.Debug("Loaded configuration", "config", cfg.ConfigFile, "taskfile", cfg.Taskfile)
	return cfg, nil
}

// setDefaultConfiguration sets the default configuration for the viper instance.
func setDefaultConfiguration(v *viper.Viper) {
	v.SetDefault("taskfile", DefaultTaskfile)
	v.SetDefault("default_task", DefaultTaskName)
	v.SetDefault("help_marker", DefaultHelpMarker)
	v.SetDefault("dotenv", []string{DefaultDotenvFile})
	v.SetDefault("env.app_dir", DefaultAppDir)
	v.SetDefault("env.source_dirs", []string{DefaultTestsSubdir})
	v.SetDefault("logs.level", DefaultLogsLevel)
	v.SetDefault("logs.file", DefaultLogsFile)
	v.SetDefault("logs.verbose", false)
}

// configSearchPaths lists candidate config files in merge order.
func configSearchPaths(flags *pflag.FlagSet) []string {
	var paths []string

	for i := len(xdg.ConfigDirs) - 1; i >= 0; i-- {
		paths = append(paths, filepath.Join(xdg.ConfigDirs[i], AppName, ConfigFileName))
	}
	paths = append(paths, filepath.Join(xdg.ConfigHome, AppName, ConfigFileName))

	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, DotConfigFileName))
	}

	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		paths = append(paths, p)
	}
	if flags != nil {
		if p, err := flags.GetString(ConfigFlag); err == nil && p != "" {
			paths = append(paths, p)
		}
	}

	return paths
}

// mergeConfigFile merges path into v. A missing file is not an error.
func mergeConfigFile(v *viper.Viper, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			log.Trace("Config file not found", "file", path)
			return false, nil
		}
		return false, err
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return false, err
	}
	log.Debug("Merged config file", "file", path)
	return true, nil
}

// bindFlags maps command-line flags onto configuration keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	bindings := map[string]string{
		"taskfile":     TaskfileFlag,
		"logs.level":   LogsLevelFlag,
		"logs.file":    LogsFileFlag,
		"logs.verbose": VerboseFlag,
	}
	for key, name := range bindings {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// stringToFieldsHookFunc splits strings on commas and whitespace when the
// target is a string slice, so DISPATCH_SOURCE_DIRS="tests docs" works.
func stringToFieldsHookFunc() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		s, ok := data.(string)
		if !ok || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
			return data, nil
		}
		return strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		}), nil
	}
}

// resolvePaths makes the Taskfile path absolute and derives BasePath.
func resolvePaths(cfg *schema.Configuration) error {
	taskfile, err := filepath.Abs(cfg.Taskfile)
	if err != nil {
		return err
	}
	cfg.Taskfile = taskfile
	cfg.BasePath = filepath.Dir(taskfile)

	if cfg.ConfigFile != "" {
		if abs, err := filepath.Abs(cfg.ConfigFile); err == nil {
			cfg.ConfigFile = abs
		}
	}
	return nil
}
