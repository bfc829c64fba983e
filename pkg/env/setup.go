package env

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudposse/dispatch/pkg/schema"
)

// Variables exported to every task.
const (
	BaseDirEnvVar  = "BASE_DIR"
	AppDirEnvVar   = "APP_DIR"
	SrcFilesEnvVar = "SRC_FILES"
	RunIDEnvVar    = "DISPATCH_RUN_ID"
	TaskEnvVar     = "DISPATCH_TASK"
)

// ProjectVars computes the directory variables for cfg.
// Relative directories are resolved against cfg.BasePath. SRC_FILES is the
// app directory followed by every source dir, separated by spaces.
func ProjectVars(cfg *schema.Configuration) map[string]string {
	base := cfg.BasePath
	appDir := resolve(base, cfg.Env.AppDir)

	srcFiles := []string{appDir}
	for _, dir := range cfg.Env.SourceDirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		srcFiles = append(srcFiles, resolve(base, dir))
	}

	return map[string]string{
		BaseDirEnvVar:  base,
		AppDirEnvVar:   appDir,
		SrcFilesEnvVar: strings.Join(srcFiles, " "),
	}
}

// Setup exports the project variables, dotenv values and the run ID into
// the process environment. Dotenv values replace the computed directories;
// values already present in the process environment win over both.
// It returns the resulting environment.
func Setup(cfg *schema.Configuration, runID string) ([]string, error) {
	dotenv, err := ReadDotenv(cfg.BasePath, cfg.Dotenv)
	if err != nil {
		return nil, err
	}

	vars := ProjectVars(cfg)
	for k, v := range dotenv {
		vars[k] = v
	}
	if runID != "" {
		vars[RunIDEnvVar] = runID
	}

	ExportDefaults(vars)
	return os.Environ(), nil
}

func resolve(base, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}
