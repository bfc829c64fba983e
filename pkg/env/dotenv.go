package env

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	errUtils "github.com/cloudposse/dispatch/errors"
	log "github.com/cloudposse/dispatch/pkg/logger"
)

// ReadDotenv reads the given dotenv files, resolved against baseDir.
// Missing files are skipped; later files override earlier ones.
func ReadDotenv(baseDir string, files []string) (map[string]string, error) {
	vars := make(map[string]string)
	for _, file := range files {
		path := file
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Trace("Dotenv file not found", "file", path)
			continue
		}
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, errUtils.Build(errUtils.ErrLoadDotenv).
				WithCause(err).
				WithContext("file", path).
				Err()
		}
		log.Debug("Loaded dotenv file", "file", path, "vars", len(values))
		for k, v := range values {
			vars[k] = v
		}
	}
	return vars, nil
}
