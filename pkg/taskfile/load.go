// Package taskfile turns a Taskfile.yaml into registered tasks whose bodies
// run shell steps.
package taskfile

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	errUtils "github.com/cloudposse/dispatch/errors"
	log "github.com/cloudposse/dispatch/pkg/logger"
	"github.com/cloudposse/dispatch/pkg/schema"
)

// Load reads and decodes the Taskfile at path.
func Load(path string) (*schema.Taskfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errUtils.Build(errUtils.ErrTaskfileNotFound).
				WithContext("path", path).
				WithHint("Create a Taskfile.yaml or point --taskfile at an existing one").
				Err()
		}
		return nil, errUtils.Build(errUtils.ErrReadTaskfile).
			WithCause(err).
			WithContext("path", path).
			Err()
	}
	log.Debug("Loaded Taskfile", "path", path, "bytes", len(data))
	return Parse(data, path)
}

// Parse decodes Taskfile content. An empty document yields no tasks.
func Parse(data []byte, path string) (*schema.Taskfile, error) {
	tf := &schema.Taskfile{}
	if len(bytes.TrimSpace(data)) == 0 {
		return tf, nil
	}
	if err := yaml.Unmarshal(data, tf); err != nil {
		return nil, errUtils.Build(errUtils.ErrParseTaskfile).
			WithCause(err).
			WithContext("path", path).
			Err()
	}
	return tf, nil
}
