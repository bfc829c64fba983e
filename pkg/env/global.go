// Package env prepares the environment tasks run with.
package env

import (
	"os"
	"sort"
	"strings"

	log "github.com/cloudposse/dispatch/pkg/logger"
)

// ConvertMapToSlice converts a map[string]string to []string{"KEY=value", ...}
// sorted by key.
func ConvertMapToSlice(envMap map[string]string) []string {
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]string, 0, len(envMap))
	for _, k := range keys {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// Merge returns base with overrides applied. Existing keys are replaced in
// place and new keys are appended in sorted order.
func Merge(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return append([]string(nil), base...)
	}

	seen := make(map[string]bool, len(overrides))
	result := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if v, ok := overrides[key]; ok {
			result = append(result, key+"="+v)
			seen[key] = true
			continue
		}
		result = append(result, kv)
	}

	rest := make(map[string]string)
	for k, v := range overrides {
		if !seen[k] {
			rest[k] = v
		}
	}
	return append(result, ConvertMapToSlice(rest)...)
}

// Lookup returns the value of key in env.
// When a key appears more than once the last entry wins, as with exec.
func Lookup(env []string, key string) (string, bool) {
	for i := len(env) - 1; i >= 0; i-- {
		k, v, ok := strings.Cut(env[i], "=")
		if ok && k == key {
			return v, true
		}
	}
	return "", false
}

// ExportDefaults sets each variable in the process environment unless it is
// already present. It returns the keys that were set.
func ExportDefaults(vars map[string]string) []string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var exported []string
	for _, k := range keys {
		if _, exists := os.LookupEnv(k); exists {
			log.Trace("Keeping existing ENV var", "key", k)
			continue
		}
		if err := os.Setenv(k, vars[k]); err != nil {
			log.Warn("Failed to set ENV var", "key", k, "err", err)
			continue
		}
		log.Trace("Setting ENV var", "key", k, "value", vars[k])
		exported = append(exported, k)
	}
	return exported
}
