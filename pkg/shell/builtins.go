package shell

import (
	"context"

	"mvdan.cc/sh/v3/interp"

	log "github.com/cloudposse/dispatch/pkg/logger"
)

// LogBuiltinName is the command scripts use to write prefixed log lines.
const LogBuiltinName = "log"

// LogBuiltin returns the `log` command: `log message...` writes one prefixed
// line, and a bare `log` prefixes every line read from its stdin. Output goes
// to the script's stderr under p's prefix and lock. It always succeeds.
func LogBuiltin(p *log.Prefixer) Builtin {
	return func(_ context.Context, hc interp.HandlerContext, args []string) error {
		p.WithWriter(hc.Stderr).Log(args, hc.Stdin)
		return nil
	}
}
