package vecbridge

import (
	"log/slog"

	"github.com/phanxgames/vecbridge/engine"
)

// SetLogger configures the logger for vecbridge and the engine. By default
// nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: degraded features (even-odd fill rule, image decode,
//     mesh buffers, extra gradient stops) and import failures
//   - [slog.LevelWarn]: caller mistakes that are ignored, such as appending a
//     path that was not made by a vecbridge Factory
//
// Example:
//
//	vecbridge.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) { engine.SetLogger(l) }

// Logger returns the current logger. It is the same one the engine uses.
// Safe for concurrent use.
func Logger() *slog.Logger { return engine.Logger() }
