package passes

import (
    "fmt"
    "log/slog"
    "os"

    "github.com/tinyrange/peephole/internal/ir"
)

// Config controls orchestrator behavior around pass invocations.
type Config struct {
    DumpBefore string // dump IR before this pass ("*" for all)
    DumpAfter  string // dump IR after this pass ("*" for all)
    DumpFunc   string // restrict dumps to this function name
    Verify     bool   // verify IR invariants before/after each pass
}

// Run executes the given passes on f in order, one forward scan each, and
// OR-combines their results. Passes share no state besides f itself; a
// function marked noopt only gets the passes that declare themselves
// required. Run never iterates to a fixed point.
func Run(f *ir.Function, passes []Pass, cfg Config) (Result, error) {
    agg := Result{Preserved: PreserveAll}
    for _, p := range passes {
        if f.NoOpt && !p.Required {
            slog.Debug("skipping pass on noopt function", "pass", p.Name, "func", f.Name)
            continue
        }

        if shouldDump(cfg.DumpBefore, p.Name) && matchFunc(cfg.DumpFunc, f.Name) {
            fmt.Fprintf(os.Stderr, "--- before %s (%s) ---\n", p.Name, f.Name)
            ir.Fprint(os.Stderr, f)
        }
        if cfg.Verify {
            if err := ir.Verify(f); err != nil {
                return agg, fmt.Errorf("verify before %s: %w", p.Name, err)
            }
        }

        res := p.Run(f)
        slog.Debug("pass done",
            "pass", p.Name,
            "func", f.Name,
            "rewrites", res.Rewrites,
            "preserved", res.Preserved.String())

        if cfg.Verify {
            if err := ir.Verify(f); err != nil {
                return agg, fmt.Errorf("verify after %s: %w", p.Name, err)
            }
        }
        if shouldDump(cfg.DumpAfter, p.Name) && matchFunc(cfg.DumpFunc, f.Name) {
            fmt.Fprintf(os.Stderr, "--- after %s (%s) ---\n", p.Name, f.Name)
            ir.Fprint(os.Stderr, f)
        }

        agg.Changed = agg.Changed || res.Changed
        agg.Rewrites += res.Rewrites
    }
    if agg.Changed { agg.Preserved = PreserveNone }
    return agg, nil
}

func shouldDump(pattern, name string) bool {
    return pattern == "*" || pattern == name
}

func matchFunc(filter, name string) bool {
    return filter == "" || filter == name
}
