package main

import (
    "flag"
    "fmt"
    "log/slog"
    "os"
    "strings"

    "github.com/jedib0t/go-pretty/v6/table"

    "github.com/tinyrange/peephole/internal/config"
    "github.com/tinyrange/peephole/internal/ir"
    "github.com/tinyrange/peephole/internal/parser"
    "github.com/tinyrange/peephole/internal/passes"
)

func main() {
    outPath := flag.String("o", "", "write optimized IR to this file instead of stdout")
    cfgPath := flag.String("config", "", "TOML pipeline config file")
    passList := flag.String("passes", "", "comma-separated pass names (overrides config)")
    stats := flag.Bool("stats", false, "print a per-function rewrite summary")
    verify := flag.Bool("verify", false, "verify IR invariants around every pass")
    verbose := flag.Bool("v", false, "enable debug logging")
    flag.Parse()

    if flag.NArg() != 1 {
        fmt.Fprintln(os.Stderr, "usage: peephole [flags] <file.ir>")
        os.Exit(2)
    }
    srcPath := flag.Arg(0)

    if *verbose {
        slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
    }

    cfg := config.Default()
    if *cfgPath != "" {
        c, err := config.Load(*cfgPath)
        if err != nil {
            fmt.Fprintf(os.Stderr, "config error: %v\n", err)
            os.Exit(1)
        }
        cfg = c
    }

    names := cfg.Pipeline.Passes
    if *passList != "" {
        names = strings.Split(*passList, ",")
    }
    pipeline, err := resolvePasses(names)
    if err != nil {
        fmt.Fprintf(os.Stderr, "%v\n", err)
        os.Exit(1)
    }

    data, err := os.ReadFile(srcPath)
    if err != nil {
        fmt.Fprintf(os.Stderr, "read error: %v\n", err)
        os.Exit(1)
    }
    m, perr := parser.ParseFile(srcPath, string(data))
    if perr != nil {
        fmt.Fprintf(os.Stderr, "parse error: %v\n", perr)
        os.Exit(1)
    }

    runCfg := passes.Config{
        DumpBefore: cfg.Dump.Before,
        DumpAfter:  cfg.Dump.After,
        DumpFunc:   cfg.Dump.Func,
        Verify:     cfg.Pipeline.Verify || *verify,
    }

    type row struct {
        fn     string
        before int
        after  int
        res    passes.Result
    }
    var rows []row
    for _, f := range m.Funcs {
        before := countInstrs(f)
        res, err := passes.Run(f, pipeline, runCfg)
        if err != nil {
            fmt.Fprintf(os.Stderr, "pass error: %v\n", err)
            os.Exit(1)
        }
        rows = append(rows, row{fn: f.Name, before: before, after: countInstrs(f), res: res})
    }

    if *stats {
        t := table.NewWriter()
        t.SetOutputMirror(os.Stderr)
        t.SetTitle("Rewrites")
        t.AppendHeader(table.Row{"Func", "Instrs before", "Instrs after", "Rewrites", "Preserved"})
        for _, r := range rows {
            t.AppendRow(table.Row{r.fn, r.before, r.after, r.res.Rewrites, r.res.Preserved.String()})
        }
        t.Render()
    }

    out := m.String()
    if *outPath == "" {
        fmt.Print(out)
        return
    }
    if err := os.WriteFile(*outPath, []byte(out), 0644); err != nil {
        fmt.Fprintf(os.Stderr, "write error: %v\n", err)
        os.Exit(1)
    }
}

func resolvePasses(names []string) ([]passes.Pass, error) {
    if len(names) == 0 {
        return passes.Default(), nil
    }
    var out []passes.Pass
    for _, n := range names {
        n = strings.TrimSpace(n)
        p, ok := passes.Lookup(n)
        if !ok {
            return nil, fmt.Errorf("unknown pass %q", n)
        }
        out = append(out, p)
    }
    return out, nil
}

func countInstrs(f *ir.Function) int {
    n := 0
    for _, b := range f.Blocks { n += len(b.Instrs) }
    return n
}
