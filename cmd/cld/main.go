package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/analysis"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/config"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/export"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/hierarchy"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/pipeline"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/ui"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/updater"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/version"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/watcher"
)

//go:embed guide.md
var guideMD string

// runFlags carries the non-interactive output switches.
type runFlags struct {
	plain     bool
	out       string
	format    string
	exportAll bool
	copy      bool
	stats     bool
	watch     bool
	debounce  time.Duration
}

func main() {
	help := flag.Bool("help", false, "Show help")
	showVersion := flag.Bool("version", false, "Show version and check for updates")
	plain := flag.Bool("plain", false, "Print the rendered hierarchy to stdout and exit")
	out := flag.String("out", "", "Write the rendered hierarchy to a file")
	format := flag.String("format", "", "Force the input format: csv or xlsx")
	exportAll := flag.Bool("export-all", false, "Write text, SVG, PNG, and SQLite exports")
	copyFlag := flag.Bool("copy", false, "Copy the rendered hierarchy to the clipboard")
	stats := flag.Bool("stats", false, "Print summary statistics")
	indent := flag.String("indent", "", "Indent unit for rendering (default two spaces)")
	policy := flag.String("policy", "", "Empty cell policy: end-path, repeat, or bridge")
	watch := flag.Bool("watch", false, "Reload when the input file changes")
	serve := flag.Bool("serve", false, "Serve the upload page over HTTP")
	port := flag.Int("port", 0, "Port for -serve (default picks from 8501-8599)")
	noBrowser := flag.Bool("no-browser", false, "Do not open the browser for -serve")
	configPath := flag.String("config", "", "Config file (default "+config.FileName+" in cwd or home)")
	initCfg := flag.Bool("init", false, "Interactively create a config file")
	guide := flag.Bool("guide", false, "Show the user guide")
	flag.Parse()

	if *help {
		fmt.Println("Usage: cld [options] [file.csv|file.xlsx|-]")
		fmt.Println("\nRenders a four-level category hierarchy from a spreadsheet.")
		fmt.Println("With no flags and a terminal, opens the interactive viewer.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Println("cld " + version.Version)
		if tag, url, err := updater.CheckForUpdates(); err == nil && tag != "" {
			fmt.Printf("Update available: %s (%s)\n", tag, url)
		}
		os.Exit(0)
	}

	if *guide {
		showGuide()
		os.Exit(0)
	}

	if *initCfg {
		runInitWizard(*configPath)
		os.Exit(0)
	}

	if *format != "" && *format != "csv" && *format != "xlsx" {
		die("unknown format %q (want csv or xlsx)", *format)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		die("%v", err)
	}

	// Flags win over the config file.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["indent"] && cfg.Indent != "" {
		*indent = cfg.Indent
	}
	if !set["policy"] && cfg.Policy != "" {
		*policy = cfg.Policy
	}
	if !set["port"] && cfg.Port != 0 {
		*port = cfg.Port
	}
	if !set["no-browser"] && cfg.NoBrowser {
		*noBrowser = true
	}

	pol, err := hierarchy.ParsePolicy(*policy)
	if err != nil {
		die("%v", err)
	}
	renderOpts := pipeline.Options{Policy: pol, Indent: *indent}

	debounce := watcher.DefaultDebounceDuration
	if cfg.DebounceMS > 0 {
		debounce = time.Duration(cfg.DebounceMS) * time.Millisecond
	}

	if *serve {
		err := export.Serve(export.ServerOptions{
			Port:        *port,
			Render:      renderOpts,
			OpenBrowser: !*noBrowser,
		})
		if err != nil {
			die("%v", err)
		}
		return
	}

	path := flag.Arg(0)
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	plainMode := *plain || *out != "" || *copyFlag || *stats || *exportAll || !interactive

	if *watch && path == "-" {
		die("-watch needs a file path, not stdin")
	}

	if !plainMode {
		runTUI(path, renderOpts, cfg.Theme, *watch, debounce)
		return
	}

	if path == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			path = "-"
		} else {
			die("input file required (or pipe CSV on stdin)")
		}
	}

	runPlain(path, renderOpts, runFlags{
		plain:     *plain,
		out:       *out,
		format:    *format,
		exportAll: *exportAll,
		copy:      *copyFlag,
		stats:     *stats,
		watch:     *watch,
		debounce:  debounce,
	})
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, _, err := config.Discover()
	return cfg, err
}

// loadInput reads the spreadsheet from a file or stdin and runs the
// full parse-fold-render pipeline on it.
func loadInput(path, forced string, opts pipeline.Options) (pipeline.Result, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return pipeline.Result{}, fmt.Errorf("read stdin: %w", err)
		}
		name := "stdin"
		if forced != "" {
			name = "stdin." + forced
		}
		return pipeline.Render(name, data, opts)
	}
	if forced != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return pipeline.Result{}, err
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return pipeline.Render(base+"."+forced, data, opts)
	}
	return pipeline.RenderFile(path, opts)
}

func runPlain(path string, opts pipeline.Options, f runFlags) {
	res, err := loadInput(path, f.format, opts)
	if err != nil {
		die("%v", err)
	}
	if err := emit(res, f); err != nil {
		die("%v", err)
	}

	if !f.watch {
		return
	}

	fw, err := watcher.NewFileWatcher(path, f.debounce, func(string) {
		res, err := loadInput(path, f.format, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
			return
		}
		if err := emit(res, f); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	})
	if err != nil {
		die("%v", err)
	}
	if err := fw.Start(context.Background()); err != nil {
		die("%v", err)
	}
	defer fw.Stop()

	fmt.Fprintf(os.Stderr, "Watching %s for changes. Ctrl+C to stop.\n", path)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}

// emit writes the requested outputs for one render. Confirmations go
// to stderr so stdout stays clean for the hierarchy text.
func emit(res pipeline.Result, f runFlags) error {
	printText := f.plain || (f.out == "" && !f.copy && !f.stats && !f.exportAll)
	if printText {
		fmt.Print(res.Text)
	}
	if f.out != "" {
		if err := export.WriteText(f.out, res.Text); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", f.out)
	}
	if f.copy {
		if err := export.CopyText(res.Text); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Copied %d categories to clipboard\n", res.Tree.Count())
	}
	if f.exportAll {
		dir := "."
		if f.out != "" {
			dir = filepath.Dir(f.out)
		}
		base := exportBase(res.Table.SourceName)
		err := export.WriteBundle(export.BundleOptions{
			Dir:      dir,
			BaseName: base,
			Root:     res.Tree,
			Text:     res.Text,
			Title:    res.Table.SourceName,
			Meta: export.SQLiteMeta{
				Source:    res.Table.SourceName,
				Tool:      "cld " + version.Version,
				CreatedAt: time.Now(),
			},
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %s.{txt,svg,png,sqlite3} to %s\n", base, dir)
	}
	if f.stats {
		printStats(res)
	}
	return nil
}

func exportBase(source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." || base == "stdin" {
		return "hierarchy"
	}
	return base
}

func printStats(res pipeline.Result) {
	s := analysis.Summarize(res.Tree)
	fmt.Printf("Categories: %d\n", s.Total)
	fmt.Printf("Leaves:     %d\n", s.Leaves)
	fmt.Printf("Max depth:  %d\n", s.MaxDepth)
	for i, n := range s.PerLevel {
		fmt.Printf("%-16s %d\n", model.RequiredColumns[i], n)
	}

	audit := analysis.Audit(res.Table)
	if audit.Clean() {
		return
	}
	fmt.Println("\nFindings:")
	for _, f := range audit.Findings {
		if len(f.Rows) > 0 {
			fmt.Printf("  [%s] %s (rows %s)\n", f.Kind, f.Detail, rowList(f.Rows))
		} else {
			fmt.Printf("  [%s] %s\n", f.Kind, f.Detail)
		}
	}
}

func rowList(rows []int) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, ", ")
}

func runTUI(path string, opts pipeline.Options, theme string, watch bool, debounce time.Duration) {
	p := ui.NewProgram(ui.AppOptions{Path: path, Render: opts, Theme: theme})

	if watch && path != "" {
		fw, err := watcher.NewFileWatcher(path, debounce, func(string) {
			p.Send(ui.FileChangedMsg{})
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "watch disabled: %v\n", err)
		} else if err := fw.Start(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "watch disabled: %v\n", err)
		} else {
			defer fw.Stop()
		}
	}

	if _, err := p.Run(); err != nil {
		die("Error running viewer: %v", err)
	}
}

func runInitWizard(path string) {
	if path == "" {
		path = config.FileName
	}

	var cfg config.Config
	openBrowser := true
	portStr := strconv.Itoa(export.DefaultServePort)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Indent style").
				Options(
					huh.NewOption("Two spaces", "  "),
					huh.NewOption("Four spaces", "    "),
					huh.NewOption("Tab", "\t"),
				).
				Value(&cfg.Indent),
			huh.NewSelect[string]().
				Title("Empty cell policy").
				Description("How rows with blank middle columns fold into the tree").
				Options(
					huh.NewOption("End the path at the blank cell", "end-path"),
					huh.NewOption("Repeat the value above", "repeat"),
					huh.NewOption("Bridge over the blank level", "bridge"),
				).
				Value(&cfg.Policy),
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Auto detect", ""),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(&cfg.Theme),
			huh.NewInput().
				Title("Serve port").
				Description("First port -serve tries").
				Value(&portStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > 65535 {
						return errors.New("enter a port between 1 and 65535")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Open the browser when serving?").
				Value(&openBrowser),
		),
	)
	if err := form.Run(); err != nil {
		die("%v", err)
	}

	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))
	cfg.NoBrowser = !openBrowser
	if err := config.Save(path, cfg); err != nil {
		die("%v", err)
	}
	fmt.Printf("Wrote %s\n", path)
}

func showGuide() {
	out, err := glamour.Render(guideMD, "auto")
	if err != nil {
		fmt.Print(guideMD)
		return
	}
	fmt.Print(out)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
