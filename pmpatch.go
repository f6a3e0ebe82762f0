package pmpatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Config is the per-run configuration.
type Config struct {
	PatchesDir  string
	Reverse     bool
	DryRun      bool
	IncludeDirs []string
	ConfigFile  string
}

// RunError is a whole-run failure, raised before or instead of a report.
// Per-file problems never surface as errors; they become report entries.
type RunError struct {
	Status int
	Err    error
}

func (e *RunError) Error() string { return e.Err.Error() }
func (e *RunError) Unwrap() error { return e.Err }

// App wires the collaborators together and drives one batch run.
type App struct {
	cfg     *Config
	locator Locator
	invoker Invoker
	logger  *log.Logger
}

func NewApp(cfg *Config, logger *log.Logger) (*App, error) {
	settings, err := LoadSettings(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}

	// CLI-supplied directories take precedence over configured ones.
	dirs := append(append([]string{}, cfg.IncludeDirs...), settings.IncludeDirs...)

	return &App{
		cfg:     cfg,
		logger:  logger,
		locator: NewIncludeLocator(dirs),
		invoker: NewPatchInvoker(settings.PatchProgram, settings.StripLevel),
	}, nil
}

// Execute processes every candidate file in the patches directory, in
// lexicographic filename order, and returns the finalized report. Files
// are handled strictly one after another; patches against a shared module
// tree must not run concurrently.
func (a *App) Execute() (Envelope, error) {
	if a.cfg.PatchesDir == "" {
		return Envelope{}, &RunError{Status: StatusBadRequest, Err: errors.New("patches_dir is required")}
	}
	dir := strings.TrimSuffix(a.cfg.PatchesDir, string(os.PathSeparator))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Envelope{}, &RunError{Status: StatusError, Err: fmt.Errorf("open patches directory: %w", err)}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			a.logger.Debug("skipping directory entry", "file", e.Name())
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var report Report
	for _, name := range names {
		a.processFile(dir, name, &report)
	}
	return report.Finalize(), nil
}

// processFile walks one file through match, locate, open check, probe and
// the apply/reverse decision. Every outcome past the locate step becomes
// exactly one report entry.
func (a *App) processFile(dir, name string, report *Report) {
	pf, ok := ParsePatchName(name)
	if !ok {
		a.logger.Debug("not a patch candidate", "file", name)
		return
	}

	modulePath, found := a.locator.Locate(pf.ModulePath)
	if !found {
		// Unlike the other skip paths, an uninstalled module
		// produces no report entry, only a log line.
		a.logger.Info("module not installed", "module", pf.ModuleColon, "file", name)
		return
	}
	targetDir := filepath.Dir(modulePath)
	patchPath := filepath.Join(dir, name)

	f, err := os.Open(patchPath)
	if err != nil {
		a.logger.Error("cannot open patch file", "file", name, "error", err)
		report.Add(name, StatusError, "Can't open")
		return
	}
	f.Close()

	probe, err := a.invoke(ModeProbe, patchPath, targetDir)
	if err != nil || probe.ExitCode != 0 {
		a.logger.Error("probe failed", "file", name, "exit", probe.ExitCode, "error", err)
		report.Add(name, StatusError, "Can't probe")
		return
	}
	applied := AlreadyApplied(probe.Output)
	a.logger.Debug("probed", "file", name, "module", pf.ModuleColon, "applied", applied)

	if a.cfg.Reverse {
		if !applied {
			report.Add(name, StatusNotModified, "Already reversed")
			return
		}
		if a.cfg.DryRun {
			report.Add(name, StatusOK, "Reverse-applying (dry-run)")
			return
		}
		if res, err := a.invoke(ModeReverse, patchPath, targetDir); err != nil || res.ExitCode != 0 {
			a.logger.Error("reverse-apply failed", "file", name, "exit", res.ExitCode, "error", err)
			report.Add(name, StatusError, "Can't reverse-apply")
			return
		}
		report.Add(name, StatusOK, "Reverse-applied")
		return
	}

	if applied {
		report.Add(name, StatusNotModified, "Already applied")
		return
	}
	if a.cfg.DryRun {
		report.Add(name, StatusOK, "Applying (dry-run)")
		return
	}
	if res, err := a.invoke(ModeApply, patchPath, targetDir); err != nil || res.ExitCode != 0 {
		a.logger.Error("apply failed", "file", name, "exit", res.ExitCode, "error", err)
		report.Add(name, StatusError, "Can't apply")
		return
	}
	report.Add(name, StatusOK, "Applied")
}

// invoke opens the patch file fresh for each invocation so no handle is
// held across steps.
func (a *App) invoke(mode InvokeMode, patchPath, dir string) (InvokeResult, error) {
	f, err := os.Open(patchPath)
	if err != nil {
		return InvokeResult{}, err
	}
	defer f.Close()
	return a.invoker.Invoke(mode, dir, f)
}
