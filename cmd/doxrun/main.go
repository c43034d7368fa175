package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/doxrun/internal/annotate"
	"github.com/jorge-barreto/doxrun/internal/config"
	"github.com/jorge-barreto/doxrun/internal/dispatch"
	"github.com/jorge-barreto/doxrun/internal/docs"
	"github.com/jorge-barreto/doxrun/internal/doctor"
	"github.com/jorge-barreto/doxrun/internal/log"
	"github.com/jorge-barreto/doxrun/internal/runner"
	"github.com/jorge-barreto/doxrun/internal/scaffold"
	"github.com/jorge-barreto/doxrun/internal/state"
	"github.com/jorge-barreto/doxrun/internal/ux"
)

var (
	logger  = slog.Default()
	closers []io.Closer
)

func main() {
	app := &cli.Command{
		Name:        "doxrun",
		Usage:       "Generate Doxygen documentation for a set of projects",
		Description: "Run 'doxrun docs' for documentation on config syntax, the build model, and more.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "Diagnostic log level (trace, debug, info, warn, error)"},
			&cli.StringFlag{Name: "log-file", Usage: "Also append diagnostic logs to this file"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			l, c, err := log.SetupLogger(cmd.String("log-level"), cmd.String("log-file"))
			if err != nil {
				return ctx, fmt.Errorf("opening log file: %w", err)
			}
			logger, closers = l, c
			slog.SetDefault(logger)
			return ctx, nil
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			for _, c := range closers {
				c.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			initCmd(),
			buildCmd(),
			annotateCmd(),
			statusCmd(),
			doctorCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ux.ErrorLabel(), err)
		os.Exit(1)
	}
}

// project locates and loads the config for the current directory.
func project() (root, artifactsDir string, cfg *config.Config, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", "", nil, err
	}
	root, configPath, err := config.FindRoot(cwd)
	if err != nil {
		return "", "", nil, err
	}
	cfg, err = config.Load(configPath, root)
	if err != nil {
		return "", "", nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("loaded config", "path", configPath, "projects", len(cfg.Projects))
	return root, config.ArtifactsDir(root), cfg, nil
}

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Generate documentation for every configured project",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the generated configs without running the tool"},
			&cli.IntFlag{Name: "from", Usage: "Start from project N (1-indexed)"},
			&cli.BoolFlag{Name: "resume", Usage: "Continue the last failed or interrupted run"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, artifactsDir, cfg, err := project()
			if err != nil {
				return err
			}

			from := int(cmd.Int("from"))
			resume := cmd.Bool("resume")
			dryRun := cmd.Bool("dry-run")
			if resume && from > 0 {
				return fmt.Errorf("--resume and --from are mutually exclusive")
			}
			if from < 0 || from > len(cfg.Projects) {
				return fmt.Errorf("--from %d out of range (config has %d projects)", from, len(cfg.Projects))
			}

			var st *state.State
			switch {
			case resume:
				st, err = state.Load(artifactsDir)
				if err != nil {
					return fmt.Errorf("loading state: %w", err)
				}
				if !st.Resumable() {
					return fmt.Errorf("no failed or interrupted run to resume")
				}
				if st.ProjectIndex >= len(cfg.Projects) {
					return fmt.Errorf("saved project index %d out of range (config has %d projects)", st.ProjectIndex+1, len(cfg.Projects))
				}
			case dryRun:
				st = state.New()
			default:
				if err := state.Reset(artifactsDir); err != nil {
					return err
				}
				st = state.New()
			}
			if from > 0 {
				st.SetProject(from - 1)
			}

			env := &dispatch.Environment{
				ProjectRoot:  root,
				DocsDir:      cfg.DocsPath(root),
				ArtifactsDir: artifactsDir,
				RunID:        st.RunID,
				ProjectCount: len(cfg.Projects),
			}
			r := &runner.Runner{
				Config: cfg,
				State:  st,
				Env:    env,
				Tool: &dispatch.Doxygen{
					Path:    cfg.Tool,
					Timeout: time.Duration(cfg.TimeoutMinutes()) * time.Minute,
				},
				Logger: logger,
			}

			if dryRun {
				r.DryRunPrint()
				return nil
			}

			if err := dispatch.Preflight(cfg.Tool); err != nil {
				return err
			}

			st.Status = state.StatusRunning
			if err := state.EnsureDir(artifactsDir); err != nil {
				return err
			}
			if err := st.Save(artifactsDir); err != nil {
				return err
			}
			logger.Info("starting build", "run_id", st.RunID, "from", st.ProjectIndex+1, "projects", len(cfg.Projects))

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			return r.Run(ctx)
		},
	}
}

func annotateCmd() *cli.Command {
	return &cli.Command{
		Name:  "annotate",
		Usage: "Insert Doxygen comment blocks into headers from class XML",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "xml", Usage: "Class description XML file"},
			&cli.StringFlag{Name: "source", Usage: "Header file to annotate"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print a diff instead of writing"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			xmlPath, sourcePath := cmd.String("xml"), cmd.String("source")
			if (xmlPath == "") != (sourcePath == "") {
				return fmt.Errorf("--xml and --source must be given together")
			}

			var jobs []config.Annotation
			if xmlPath != "" {
				jobs = append(jobs, config.Annotation{XML: xmlPath, Source: sourcePath})
			} else {
				root, _, cfg, err := project()
				if err != nil {
					return err
				}
				if len(cfg.Annotations) == 0 {
					return fmt.Errorf("no annotations configured and no --xml/--source given")
				}
				vars := cfg.PathVars(root)
				for _, a := range cfg.Annotations {
					jobs = append(jobs, config.Annotation{
						XML:    config.ResolvePath(a.XML, vars, root),
						Source: config.ResolvePath(a.Source, vars, root),
					})
				}
			}

			opts := annotate.Options{DryRun: cmd.Bool("dry-run"), Logger: logger}
			for _, job := range jobs {
				report, err := annotate.File(job.XML, job.Source, opts)
				if err != nil {
					if errors.Is(err, annotate.ErrClassNotFound) || errors.Is(err, annotate.ErrMethodNotFound) {
						return fmt.Errorf("%w (file left unchanged)", err)
					}
					return err
				}
				if opts.DryRun {
					ux.Diff(report.Diff)
					continue
				}
				ux.Annotated(report.Source, report.Blocks)
			}
			return nil
		},
	}
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the state of the last build",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, artifactsDir, cfg, err := project()
			if err != nil {
				return err
			}
			if !state.Exists(artifactsDir) {
				fmt.Fprintln(ux.Out, "No build has been run yet.")
				return nil
			}
			st, err := state.Load(artifactsDir)
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}
			ux.RenderStatus(cfg, st, artifactsDir)
			return nil
		},
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Diagnose a failed build",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, artifactsDir, cfg, err := project()
			if err != nil {
				return err
			}
			st, err := state.Load(artifactsDir)
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}
			return doctor.Run(root, artifactsDir, cfg, st)
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a new .doxrun/ directory with a detected config",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Fprint(ux.Out, "\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Fprintf(ux.Out, "  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Fprintln(ux.Out, "\nRun 'doxrun docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprint(ux.Out, t.Content)
			return nil
		},
	}
}
