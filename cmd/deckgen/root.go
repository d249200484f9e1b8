package main

import (
	"fmt"
	"strings"

	"github.com/paramcamp/deck"
	"github.com/paramcamp/deck/internal/config"
	"github.com/paramcamp/deck/internal/export"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "dev"

// app holds the state shared by the commands of one invocation.
type app struct {
	log        *logrus.Logger
	configFile string
	verbose    bool
	job        *config.Job

	stations int
	workers  int
	partial  bool
	out      config.OutputSpec
}

func newRootCmd(log *logrus.Logger) *cobra.Command {
	a := &app{log: log}
	root := &cobra.Command{
		Use:   "deckgen",
		Short: "Build bridge deck solids from guide curves and templates.",
		Long: `deckgen samples the center curve of a bridge into stations, places the
cross-section templates on them, lofts the deck and adds reinforcement
channels and piers as described by a TOML or YAML job file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.startup(cmd.Flags())
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "./deck.toml", "job file location (.toml, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log dropped stations and other details")

	build := &cobra.Command{
		Use:   "build",
		Short: "Build the bridge and write its solids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.build()
		},
	}
	addJobFlags(build.Flags(), a)
	build.Flags().StringVar(&a.out.STL, "stl", "", "STL output file (overrides the job)")
	build.Flags().StringVar(&a.out.Frames, "frames", "", "YAML file for the station frames (overrides the job)")
	build.Flags().StringVar(&a.out.Plan, "plan", "", "PNG file for the plan view (overrides the job)")

	plan := &cobra.Command{
		Use:   "plan [output.png]",
		Short: "Build the bridge and draw its plan view only",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.out.Plan = args[0]
			}
			return a.plan()
		},
	}
	addJobFlags(plan.Flags(), a)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of deckgen",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "deckgen %s\n", version)
		},
	}

	root.AddCommand(build, plan, versionCmd)
	return root
}

func addJobFlags(fs *pflag.FlagSet, a *app) {
	fs.IntVar(&a.stations, "stations", 0, "number of stations (overrides the job)")
	fs.IntVar(&a.workers, "workers", 0, "goroutines used to transport templates (overrides the job)")
	fs.BoolVar(&a.partial, "partial", false, "keep going when stations are lost")
}

// startup reads the job file and applies the flags that override it.
func (a *app) startup(fs *pflag.FlagSet) error {
	if a.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}
	job, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if fs.Changed("stations") {
		job.Stations = a.stations
	}
	if fs.Changed("workers") {
		job.Workers = a.workers
	}
	if fs.Changed("partial") {
		job.Partial = a.partial
	}
	for _, o := range []struct {
		flag string
		src  string
		dst  *string
	}{
		{"stl", a.out.STL, &job.Output.STL},
		{"frames", a.out.Frames, &job.Output.Frames},
		{"plan", a.out.Plan, &job.Output.Plan},
	} {
		if fs.Changed(o.flag) {
			*o.dst = o.src
		}
	}
	if err := job.Validate(); err != nil {
		return err
	}
	a.job = job
	a.log.WithFields(logrus.Fields{
		"job":      a.configFile,
		"bridge":   job.Name,
		"stations": job.Stations,
	}).Debug("loaded job")
	return nil
}

func (a *app) bridge() (*deck.Bridge, error) {
	in, opts, err := a.job.Bridge()
	if err != nil {
		return nil, err
	}
	opts.Log = a.log
	b, err := deck.BuildBridge(in, &opts)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", a.job.Name, err)
	}
	for _, s := range b.Solids() {
		for _, w := range s.Warnings {
			a.log.WithField("bridge", b.Name).Warn(w)
		}
	}
	return b, nil
}

func (a *app) build() error {
	b, err := a.bridge()
	if err != nil {
		return err
	}
	out := a.job.Output
	if err := export.WriteSTLFile(out.STL, b.Solids()...); err != nil {
		return err
	}
	written := []string{out.STL}
	if out.Frames != "" {
		if err := export.WriteFramesFile(out.Frames, b.Deck); err != nil {
			return err
		}
		written = append(written, out.Frames)
	}
	if out.Plan != "" {
		if err := export.WritePlanFile(out.Plan, b); err != nil {
			return err
		}
		written = append(written, out.Plan)
	}
	a.log.WithFields(logrus.Fields{
		"bridge": b.Name,
		"files":  strings.Join(written, ","),
	}).Info("wrote bridge")
	return nil
}

func (a *app) plan() error {
	path := a.out.Plan
	if path == "" {
		path = a.job.Output.Plan
	}
	if path == "" {
		path = a.job.Name + ".png"
	}
	b, err := a.bridge()
	if err != nil {
		return err
	}
	if err := export.WritePlanFile(path, b); err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{"bridge": b.Name, "files": path}).Info("wrote plan view")
	return nil
}
