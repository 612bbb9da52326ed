package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docroles/internal/release"
	"git.home.luguber.info/inful/docroles/internal/roles"
)

// RolesCmd implements the 'roles' command.
type RolesCmd struct{}

// Run prints every registered role and the extension's parallel safety.
func (RolesCmd) Run(g *Global) error {
	reg := roles.NewRegistry()
	meta, err := roles.Setup(reg)
	if err != nil {
		return err
	}
	for _, name := range reg.Names() {
		if _, err := fmt.Fprintln(g.Out, name); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(g.Out, "\nparallel_read_safe: %t\nparallel_write_safe: %t\n",
		meta.ParallelReadSafe, meta.ParallelWriteSafe)
	return err
}

// MirrorsCmd implements the 'mirrors' command.
type MirrorsCmd struct{}

// Run prints the CDN mirror table, primary first.
func (MirrorsCmd) Run(g *Global) error {
	primary := release.Primary()
	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "HOST\tREGION\tROLE")
	for _, m := range release.Buckets() {
		role := "backup"
		if m == primary {
			role = "primary"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Host, m.Region, role)
	}
	return tw.Flush()
}

// CDNPlanCmd implements the 'cdn-plan' command.
type CDNPlanCmd struct {
	Release string `arg:"" optional:"" help:"Release version. Defaults to build.version"`
	Format  string `short:"f" default:"text" help:"Output format (text, json or yaml)" enum:"text,json,yaml"`
}

type cdnPlan struct {
	Version          string           `json:"version" yaml:"version"`
	Subdir           string           `json:"subdir" yaml:"subdir"`
	Deployment       string           `json:"deployment" yaml:"deployment"`
	DeploymentRegion string           `json:"deployment_region" yaml:"deployment_region"`
	Uploads          []release.Upload `json:"uploads" yaml:"uploads"`
}

// Run prints every upload a release of the given version performs.
func (pc *CDNPlanCmd) Run(g *Global, root *CLI) error {
	version := pc.Release
	if version == "" {
		cfg, err := root.loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.RequireVersion(); err != nil {
			return err
		}
		version = cfg.Build.Version
	}

	uploads, err := release.PlanCDNUploads(version)
	if err != nil {
		return err
	}
	plan := cdnPlan{
		Version:          version,
		Subdir:           release.Subdir(version),
		Deployment:       release.DeploymentURI(version),
		DeploymentRegion: release.DeploymentRegion(),
		Uploads:          uploads,
	}

	switch pc.Format {
	case "json":
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	case "yaml":
		enc := yaml.NewEncoder(g.Out)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return err
		}
		return enc.Close()
	}

	_, _ = fmt.Fprintf(g.Out, "Release %s (%s), deployment %s (%s)\n\n",
		plan.Version, plan.Subdir, plan.Deployment, plan.DeploymentRegion)
	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "BUCKET\tREGION\tLOCAL\tKEY")
	for _, u := range uploads {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.Bucket, u.Region, u.LocalPath, u.Key)
	}
	return tw.Flush()
}
