// Package synth drives a full synthesis pass: shared infrastructure
// stack, one stack per discovered team, and the artifact directory the
// provisioning engine deploys from.
package synth

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	teamsynth "github.com/scalestack/teamsynth"
	"github.com/scalestack/teamsynth/internal/assemble"
	"github.com/scalestack/teamsynth/internal/config"
	"github.com/scalestack/teamsynth/internal/discover"
	"github.com/scalestack/teamsynth/internal/factory"
	"github.com/scalestack/teamsynth/internal/serialize"
)

// DefaultOutDir is where artifacts are written unless overridden.
const DefaultOutDir = "synth.out"

// ManifestFile is the artifact-directory index consumed by the
// provisioning engine.
const ManifestFile = "manifest.json"

// Options configures a synthesis pass.
type Options struct {
	// Root is the repository root scanned for modules_<team> directories.
	Root string
	// OutDir receives templates and the manifest. Empty means
	// DefaultOutDir; empty string with DryRun set skips emission.
	OutDir string
	// Format selects the template encoding. Zero value means JSON.
	Format serialize.Format
	// DryRun assembles everything but writes nothing.
	DryRun bool
	// Config carries region, stage, account and project settings. Nil
	// means environment defaults.
	Config *config.Config
	// Factory builds function resources. Nil means the python default.
	Factory factory.FunctionFactory
}

// SharedStackName returns the shared infrastructure stack name.
func SharedStackName(stage string) string {
	return fmt.Sprintf("SharedInfra-%s", stage)
}

// Run performs a full synthesis pass. Team stacks always depend on the
// shared stack so per-team deployments can assume shared resources
// exist. An assembly failure for one team aborts the pass; partial
// artifact directories are never left behind on encode errors because
// all templates are rendered before any file is written.
func Run(opts Options) (*teamsynth.SynthResult, error) {
	log := zap.S()

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Load()
	}
	f := opts.Factory
	if f == nil {
		f = factory.NewPythonFactory()
	}
	if opts.Format == "" {
		opts.Format = serialize.FormatJSON
	}
	if opts.Root == "" {
		opts.Root = "."
	}

	result := &teamsynth.SynthResult{}

	shared := sharedStack(cfg)
	result.Stacks = append(result.Stacks, shared)

	teams, err := discover.Teams(opts.Root)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		log.Warnf("no modules_<team> directories under %s; emitting shared stack only", opts.Root)
	}

	for _, team := range teams {
		artifact, records, err := assemble.TeamStack(team, cfg, f)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			return result, err
		}
		artifact.DependsOn = []string{shared.Name}
		result.Stacks = append(result.Stacks, artifact)
		result.Records = append(result.Records, records...)
	}

	result.Success = true

	if opts.DryRun {
		return result, nil
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = DefaultOutDir
	}
	if err := emit(result, outDir, opts.Format); err != nil {
		result.Success = false
		result.Errors = append(result.Errors, err.Error())
		return result, err
	}

	log.Infof("synthesized %d stack(s), %d function(s) into %s",
		len(result.Stacks), len(result.Records), outDir)
	return result, nil
}

func sharedStack(cfg *config.Config) *teamsynth.StackArtifact {
	name := SharedStackName(cfg.Stage)
	return &teamsynth.StackArtifact{
		Name: name,
		Template: &teamsynth.Template{
			AWSTemplateFormatVersion: "2010-09-09",
			Description:              fmt.Sprintf("Shared infrastructure for dynamic module stacks (%s)", cfg.Stage),
			Resources:                map[string]teamsynth.ResourceDef{},
			Outputs: map[string]teamsynth.Output{
				"SharedResourcesDeployed": {
					Description: "Marker consumed by team stacks",
					Value:       "true",
				},
			},
		},
		Tags: map[string]string{
			"stage":   cfg.Stage,
			"project": cfg.Project,
			"type":    "shared-infrastructure",
		},
	}
}

// emit renders every template first, then writes the artifact directory.
func emit(result *teamsynth.SynthResult, outDir string, format serialize.Format) error {
	type rendered struct {
		path string
		data []byte
	}
	files := make([]rendered, 0, len(result.Stacks)+1)

	for _, stack := range result.Stacks {
		data, err := serialize.Encode(stack.Template, format)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", stack.Name, err)
		}
		stack.TemplateFile = fmt.Sprintf("%s.template.%s", stack.Name, format.Ext())
		files = append(files, rendered{path: stack.TemplateFile, data: data})
	}

	sort.Slice(result.Records, func(i, j int) bool {
		if result.Records[i].Team != result.Records[j].Team {
			return result.Records[i].Team < result.Records[j].Team
		}
		return result.Records[i].Module < result.Records[j].Module
	})

	manifest, err := serialize.ToJSON(result)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	files = append(files, rendered{path: ManifestFile, data: manifest})

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(outDir, f.path), f.data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
	}
	return nil
}
