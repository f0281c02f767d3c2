// Package teamsynth provides the core types for convention-based
// multi-team stack synthesis.
//
// A repository opts a team into deployment by creating a directory named
// modules_<team>/; every immediate subdirectory containing an index.py is
// deployed as one Lambda function inside that team's stack:
//
//	repo/
//	  modules_ale/
//	    tope/index.py       -> function modules-ale-tope-<stage>
//	  modules_payments/
//	    checkout/index.py   -> function modules-payments-checkout-<stage>
//
// The teamsynth CLI discovers these directories and generates one
// CloudFormation template per team plus a shared infrastructure template.
package teamsynth

// Team is a tenant discovered from a modules_<name> directory.
// One Team maps to exactly one stack and one execution role.
type Team struct {
	// Name is the team identifier extracted from the directory name
	// (lowercase, alphanumeric and underscore, starts with a letter).
	Name string
	// Dir is the absolute path of the modules_<name> directory.
	Dir string
}

// Module is a single deployable function unit belonging to a team,
// identified by its directory name. A directory qualifies only when it
// contains index.py as a direct child.
type Module struct {
	// Name is the containing directory's name.
	Name string
	// Team is the owning team's name.
	Team string
	// Dir is the absolute path of the module directory.
	Dir string
}

// Template represents a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in a CloudFormation template.
type ResourceDef struct {
	Type       string         `json:"Type" yaml:"Type"`
	Properties map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
}

// Output is a CloudFormation template output.
type Output struct {
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any    `json:"Value" yaml:"Value"`
	Export      *struct {
		Name string `json:"Name" yaml:"Name"`
	} `json:"Export,omitempty" yaml:"Export,omitempty"`
}

// DeploymentRecord is the output record surfaced for one deployed module.
// Produced once during assembly, never mutated.
type DeploymentRecord struct {
	// Module is the module directory name.
	Module string `json:"module"`
	// Team is the owning team.
	Team string `json:"team"`
	// FunctionName is the generated Lambda function name.
	FunctionName string `json:"function_name"`
	// LogicalID is the function's logical ID inside the team template.
	LogicalID string `json:"logical_id"`
}

// StackArtifact is one synthesized stack: its template plus the
// deployment-time metadata the provisioning engine consumes.
type StackArtifact struct {
	// Name is the stack name, e.g. TeamAleStack-newstg.
	Name string `json:"name"`
	// Template is the generated CloudFormation document.
	Template *Template `json:"-"`
	// TemplateFile is the path of the emitted template, relative to the
	// artifact directory. Set during emission.
	TemplateFile string `json:"template_file,omitempty"`
	// DependsOn names stacks that must deploy first.
	DependsOn []string `json:"depends_on,omitempty"`
	// Tags are applied to every resource in the stack at deploy time.
	Tags map[string]string `json:"tags,omitempty"`
}

// SynthResult is the JSON output from `teamsynth synth`.
type SynthResult struct {
	Success bool               `json:"success"`
	Stacks  []*StackArtifact   `json:"stacks,omitempty"`
	Records []DeploymentRecord `json:"records,omitempty"`
	Errors  []string           `json:"errors,omitempty"`
}

// ListResult is the JSON output from `teamsynth list`.
type ListResult struct {
	Teams []ListTeam `json:"teams"`
}

// ListTeam is one team entry in a ListResult.
type ListTeam struct {
	Name    string   `json:"name"`
	Dir     string   `json:"dir"`
	Modules []string `json:"modules"`
}
