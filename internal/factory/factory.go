// Package factory produces deployable Lambda function resources for
// discovered modules.
//
// The factory is a collaborator of the stack assembler: it knows how to
// turn a module directory into CloudFormation resources, but attaches
// its own default execution role and log group. The assembler is
// responsible for replacing the role with the team's restricted one and
// suppressing the log group.
package factory

import (
	"fmt"

	"github.com/iancoleman/strcase"

	teamsynth "github.com/scalestack/teamsynth"
	"github.com/scalestack/teamsynth/intrinsics"
)

// LogGroupSuffix is the logical-ID suffix of the observability resource
// the factory auto-creates alongside each function. The assembler keys
// suppression off this suffix.
const LogGroupSuffix = "LogGroup"

// FunctionSpec describes one module to deploy.
type FunctionSpec struct {
	// Name is the module directory name.
	Name string
	// Team is the owning team.
	Team string
	// SourceDir is the module's source directory.
	SourceDir string
	// Index is the entry-point file basename without extension.
	Index string
	// Handler is the callable inside the entry point, always "main".
	Handler string
	// Stage suffixes the generated function name.
	Stage string
}

// FunctionResources is the bundle the factory produces for one module:
// the function itself plus the default sub-resources the assembler may
// replace or suppress.
type FunctionResources struct {
	// LogicalID is the function's logical ID, e.g. TopeFunction.
	LogicalID string
	// FunctionName is the generated name, modules-<team>-<module>-<stage>.
	FunctionName string
	// Function is the AWS::Lambda::Function definition. Its Role
	// property initially points at the default role below.
	Function teamsynth.ResourceDef

	// DefaultRoleID / DefaultRole is the factory's own broad execution
	// role. At most one identity may remain attached per function, so
	// callers overriding the role must drop this resource entirely.
	DefaultRoleID string
	DefaultRole   teamsynth.ResourceDef

	// LogGroupID / LogGroup is the auto-created log group. Its logical
	// ID always ends in LogGroupSuffix.
	LogGroupID string
	LogGroup   teamsynth.ResourceDef
}

// FunctionFactory turns a module spec into deployable resources.
type FunctionFactory interface {
	NewFunction(spec FunctionSpec) (*FunctionResources, error)
}

// PythonFactory builds python Lambda functions. The zero value is not
// usable; construct with NewPythonFactory.
type PythonFactory struct {
	// Runtime is the Lambda runtime identifier.
	Runtime string
	// Architecture is the instruction set architecture.
	Architecture string
	// Layers are optional layer ARNs (monitoring, shared deps) attached
	// to every produced function.
	Layers []string
}

// NewPythonFactory returns a factory with the platform defaults.
func NewPythonFactory() *PythonFactory {
	return &PythonFactory{
		Runtime:      "python3.12",
		Architecture: "x86_64",
	}
}

// NewFunction produces the resource bundle for one module.
func (f *PythonFactory) NewFunction(spec FunctionSpec) (*FunctionResources, error) {
	if spec.Name == "" || spec.Team == "" {
		return nil, fmt.Errorf("function spec must name a module and a team")
	}
	if spec.Handler == "" {
		spec.Handler = "main"
	}
	if spec.Index == "" {
		spec.Index = "index"
	}

	logicalID := strcase.ToCamel(spec.Name) + "Function"
	functionName := fmt.Sprintf("modules-%s-%s-%s", spec.Team, spec.Name, spec.Stage)
	roleID := logicalID + "ServiceRole"
	logGroupID := logicalID + LogGroupSuffix

	props := map[string]any{
		"FunctionName":  functionName,
		"Handler":       fmt.Sprintf("%s.%s", spec.Index, spec.Handler),
		"Runtime":       f.Runtime,
		"Architectures": []string{f.Architecture},
		"Role":          intrinsics.GetAtt{LogicalName: roleID, Attribute: "Arn"},
		// The provisioning engine packages SourceDir and uploads it to
		// the account's asset bucket under this key.
		"Code": map[string]any{
			"S3Bucket": intrinsics.Sub{String: "modules-assets-${AWS::AccountId}-${AWS::Region}"},
			"S3Key":    fmt.Sprintf("%s/%s/%s.zip", spec.Stage, spec.Team, spec.Name),
		},
	}
	if len(f.Layers) > 0 {
		props["Layers"] = f.Layers
	}

	return &FunctionResources{
		LogicalID:    logicalID,
		FunctionName: functionName,
		Function: teamsynth.ResourceDef{
			Type:       "AWS::Lambda::Function",
			Properties: props,
			DependsOn:  []string{roleID},
		},
		DefaultRoleID: roleID,
		DefaultRole: teamsynth.ResourceDef{
			Type: "AWS::IAM::Role",
			Properties: map[string]any{
				"AssumeRolePolicyDocument": intrinsics.AssumeRoleDocument("lambda.amazonaws.com"),
				"ManagedPolicyArns": []string{
					"arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole",
				},
			},
		},
		LogGroupID: logGroupID,
		LogGroup: teamsynth.ResourceDef{
			Type: "AWS::Logs::LogGroup",
			Properties: map[string]any{
				"LogGroupName":    fmt.Sprintf("/aws/lambda/%s", functionName),
				"RetentionInDays": 30,
			},
		},
	}, nil
}
