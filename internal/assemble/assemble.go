// Package assemble builds one CloudFormation stack per team: a
// restricted execution role, an SSM parameter publishing the role ARN,
// and one Lambda function per module directory.
package assemble

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"go.uber.org/zap"

	teamsynth "github.com/scalestack/teamsynth"
	"github.com/scalestack/teamsynth/internal/config"
	"github.com/scalestack/teamsynth/internal/discover"
	"github.com/scalestack/teamsynth/internal/factory"
	"github.com/scalestack/teamsynth/internal/policy"
	"github.com/scalestack/teamsynth/intrinsics"
)

// Logical IDs of the fixed per-team resources.
const (
	RoleLogicalID      = "ExecutionRole"
	ParameterLogicalID = "RoleArnParameter"
)

// StackName returns the team's stack name, e.g. TeamProdSolutionsStack-newstg.
func StackName(team teamsynth.Team, stage string) string {
	return fmt.Sprintf("Team%sStack-%s", strcase.ToCamel(team.Name), stage)
}

// RoleName returns the physical name of the team's execution role.
func RoleName(team teamsynth.Team, stage string) string {
	return fmt.Sprintf("ThirdPartyLambdaRole-%s-%s", team.Name, stage)
}

// ParameterPath returns the SSM path the team's role ARN is published at.
func ParameterPath(team teamsynth.Team) string {
	return fmt.Sprintf("/team-modules/third-party/%s/role-arn", team.Name)
}

// TeamStack assembles the stack for one team. It discovers the team's
// modules, runs each through the factory, and rewires every function to
// the team's single restricted role. A team without deployable modules
// still gets a role and parameter; the empty record list signals that
// nothing will run.
func TeamStack(team teamsynth.Team, cfg *config.Config, f factory.FunctionFactory) (*teamsynth.StackArtifact, []teamsynth.DeploymentRecord, error) {
	log := zap.S().With("team", team.Name)

	stackName := StackName(team, cfg.Stage)
	tpl := &teamsynth.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              fmt.Sprintf("Dynamic module stack for team %s (%s)", team.Name, cfg.Stage),
		Resources:                map[string]teamsynth.ResourceDef{},
		Outputs:                  map[string]teamsynth.Output{},
	}

	tpl.Resources[RoleLogicalID] = teamsynth.ResourceDef{
		Type: "AWS::IAM::Role",
		Properties: map[string]any{
			"RoleName":                 RoleName(team, cfg.Stage),
			"AssumeRolePolicyDocument": intrinsics.AssumeRoleDocument("lambda.amazonaws.com"),
			"ManagedPolicyArns":        []string{policy.ManagedBasicExecution},
			"Policies": []any{
				map[string]any{
					"PolicyName":     fmt.Sprintf("%s-module-access", team.Name),
					"PolicyDocument": policy.Execution(team.Name, cfg.Region, cfg.AccountID),
				},
			},
		},
	}

	tpl.Resources[ParameterLogicalID] = teamsynth.ResourceDef{
		Type: "AWS::SSM::Parameter",
		Properties: map[string]any{
			"Name":        ParameterPath(team),
			"Type":        "String",
			"Value":       intrinsics.GetAtt{LogicalName: RoleLogicalID, Attribute: "Arn"},
			"Description": fmt.Sprintf("Execution role ARN for team %s modules", team.Name),
		},
		DependsOn: []string{RoleLogicalID},
	}

	modules, err := discover.Modules(team)
	if err != nil {
		return nil, nil, fmt.Errorf("assembling %s: %w", stackName, err)
	}
	if len(modules) == 0 {
		log.Warnf("team %s has no deployable modules (no %s found)", team.Name, discover.EntryPoint)
	}

	records := make([]teamsynth.DeploymentRecord, 0, len(modules))
	names := make([]string, 0, len(modules))
	for _, mod := range modules {
		fr, err := f.NewFunction(factory.FunctionSpec{
			Name:      mod.Name,
			Team:      team.Name,
			SourceDir: mod.Dir,
			Stage:     cfg.Stage,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("assembling %s: module %s: %w", stackName, mod.Name, err)
		}

		// The factory attaches its own broad role and log group. Each
		// function runs under the team role only, and log groups are
		// created lazily on first invocation.
		fn := fr.Function
		fn.Properties["Role"] = intrinsics.GetAtt{LogicalName: RoleLogicalID, Attribute: "Arn"}
		fn.DependsOn = []string{RoleLogicalID}
		tpl.Resources[fr.LogicalID] = fn

		log.Debugf("suppressing %s and %s", fr.LogGroupID, fr.DefaultRoleID)

		outputID := strcase.ToCamel(fmt.Sprintf("%s_%s", team.Name, mod.Name))
		tpl.Outputs[outputID] = teamsynth.Output{
			Description: fmt.Sprintf("Function deployed for %s/%s", team.Name, mod.Name),
			Value:       fr.FunctionName,
		}

		records = append(records, teamsynth.DeploymentRecord{
			Module:       mod.Name,
			Team:         team.Name,
			FunctionName: fr.FunctionName,
			LogicalID:    fr.LogicalID,
		})
		names = append(names, mod.Name)
	}

	if len(names) > 0 {
		sort.Strings(names)
		tpl.Outputs["ModulesDeployed"] = teamsynth.Output{
			Description: "Modules deployed in this stack",
			Value:       strings.Join(names, ", "),
		}
	}

	artifact := &teamsynth.StackArtifact{
		Name:     stackName,
		Template: tpl,
		Tags: map[string]string{
			"team":    team.Name,
			"stage":   cfg.Stage,
			"project": cfg.Project,
		},
	}

	log.Infof("assembled %s with %d module(s)", stackName, len(records))
	return artifact, records, nil
}
