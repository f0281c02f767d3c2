// Package policy builds the least-privilege execution policy attached
// to every function in a team's stack.
//
// The statement set is fixed and identical across teams except for the
// secret scopes, which are derived from the team name. Calling Execution
// twice with the same inputs yields an identical document.
package policy

import (
	"fmt"

	"github.com/scalestack/teamsynth/intrinsics"
)

// ManagedBasicExecution is the AWS-managed policy granting baseline
// Lambda execution permissions.
const ManagedBasicExecution = "arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole"

// orgSecretPrefix is the fixed organization-wide secret namespace every
// team may read, in addition to its own modules/<team>/ namespace.
const orgSecretPrefix = "organization/shared"

// SecretScopes returns the secret name patterns a team's functions may
// read. Functions never receive write, list, or rotate capability.
func SecretScopes(team string) []string {
	return []string{
		"third-party/*",
		"thirdparty/*",
		fmt.Sprintf("modules/%s/*", team),
		orgSecretPrefix + "/*",
	}
}

// Execution builds the execution policy document for a team.
//
// The queue and parameter-store statements are deliberately unscoped
// ("*" resources) across all teams; per-team scoping exists only for
// secrets. This is a known breadth tradeoff carried over from the
// deployed behavior, not an oversight to quietly tighten here.
//
// When region or account is empty the secret ARNs fall back to the
// AWS::Region / AWS::AccountId pseudo parameters so the document stays
// deployable without knowing the account at synthesis time.
func Execution(team, region, account string) intrinsics.PolicyDocument {
	return intrinsics.NewPolicyDocument(
		intrinsics.Allow([]string{
			"logs:CreateLogGroup",
			"logs:CreateLogStream",
			"logs:PutLogEvents",
			"logs:DescribeLogGroups",
			"logs:DescribeLogStreams",
		}, "*"),
		intrinsics.Allow([]string{
			"sqs:ReceiveMessage",
			"sqs:DeleteMessage",
			"sqs:GetQueueAttributes",
			"sqs:GetQueueUrl",
			"sqs:ListQueues",
			"sqs:ChangeMessageVisibility",
			"sqs:SendMessage",
		}, "*"),
		intrinsics.Allow([]string{
			"ssm:GetParameter",
			"ssm:GetParameters",
			"ssm:GetParameterHistory",
			"ssm:DescribeParameters",
		}, "*"),
		intrinsics.Allow(
			[]string{"secretsmanager:GetSecretValue"},
			secretResources(team, region, account)...,
		),
	)
}

// secretResources renders the four secret scopes as ARNs.
func secretResources(team, region, account string) []any {
	resources := make([]any, 0, 4)
	for _, scope := range SecretScopes(team) {
		resources = append(resources, secretARN(scope, region, account))
	}
	return resources
}

func secretARN(scope, region, account string) any {
	if region == "" || account == "" {
		return intrinsics.Sub{
			String: fmt.Sprintf("arn:aws:secretsmanager:${AWS::Region}:${AWS::AccountId}:secret:%s", scope),
		}
	}
	return fmt.Sprintf("arn:aws:secretsmanager:%s:%s:secret:%s", region, account, scope)
}
