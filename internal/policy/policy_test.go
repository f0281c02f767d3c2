package policy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecution_StatementSet(t *testing.T) {
	doc := Execution("ale", "us-east-1", "123456789012")

	require.Len(t, doc.Statement, 4)
	assert.Equal(t, "2012-10-17", doc.Version)

	for _, stmt := range doc.Statement {
		assert.Equal(t, "Allow", stmt.Effect)
	}

	logs := doc.Statement[0]
	assert.Contains(t, logs.Action, "logs:CreateLogGroup")
	assert.Equal(t, "*", logs.Resource)

	sqs := doc.Statement[1]
	assert.Contains(t, sqs.Action, "sqs:SendMessage")
	assert.Contains(t, sqs.Action, "sqs:ReceiveMessage")
	assert.Equal(t, "*", sqs.Resource)

	ssm := doc.Statement[2]
	assert.Contains(t, ssm.Action, "ssm:GetParameter")
	assert.NotContains(t, ssm.Action, "ssm:PutParameter")
	assert.Equal(t, "*", ssm.Resource)
}

func TestExecution_SecretScopes(t *testing.T) {
	doc := Execution("ale", "us-east-1", "123456789012")

	secrets := doc.Statement[3]
	assert.Equal(t, []string{"secretsmanager:GetSecretValue"}, secrets.Action)

	resources, ok := secrets.Resource.([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{
		"arn:aws:secretsmanager:us-east-1:123456789012:secret:third-party/*",
		"arn:aws:secretsmanager:us-east-1:123456789012:secret:thirdparty/*",
		"arn:aws:secretsmanager:us-east-1:123456789012:secret:modules/ale/*",
		"arn:aws:secretsmanager:us-east-1:123456789012:secret:organization/shared/*",
	}, resources)
}

func TestExecution_TeamIsolation(t *testing.T) {
	ale := Execution("ale", "us-east-1", "123456789012")
	payments := Execution("payments", "us-east-1", "123456789012")

	aleJSON, err := json.Marshal(ale.Statement[3])
	require.NoError(t, err)
	paymentsJSON, err := json.Marshal(payments.Statement[3])
	require.NoError(t, err)

	assert.Contains(t, string(aleJSON), "modules/ale/*")
	assert.NotContains(t, string(aleJSON), "modules/payments/*")
	assert.Contains(t, string(paymentsJSON), "modules/payments/*")
	assert.NotContains(t, string(paymentsJSON), "modules/ale/*")
}

func TestExecution_Deterministic(t *testing.T) {
	first, err := json.Marshal(Execution("prod_solutions", "eu-west-1", "999999999999"))
	require.NoError(t, err)
	second, err := json.Marshal(Execution("prod_solutions", "eu-west-1", "999999999999"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestExecution_PseudoParameterFallback(t *testing.T) {
	doc := Execution("ale", "", "")

	data, err := json.Marshal(doc.Statement[3])
	require.NoError(t, err)

	assert.Contains(t, string(data), "Fn::Sub")
	assert.Contains(t, string(data), "${AWS::Region}")
	assert.Contains(t, string(data), "${AWS::AccountId}")
	assert.Contains(t, string(data), "modules/ale/*")
}

func TestExecution_NoWriteCapabilityOnSecrets(t *testing.T) {
	doc := Execution("ale", "us-east-1", "123456789012")

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	for _, denied := range []string{
		"secretsmanager:PutSecretValue",
		"secretsmanager:ListSecrets",
		"secretsmanager:RotateSecret",
	} {
		assert.NotContains(t, string(data), denied)
	}
}

func TestSecretScopes(t *testing.T) {
	scopes := SecretScopes("prod_solutions")
	assert.Equal(t, []string{
		"third-party/*",
		"thirdparty/*",
		"modules/prod_solutions/*",
		"organization/shared/*",
	}, scopes)
}
