package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scalestack/teamsynth/intrinsics"
)

func TestNewFunction_Naming(t *testing.T) {
	f := NewPythonFactory()

	fr, err := f.NewFunction(FunctionSpec{
		Name:      "tope",
		Team:      "ale",
		SourceDir: "modules_ale/tope",
		Stage:     "newstg",
	})
	require.NoError(t, err)

	assert.Equal(t, "TopeFunction", fr.LogicalID)
	assert.Equal(t, "modules-ale-tope-newstg", fr.FunctionName)
	assert.Equal(t, "TopeFunctionServiceRole", fr.DefaultRoleID)
	assert.Equal(t, "TopeFunctionLogGroup", fr.LogGroupID)
}

func TestNewFunction_HyphenatedModuleName(t *testing.T) {
	f := NewPythonFactory()

	fr, err := f.NewFunction(FunctionSpec{
		Name:  "test-sum",
		Team:  "prod_solutions",
		Stage: "newstg",
	})
	require.NoError(t, err)

	assert.Equal(t, "TestSumFunction", fr.LogicalID)
	assert.Equal(t, "modules-prod_solutions-test-sum-newstg", fr.FunctionName)
}

func TestNewFunction_Defaults(t *testing.T) {
	f := NewPythonFactory()

	fr, err := f.NewFunction(FunctionSpec{Name: "tope", Team: "ale", Stage: "newstg"})
	require.NoError(t, err)

	assert.Equal(t, "AWS::Lambda::Function", fr.Function.Type)
	assert.Equal(t, "index.main", fr.Function.Properties["Handler"])
	assert.Equal(t, "python3.12", fr.Function.Properties["Runtime"])
	assert.Equal(t, []string{"x86_64"}, fr.Function.Properties["Architectures"])
	assert.NotContains(t, fr.Function.Properties, "Layers")
}

func TestNewFunction_RolePointsAtDefaultRole(t *testing.T) {
	f := NewPythonFactory()

	fr, err := f.NewFunction(FunctionSpec{Name: "tope", Team: "ale", Stage: "newstg"})
	require.NoError(t, err)

	assert.Equal(t,
		intrinsics.GetAtt{LogicalName: "TopeFunctionServiceRole", Attribute: "Arn"},
		fr.Function.Properties["Role"])
	assert.Equal(t, []string{"TopeFunctionServiceRole"}, fr.Function.DependsOn)
	assert.Equal(t, "AWS::IAM::Role", fr.DefaultRole.Type)
}

func TestNewFunction_LogGroup(t *testing.T) {
	f := NewPythonFactory()

	fr, err := f.NewFunction(FunctionSpec{Name: "tope", Team: "ale", Stage: "newstg"})
	require.NoError(t, err)

	assert.Equal(t, "AWS::Logs::LogGroup", fr.LogGroup.Type)
	assert.Equal(t, "/aws/lambda/modules-ale-tope-newstg", fr.LogGroup.Properties["LogGroupName"])
}

func TestNewFunction_Layers(t *testing.T) {
	f := NewPythonFactory()
	f.Layers = []string{"arn:aws:lambda:us-east-1:123456789012:layer:monitoring:4"}

	fr, err := f.NewFunction(FunctionSpec{Name: "tope", Team: "ale", Stage: "newstg"})
	require.NoError(t, err)

	assert.Equal(t, f.Layers, fr.Function.Properties["Layers"])
}

func TestNewFunction_RequiresNameAndTeam(t *testing.T) {
	f := NewPythonFactory()

	_, err := f.NewFunction(FunctionSpec{Team: "ale"})
	assert.Error(t, err)

	_, err = f.NewFunction(FunctionSpec{Name: "tope"})
	assert.Error(t, err)
}
