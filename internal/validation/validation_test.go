package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lex00/cfn-lint-go/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateResult_TotalIssues(t *testing.T) {
	tests := []struct {
		name     string
		result   TemplateResult
		expected int
	}{
		{
			name:     "empty result",
			result:   TemplateResult{},
			expected: 0,
		},
		{
			name: "errors only",
			result: TemplateResult{
				Errors: []string{"error1", "error2"},
			},
			expected: 2,
		},
		{
			name: "mixed issues",
			result: TemplateResult{
				Errors:        []string{"error1"},
				Warnings:      []string{"warning1", "warning2"},
				Informational: []string{"info1"},
			},
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.TotalIssues())
		})
	}
}

func TestFormatMatch(t *testing.T) {
	tests := []struct {
		name     string
		match    lint.Match
		expected string
	}{
		{
			name: "simple match",
			match: lint.Match{
				Rule:    lint.MatchRule{ID: "E1234"},
				Message: "Something is wrong",
			},
			expected: "E1234: Something is wrong",
		},
		{
			name: "match with path",
			match: lint.Match{
				Rule:    lint.MatchRule{ID: "W5678"},
				Message: "Warning message",
				Location: lint.MatchLocation{
					Path: []any{"Resources", "ExecutionRole", "Properties"},
				},
			},
			expected: "W5678: Warning message (at Resources/ExecutionRole/Properties)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatMatch(tt.match))
		})
	}
}

func TestLintTemplate_FileNotFound(t *testing.T) {
	result, err := LintTemplate("/nonexistent/template.json")
	require.NoError(t, err)
	assert.False(t, result.Passed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "template not found")
}

func TestLintTemplate_ValidTemplate(t *testing.T) {
	tempDir := t.TempDir()
	templatePath := filepath.Join(tempDir, "TeamAleStack-newstg.template.yaml")

	validTemplate := `AWSTemplateFormatVersion: '2010-09-09'
Description: Dynamic module stack for team ale (newstg)
Resources:
  ExecutionRole:
    Type: AWS::IAM::Role
    Properties:
      RoleName: ThirdPartyLambdaRole-ale-newstg
      AssumeRolePolicyDocument:
        Version: '2012-10-17'
        Statement:
          - Effect: Allow
            Principal:
              Service: lambda.amazonaws.com
            Action: sts:AssumeRole
`
	require.NoError(t, os.WriteFile(templatePath, []byte(validTemplate), 0o644))

	result, err := LintTemplate(templatePath)
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "TeamAleStack-newstg.template.yaml", result.Template)
}

func TestLintDir_FiltersTemplateFiles(t *testing.T) {
	dir := t.TempDir()

	template := "AWSTemplateFormatVersion: '2010-09-09'\nResources: {}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SharedInfra-newstg.template.yaml"), []byte(template), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	result, err := LintDir(dir)
	require.NoError(t, err)
	require.Len(t, result.Templates, 1)
	assert.Equal(t, "SharedInfra-newstg.template.yaml", result.Templates[0].Template)
}

func TestLintDir_MissingDir(t *testing.T) {
	_, err := LintDir(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
