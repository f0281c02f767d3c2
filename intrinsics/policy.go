// IAM policy document types and helpers.
package intrinsics

import (
	"encoding/json"
)

// PolicyVersion is the IAM policy language version used in every
// generated document.
const PolicyVersion = "2012-10-17"

// PolicyDocument represents an IAM policy document.
type PolicyDocument struct {
	Version   string            `json:"Version,omitempty"`
	Statement []PolicyStatement `json:"Statement"`
}

// NewPolicyDocument creates a PolicyDocument with the default version.
func NewPolicyDocument(statements ...PolicyStatement) PolicyDocument {
	return PolicyDocument{Version: PolicyVersion, Statement: statements}
}

// PolicyStatement represents an IAM policy statement.
//
// Action and Resource accept a string, an intrinsic (Sub, GetAtt), or a
// slice of either.
type PolicyStatement struct {
	Sid       string         `json:"Sid,omitempty"`
	Effect    string         `json:"Effect"`
	Principal any            `json:"Principal,omitempty"`
	Action    any            `json:"Action,omitempty"`
	Resource  any            `json:"Resource,omitempty"`
	Condition map[string]any `json:"Condition,omitempty"`
}

// Allow creates an Allow statement for the given actions and resources.
func Allow(actions []string, resources ...any) PolicyStatement {
	var resource any
	switch len(resources) {
	case 0:
		resource = nil
	case 1:
		resource = resources[0]
	default:
		resource = resources
	}
	return PolicyStatement{Effect: "Allow", Action: actions, Resource: resource}
}

// ServicePrincipal represents a service principal (e.g. lambda.amazonaws.com).
// Serializes to {"Service": ...} format.
type ServicePrincipal []any

// MarshalJSON serializes to {"Service": ...} format.
func (p ServicePrincipal) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(map[string]any{"Service": p[0]})
	}
	return json.Marshal(map[string]any{"Service": []any(p)})
}

// AssumeRoleDocument builds the trust policy allowing the given service
// to assume a role.
func AssumeRoleDocument(service string) PolicyDocument {
	return NewPolicyDocument(PolicyStatement{
		Effect:    "Allow",
		Principal: ServicePrincipal{service},
		Action:    "sts:AssumeRole",
	})
}
