// Package graph renders the stack topology of a synthesis pass as DOT
// or Mermaid.
package graph

import (
	"io"
	"strings"

	"github.com/emicklei/dot"

	teamsynth "github.com/scalestack/teamsynth"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator renders synthesis results as dependency graphs. Stacks are
// boxes, functions are ellipses attached to their team stack, and
// DependsOn edges point from a stack to its prerequisite.
type Generator struct {
	// IncludeFunctions adds one node per deployed function.
	IncludeFunctions bool

	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format
}

// Generate writes the topology of result to w.
func (g *Generator) Generate(result *teamsynth.SynthResult, w io.Writer) error {
	graph := g.buildGraph(result)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(result *teamsynth.SynthResult) (string, error) {
	var sb strings.Builder
	if err := g.Generate(result, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Generator) buildGraph(result *teamsynth.SynthResult) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	stackByTeam := make(map[string]dot.Node)
	for _, stack := range result.Stacks {
		n := graph.Node(stack.Name)
		if team, ok := stack.Tags["team"]; ok {
			stackByTeam[team] = n
		} else {
			n.Attr("style", "bold")
		}
	}

	for _, stack := range result.Stacks {
		for _, dep := range stack.DependsOn {
			graph.Edge(graph.Node(stack.Name), graph.Node(dep))
		}
	}

	if g.IncludeFunctions {
		for _, rec := range result.Records {
			n := graph.Node(rec.FunctionName)
			n.Attr("shape", "ellipse")
			n.Attr("style", "dashed")
			if stack, ok := stackByTeam[rec.Team]; ok {
				graph.Edge(n, stack).Attr("style", "dotted")
			}
		}
	}

	return graph
}
