package diagfmt

import (
	"encoding/json"
	"io"
	"strings"

	"scopelint/internal/diag"
	"scopelint/internal/rule"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID       string             `json:"ruleId"`
	RuleIndex    int                `json:"ruleIndex"`
	Level        string             `json:"level"`
	Message      sarifMessage       `json:"message"`
	Locations    []sarifLocation    `json:"locations"`
	Suppressions []sarifSuppression `json:"suppressions,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine,omitempty"`
	StartColumn uint32 `json:"startColumn,omitempty"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

type sarifSuppression struct {
	Kind string `json:"kind"`
}

// Sarif writes every finding as a SARIF 2.1.0 log. Suppressed findings are
// kept and carry an inSource (directive) or external (.scopelint) suppression.
func Sarif(w io.Writer, report *diag.Report, meta SarifRunMeta) error {
	rules := make([]sarifRule, 0, rule.Count)
	for id := range rule.Count {
		rules = append(rules, sarifRule{
			ID:               id.String(),
			Name:             id.Label(),
			ShortDescription: sarifMessage{Text: "Invalid " + id.Label()},
		})
	}

	items := report.Items()
	results := make([]sarifResult, 0, len(items))
	for _, it := range items {
		f := it.Finding
		res := sarifResult{
			RuleID:    f.Rule.String(),
			RuleIndex: int(f.Rule),
			Level:     sarifLevel(f.Severity),
			Message:   sarifMessage{Text: f.Message},
			Locations: []sarifLocation{{PhysicalLocation: sarifPhysical{
				ArtifactLocation: sarifArtifact{URI: strings.TrimPrefix(it.Path, "./")},
			}}},
		}
		if it.Line > 0 {
			res.Locations[0].PhysicalLocation.Region = &sarifRegion{
				StartLine:   it.Line,
				StartColumn: it.Column,
				ByteOffset:  f.Span.Start,
				ByteLength:  f.Span.Len(),
			}
		}
		if it.Suppressed {
			kind := "inSource"
			if it.External {
				kind = "external"
			}
			res.Suppressions = []sarifSuppression{{Kind: kind}}
		}
		results = append(results, res)
	}

	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           meta.ToolName,
			Version:        meta.ToolVersion,
			InformationURI: meta.InformationURI,
			Rules:          rules,
		}},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: true}}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{Version: sarifVersion, Schema: sarifSchema, Runs: []sarifRun{run}})
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}
