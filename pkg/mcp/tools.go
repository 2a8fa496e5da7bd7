package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/cncf/automation/alumni-dashboard/pkg/alumni"
	"github.com/cncf/automation/alumni-dashboard/pkg/distribution"
)

const (
	toolMetrics      = "dashboard_metrics"
	toolDistribution = "distribution"
	toolQueryAlumni  = "query_alumni"

	defaultQueryLimit = 100
)

type toolDefinition struct {
	Name        string
	Description string
	Metrics     []string
}

var (
	toolCatalog = map[string]toolDefinition{
		toolMetrics: {
			Name:        toolMetrics,
			Description: "Answer questions about headline alumni numbers: totals, batches, active professionals, mentors and placement supporters.",
			Metrics:     metricKeys(),
		},
		toolDistribution: {
			Name:        toolDistribution,
			Description: "Return the breakdown of alumni by one dimension, with counts and percentages.",
		},
		toolQueryAlumni: {
			Name:        toolQueryAlumni,
			Description: "Search the alumni directory by free text, batch, state and work status.",
		},
	}
	advertisedTools = []string{
		toolQueryAlumni,
		toolDistribution,
		toolMetrics,
	}
)

func metricKeys() []string {
	cards := distribution.Summary{}.Cards()
	keys := make([]string, 0, len(cards))
	for _, c := range cards {
		keys = append(keys, c.Key)
	}
	return keys
}

func dimensionNames() []string {
	dims := distribution.Dimensions()
	names := make([]string, 0, len(dims))
	for _, d := range dims {
		names = append(names, string(d))
	}
	return names
}

func toolInputSchema(def toolDefinition) map[string]interface{} {
	schema := map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
	}

	switch def.Name {
	case toolQueryAlumni:
		schema["properties"] = map[string]interface{}{
			"search": map[string]interface{}{
				"type":        "string",
				"description": "Case-insensitive substring of name, batch, state or big bet",
			},
			"batch": map[string]interface{}{
				"type":        "string",
				"description": "Exact batch number (e.g., 5)",
			},
			"geography": map[string]interface{}{
				"type":        "string",
				"description": "Exact state name (e.g., Bihar)",
			},
			"work_status": map[string]interface{}{
				"type":        "string",
				"description": "Exact work status (e.g., Intrapreneur, Higher Studies)",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": fmt.Sprintf("Maximum number of results to return (default: %d)", defaultQueryLimit),
			},
		}
		return schema
	case toolDistribution:
		schema["properties"] = map[string]interface{}{
			"dimension": map[string]interface{}{
				"type": "string",
				"enum": dimensionNames(),
			},
		}
		schema["required"] = []string{"dimension"}
		return schema
	}

	schema["properties"] = map[string]interface{}{
		"metric": map[string]interface{}{
			"type": "string",
			"enum": def.Metrics,
		},
	}
	schema["required"] = []string{"metric"}
	return schema
}

func metricAllowed(allowed []string, metric string) bool {
	for _, m := range allowed {
		if m == metric {
			return true
		}
	}
	return false
}

func handleMetric(id json.RawMessage, def toolDefinition, argsRaw json.RawMessage, snap *Snapshot) *jsonRPCResponse {
	var args struct {
		Metric string `json:"metric"`
	}
	if len(argsRaw) > 0 {
		if err := json.Unmarshal(argsRaw, &args); err != nil {
			return errorResponse(id, codeInvalidParams, "Invalid arguments", nil)
		}
	}
	if args.Metric == "" {
		return errorResponse(id, codeInvalidParams, "Metric is required", mustJSON(map[string]interface{}{
			"allowedMetrics": def.Metrics,
		}))
	}
	if !metricAllowed(def.Metrics, args.Metric) {
		return errorResponse(id, codeInvalidParams, fmt.Sprintf("Unsupported metric %q", args.Metric), mustJSON(map[string]interface{}{
			"allowedMetrics": def.Metrics,
		}))
	}

	result, err := executeMetric(args.Metric, snap.Dataset)
	if err != nil {
		return errorResponse(id, codeToolError, err.Error(), nil)
	}
	return textResult(id, result)
}

func executeMetric(metric string, ds *distribution.Dataset) (string, error) {
	card, ok := ds.Summary.Card(metric)
	if !ok {
		return "", fmt.Errorf("unknown metric: %s", metric)
	}
	payload := map[string]interface{}{
		"value":       card.Value,
		"display":     card.Display(),
		"description": card.Label,
	}
	if card.Note != "" {
		payload["note"] = card.Note
	}
	return encodeResult(metric, payload)
}

func encodeResult(metric string, payload map[string]interface{}) (string, error) {
	payload["metric"] = metric
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type distributionEntry struct {
	Label      string `json:"label"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

func handleDistribution(id json.RawMessage, argsRaw json.RawMessage, snap *Snapshot) *jsonRPCResponse {
	var args struct {
		Dimension string `json:"dimension"`
	}
	if len(argsRaw) > 0 {
		if err := json.Unmarshal(argsRaw, &args); err != nil {
			return errorResponse(id, codeInvalidParams, "Invalid arguments", nil)
		}
	}
	dist, ok := snap.Dataset.Dimension(distribution.Dimension(args.Dimension))
	if !ok {
		return errorResponse(id, codeInvalidParams, fmt.Sprintf("Unsupported dimension %q", args.Dimension), mustJSON(map[string]interface{}{
			"allowedDimensions": dimensionNames(),
		}))
	}

	total := dist.Total()
	entries := make([]distributionEntry, 0, dist.Len())
	for _, e := range dist.Entries {
		entries = append(entries, distributionEntry{
			Label:      e.Label,
			Count:      e.Count,
			Percentage: distribution.Percentage(e.Count, total),
		})
	}

	data, err := json.MarshalIndent(map[string]interface{}{
		"dimension": args.Dimension,
		"total":     total,
		"entries":   entries,
	}, "", "  ")
	if err != nil {
		return errorResponse(id, codeToolError, err.Error(), nil)
	}
	return textResult(id, string(data))
}

func handleQueryAlumni(id json.RawMessage, argsRaw json.RawMessage, snap *Snapshot) *jsonRPCResponse {
	var args struct {
		Search     string `json:"search"`
		Batch      string `json:"batch"`
		Geography  string `json:"geography"`
		WorkStatus string `json:"work_status"`
		Limit      int    `json:"limit"`
	}
	if len(argsRaw) > 0 {
		if err := json.Unmarshal(argsRaw, &args); err != nil {
			return errorResponse(id, codeInvalidParams, "Invalid arguments", nil)
		}
	}
	if args.Limit < 0 {
		return errorResponse(id, codeInvalidParams, "Limit must not be negative", nil)
	}
	if args.Limit == 0 {
		args.Limit = defaultQueryLimit
	}

	result, err := queryAlumni(snap.Records, alumni.Criteria{
		Search:     args.Search,
		Batch:      args.Batch,
		Geography:  args.Geography,
		WorkStatus: args.WorkStatus,
	}, args.Limit)
	if err != nil {
		return errorResponse(id, codeToolError, err.Error(), nil)
	}
	return textResult(id, result)
}

// queryAlumni filters records and returns at most limit of them.
func queryAlumni(records []alumni.Record, criteria alumni.Criteria, limit int) (string, error) {
	matches := alumni.Filter(records, criteria)
	shown := matches
	if len(shown) > limit {
		shown = shown[:limit]
	}

	response := map[string]interface{}{
		"count":   len(shown),
		"matches": len(matches),
		"total":   len(records),
		"alumni":  shown,
	}

	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
