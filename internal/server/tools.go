package server

import (
	"strings"

	"github.com/ironsheep/cemetery-detector/internal/cemetery"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func featureMapKinds() []string {
	kinds := cemetery.FeatureMapKinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_info",
			Description: "Load an image file and return its dimensions, format, file size and dominant colors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"colors": map[string]interface{}{
						"type":        "integer",
						"description": "Number of dominant colors to report. Default 5",
						"default":     5,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "cemetery_score",
			Description: "Score how strongly an aerial or satellite image shows the layout of a planned cemetery. " +
				"Returns the score (0-1), a likelihood band (low/medium/high), the six feature values (" +
				strings.Join(cemetery.FeatureNames(), ", ") + ") and each feature's weighted contribution.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "cemetery_compare",
			Description: "Score two images and report which shows the stronger cemetery signature. " +
				"Differences under 0.05 are a tie; otherwise confidence is the difference as a percentage of the winning score.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path_a": pathProperty("Absolute path to the first image"),
					"path_b": pathProperty("Absolute path to the second image"),
				},
				"required": []string{"path_a", "path_b"},
			},
		},
		{
			Name: "cemetery_rank",
			Description: "Score many images independently and rank them, highest first. " +
				"Failed images are listed unranked with their error, or ranked with score 0 when lenient is set.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Image files or directories to scan (png, jpg, jpeg, bmp, tif, tiff, gif, webp)",
					},
					"lenient": map[string]interface{}{
						"type":        "boolean",
						"description": "Rank failed images with score 0 instead of leaving them unranked. Default false",
						"default":     false,
					},
				},
				"required": []string{"paths"},
			},
		},
		{
			Name:        "cemetery_feature_map",
			Description: "Render an intermediate plane of the analysis as a base64 PNG for visual inspection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"kind": map[string]interface{}{
						"type":        "string",
						"enum":        featureMapKinds(),
						"description": "Plane to render",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Overlay color as #RRGGBB or #RRGGBBAA. Default semi-transparent red",
					},
				},
				"required": []string{"path", "kind"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
