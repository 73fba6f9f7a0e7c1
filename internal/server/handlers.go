package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/cemetery-detector/internal/cemetery"
	apperrors "github.com/ironsheep/cemetery-detector/internal/errors"
	"github.com/ironsheep/cemetery-detector/internal/imaging"
	"github.com/ironsheep/cemetery-detector/internal/logger"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "cemetery_score").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000
// and data {"type": <error category>, "details": <error text>}.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"tool": params.Name,
			"type": apperrors.TypeOf(err),
		}).WithError(err).Warn("tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", map[string]interface{}{
			"type":    string(apperrors.TypeOf(err)),
			"details": err.Error(),
		})
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Calls the analyzer or imaging function
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_info":
		return s.handleImageInfo(args)
	case "cemetery_score":
		return s.handleCemeteryScore(args)
	case "cemetery_compare":
		return s.handleCemeteryCompare(args)
	case "cemetery_rank":
		return s.handleCemeteryRank(args)
	case "cemetery_feature_map":
		return s.handleCemeteryFeatureMap(args)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown tool: %s", name), nil)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments, reporting malformed JSON as a
// validation error.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	if err := json.Unmarshal(args, v); err != nil {
		return apperrors.NewValidationError("invalid arguments", err)
	}
	return nil
}

func requirePath(name, value string) error {
	if value == "" {
		return apperrors.NewValidationError(fmt.Sprintf("%s is required", name), nil)
	}
	return nil
}

type imageInfoArgs struct {
	Path   string `json:"path"`
	Colors int    `json:"colors"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	if a.Colors <= 0 {
		a.Colors = 5
	}
	return imaging.LoadImageInfo(a.Path, a.Colors)
}

type cemeteryScoreArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleCemeteryScore(args json.RawMessage) (interface{}, error) {
	var a cemeteryScoreArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	return s.analyzer.Score(a.Path)
}

type cemeteryCompareArgs struct {
	PathA string `json:"path_a"`
	PathB string `json:"path_b"`
}

func (s *Server) handleCemeteryCompare(args json.RawMessage) (interface{}, error) {
	var a cemeteryCompareArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path_a", a.PathA); err != nil {
		return nil, err
	}
	if err := requirePath("path_b", a.PathB); err != nil {
		return nil, err
	}
	return s.analyzer.Compare(a.PathA, a.PathB)
}

type cemeteryRankArgs struct {
	Paths   []string `json:"paths"`
	Lenient bool     `json:"lenient"`
}

func (s *Server) handleCemeteryRank(args json.RawMessage) (interface{}, error) {
	var a cemeteryRankArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, apperrors.NewValidationError("paths must list at least one file or directory", nil)
	}

	analyzer := s.analyzer
	if a.Lenient && !analyzer.Options().Lenient {
		var err error
		analyzer, err = cemetery.NewAnalyzer(analyzer.Options().WithLenientBatch())
		if err != nil {
			return nil, err
		}
	}

	paths, err := cemetery.CollectImages(a.Paths)
	if err != nil {
		return nil, err
	}
	return analyzer.Rank(context.Background(), paths)
}

type cemeteryFeatureMapArgs struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

func (s *Server) handleCemeteryFeatureMap(args json.RawMessage) (interface{}, error) {
	var a cemeteryFeatureMapArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	return s.analyzer.FeatureMap(a.Path, cemetery.FeatureMapKind(a.Kind), a.Color)
}
