package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ironsheep/image-compare-mcp/internal/compare"
	"github.com/ironsheep/image-compare-mcp/internal/imaging"
	"github.com/ironsheep/image-compare-mcp/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "compare_images").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_info":
		return s.handleImageInfo(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Pixel-Level Comparison
	case "compare_images":
		return s.handleCompareImages(args)
	case "image_diff_percent":
		return s.handleImageDiffPercent(args)
	case "image_diff_score":
		return s.handleImageDiffScore(args)

	// Duplicate Detection
	case "find_duplicate_photo":
		return s.handleFindDuplicatePhoto(args)

	// Palette-Level Comparison
	case "compare_palette":
		return s.handleComparePalette(args)

	// Text-Level Comparison
	case "compare_text":
		return s.handleCompareText(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Pixel-Level Comparison Handlers ===

type compareImagesArgs struct {
	PathA         string  `json:"path_a"`
	PathB         string  `json:"path_b"`
	Tolerance     float64 `json:"tolerance"`
	DenoiseRadius float64 `json:"denoise_radius"`
}

// CompareResult is the outcome of a tolerance comparison between two images.
type CompareResult struct {
	// Equal is true when the difference percentage is within tolerance.
	Equal bool `json:"equal"`

	// SameSize is false when the images differ in dimensions, in which
	// case they are trivially not equal and DiffPercent is omitted.
	SameSize bool `json:"same_size"`

	// DiffPercent is the normalized difference (0-100). Absent when the
	// sizes differ.
	DiffPercent *float64 `json:"diff_percent,omitempty"`

	Tolerance float64 `json:"tolerance"`
}

func (s *Server) handleCompareImages(args json.RawMessage) (interface{}, error) {
	var a compareImagesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	imgA, err := s.cache.Load(a.PathA)
	if err != nil {
		return nil, err
	}
	imgB, err := s.cache.Load(a.PathB)
	if err != nil {
		return nil, err
	}

	if a.DenoiseRadius > 0 {
		imgA = imaging.Denoise(imgA, a.DenoiseRadius)
		imgB = imaging.Denoise(imgB, a.DenoiseRadius)
	}

	result := &CompareResult{Tolerance: a.Tolerance}

	if imgA.Bounds().Dx() != imgB.Bounds().Dx() || imgA.Bounds().Dy() != imgB.Bounds().Dy() {
		return result, nil
	}
	result.SameSize = true

	percent, err := compare.DiffPercent(compare.FromImage(imgA), compare.FromImage(imgB))
	if err != nil {
		return nil, err
	}
	result.DiffPercent = &percent
	result.Equal = percent <= a.Tolerance

	return result, nil
}

type imagePairArgs struct {
	PathA string `json:"path_a"`
	PathB string `json:"path_b"`
}

// DiffPercentResult carries the normalized difference between two images.
type DiffPercentResult struct {
	DiffPercent float64 `json:"diff_percent"`
}

func (s *Server) handleImageDiffPercent(args json.RawMessage) (interface{}, error) {
	var a imagePairArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	percent, err := compare.DiffPercent(compare.FromFile(a.PathA), compare.FromFile(a.PathB))
	if err != nil {
		return nil, err
	}
	return &DiffPercentResult{DiffPercent: percent}, nil
}

// DiffScoreResult carries the raw difference score between two images.
type DiffScoreResult struct {
	Score int64 `json:"score"`
}

func (s *Server) handleImageDiffScore(args json.RawMessage) (interface{}, error) {
	var a imagePairArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	imgA, err := s.cache.Load(a.PathA)
	if err != nil {
		return nil, err
	}
	imgB, err := s.cache.Load(a.PathB)
	if err != nil {
		return nil, err
	}

	score, err := compare.DiffScore(imgA, imgB)
	if err != nil {
		return nil, err
	}
	return &DiffScoreResult{Score: score}, nil
}

// === Duplicate Detection Handlers ===

type findDuplicateArgs struct {
	Candidate string   `json:"candidate"`
	Existing  []string `json:"existing"`
	Tolerance float64  `json:"tolerance"`
}

// FindDuplicateResult reports which already-seen photo a candidate matches.
type FindDuplicateResult struct {
	// Duplicate is true when some existing photo equals the candidate.
	Duplicate bool `json:"duplicate"`

	// DuplicateIndex is the position of the match in the existing list,
	// or -1 when the candidate is new.
	DuplicateIndex int `json:"duplicate_index"`

	// DuplicatePath is the matching path, empty when there is no match.
	DuplicatePath string `json:"duplicate_path,omitempty"`
}

func (s *Server) handleFindDuplicatePhoto(args json.RawMessage) (interface{}, error) {
	var a findDuplicateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	candidate, err := os.ReadFile(a.Candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate %s: %w", a.Candidate, err)
	}

	existing := make([][]byte, len(a.Existing))
	for i, path := range a.Existing {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read existing photo %s: %w", path, err)
		}
		existing[i] = data
	}

	idx, err := compare.FindDuplicate(candidate, existing, a.Tolerance)
	if err != nil {
		return nil, err
	}

	result := &FindDuplicateResult{DuplicateIndex: idx}
	if idx >= 0 {
		result.Duplicate = true
		result.DuplicatePath = a.Existing[idx]
	}
	return result, nil
}

// === Palette-Level Comparison Handlers ===

type comparePaletteArgs struct {
	PathA string `json:"path_a"`
	PathB string `json:"path_b"`
	Count int    `json:"count"`
}

func (s *Server) handleComparePalette(args json.RawMessage) (interface{}, error) {
	var a comparePaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}

	imgA, err := s.cache.Load(a.PathA)
	if err != nil {
		return nil, err
	}
	imgB, err := s.cache.Load(a.PathB)
	if err != nil {
		return nil, err
	}

	return imaging.PaletteDistance(imgA, imgB, a.Count)
}

// === Text-Level Comparison Handlers ===

type compareTextArgs struct {
	PathA    string `json:"path_a"`
	PathB    string `json:"path_b"`
	Language string `json:"language"`
}

// CompareTextResult reports whether two images carry the same text.
type CompareTextResult struct {
	// Match is true when the normalized OCR output of both images is
	// identical.
	Match bool `json:"match"`

	// TextA and TextB are the normalized extracted texts.
	TextA string `json:"text_a"`
	TextB string `json:"text_b"`
}

func (s *Server) handleCompareText(args json.RawMessage) (interface{}, error) {
	if !ocr.Available() {
		return nil, errors.New("compare_text requires a build with OCR support")
	}

	var a compareTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = "eng"
	}

	textA, err := ocr.ExtractText(a.PathA, a.Language)
	if err != nil {
		return nil, fmt.Errorf("OCR on %s failed: %w", a.PathA, err)
	}
	textB, err := ocr.ExtractText(a.PathB, a.Language)
	if err != nil {
		return nil, fmt.Errorf("OCR on %s failed: %w", a.PathB, err)
	}

	normA := ocr.Normalize(textA)
	normB := ocr.Normalize(textB)

	return &CompareTextResult{
		Match: normA == normB,
		TextA: normA,
		TextB: normB,
	}, nil
}
