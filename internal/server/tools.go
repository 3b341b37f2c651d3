package server

import "github.com/ironsheep/image-compare-mcp/internal/ocr"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools. The compare_text tool is
// only advertised in builds with OCR support compiled in.
func GetToolDefinitions() []Tool {
	tools := []Tool{
		// Basic Image Information
		{
			Name:        "image_info",
			Description: "Load an image file and return its dimensions, format, color mode, and file size. Two images are comparable only when dimensions and color mode both match.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Pixel-Level Comparison
		{
			Name:        "compare_images",
			Description: "Compare two images for equality within a tolerance. Returns the difference percentage (0 = identical, 100 = black vs white) and whether it is within tolerance. Differently sized images are reported as not equal.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path_a": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the first image",
					},
					"path_b": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the second image",
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Inclusive upper bound on the difference percentage to still count as equal (default 0)",
						"default":     0.0,
					},
					"denoise_radius": map[string]interface{}{
						"type":        "number",
						"description": "Optional Gaussian blur radius applied to both images before comparing, to ignore compression noise (default 0 = off)",
						"default":     0.0,
					},
				},
				"required": []string{"path_a", "path_b"},
			},
		},
		{
			Name:        "image_diff_percent",
			Description: "Compute the normalized difference between two images as a percentage of the worst case (all-black vs all-white at the same size). Fails if dimensions or color modes differ.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path_a": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the first image",
					},
					"path_b": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the second image",
					},
				},
				"required": []string{"path_a", "path_b"},
			},
		},
		{
			Name:        "image_diff_score",
			Description: "Compute the raw (unnormalized) difference score between two images: the intensity-weighted histogram sum of their pixel difference. Grows with image area; use image_diff_percent for a size-independent number.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path_a": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the first image",
					},
					"path_b": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the second image",
					},
				},
				"required": []string{"path_a", "path_b"},
			},
		},

		// Duplicate Detection
		{
			Name:        "find_duplicate_photo",
			Description: "Check a candidate photo against a list of already-seen photos and return the index of the first one equal within tolerance, or -1 if the candidate is new. Entries with an incompatible color mode are skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"candidate": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the candidate photo",
					},
					"existing": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "string",
						},
						"description": "Absolute paths of previously seen photos, in upload order",
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Inclusive difference-percentage tolerance (default 0)",
						"default":     0.0,
					},
				},
				"required": []string{"candidate", "existing"},
			},
		},

		// Palette-Level Comparison
		{
			Name:        "compare_palette",
			Description: "Compare the dominant color palettes of two images in perceptual (CIE-Lab) space. Ignores layout entirely: 0 means identical palettes. Useful for spotting re-crops or re-exports of the same scene.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path_a": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the first image",
					},
					"path_b": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the second image",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Palette size per image (default 5)",
						"default":     5,
					},
				},
				"required": []string{"path_a", "path_b"},
			},
		},
	}

	if ocr.Available() {
		tools = append(tools, Tool{
			Name:        "compare_text",
			Description: "OCR both images and report whether their normalized text content matches. Useful for screenshots where pixel comparison is too strict.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path_a": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the first image",
					},
					"path_b": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the second image",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "OCR language hint (default 'eng')",
						"default":     "eng",
					},
				},
				"required": []string{"path_a", "path_b"},
			},
		})
	}

	return tools
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
