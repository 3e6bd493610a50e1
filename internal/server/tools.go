package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Asset tree
		{
			Name:        "asset_list",
			Description: "List the placeholder sprites and sounds the generator knows about, with sizes, colors and tones.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "asset_generate",
			Description: "Write placeholder assets to disk. Generates every asset when names is omitted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"names": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Asset names such as bird.png or jump (extension optional)",
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Root of the asset tree. Defaults to the server's configured directory",
					},
					"png_mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"solid", "placeholder"},
						"description": "solid writes real pixels; placeholder writes the fixed legacy payload",
					},
				},
			},
		},

		// Raster
		{
			Name:        "png_encode",
			Description: "Encode a single-color PNG and return it as base64 along with a structural report.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width":  map[string]interface{}{"type": "integer", "description": "Width in pixels (> 0)"},
					"height": map[string]interface{}{"type": "integer", "description": "Height in pixels (> 0)"},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Fill color as #RRGGBB or r,g,b",
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"solid", "placeholder"},
						"description": "Encoder to use. Default solid",
						"default":     "solid",
					},
				},
				"required": []string{"width", "height", "color"},
			},
		},
		{
			Name:        "png_inspect",
			Description: "Parse a PNG into chunks, verify every CRC-32, and report whether a strict decoder can render it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Path to a PNG file",
					},
					"image_base64": map[string]interface{}{
						"type":        "string",
						"description": "PNG bytes as base64, used when path is empty",
					},
				},
			},
		},

		// Audio
		{
			Name:        "tone_generate",
			Description: "Synthesize a mono 16-bit WAV from one or more back-to-back sine tones and return it as base64.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"frequencies": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "number"},
						"description": "Tone frequencies in Hz, played in order",
					},
					"duration_ms": map[string]interface{}{
						"type":        "integer",
						"description": "Length of each tone in milliseconds",
					},
					"sample_rate": map[string]interface{}{
						"type":        "integer",
						"description": "Samples per second. Default 44100",
						"default":     44100,
					},
					"volume": map[string]interface{}{
						"type":        "number",
						"description": "Peak amplitude from 0 to 1. Default 0.3",
						"default":     0.3,
					},
				},
				"required": []string{"frequencies", "duration_ms"},
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
