package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ironsheep/placeholder-assets/internal/assets"
	"github.com/ironsheep/placeholder-assets/internal/raster"
	"github.com/ironsheep/placeholder-assets/internal/tone"
	"github.com/ironsheep/placeholder-assets/internal/wav"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "asset_generate", "png_encode").
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
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case "asset_list":
		return s.handleAssetList(args)
	case "asset_generate":
		return s.handleAssetGenerate(args)
	case "png_encode":
		return s.handlePNGEncode(args)
	case "png_inspect":
		return s.handlePNGInspect(args)
	case "tone_generate":
		return s.handleToneGenerate(args)
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

// === Asset Tree Handlers ===

type assetListResult struct {
	OutputDir string              `json:"output_dir"`
	Sprites   []assets.SpriteSpec `json:"sprites"`
	Sounds    []assets.SoundSpec  `json:"sounds"`
}

func (s *Server) handleAssetList(args json.RawMessage) (interface{}, error) {
	return &assetListResult{
		OutputDir: s.cfg.OutputDir,
		Sprites:   s.manifest.Sprites,
		Sounds:    s.manifest.Sounds,
	}, nil
}

type assetGenerateArgs struct {
	Names     []string `json:"names"`
	OutputDir string   `json:"output_dir"`
	PNGMode   string   `json:"png_mode"`
}

type assetGenerateResult struct {
	OutputDir string          `json:"output_dir"`
	PNGMode   string          `json:"png_mode"`
	Written   []assets.Result `json:"written"`
}

func (s *Server) handleAssetGenerate(args json.RawMessage) (interface{}, error) {
	var a assetGenerateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	cfg := s.cfg
	if a.OutputDir != "" {
		cfg.OutputDir = a.OutputDir
	}
	if a.PNGMode != "" {
		m, err := raster.ParseMode(a.PNGMode)
		if err != nil {
			return nil, err
		}
		cfg.PNGMode = m
	}

	written, err := assets.NewGenerator(cfg, s.manifest, assets.OSFS{}).Generate(a.Names...)
	if err != nil {
		return nil, err
	}
	return &assetGenerateResult{
		OutputDir: cfg.OutputDir,
		PNGMode:   cfg.PNGMode.String(),
		Written:   written,
	}, nil
}

// === Raster Handlers ===

type pngEncodeArgs struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Color  string `json:"color"`
	Mode   string `json:"mode"`
}

type pngEncodeResult struct {
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Mode        string           `json:"mode"`
	Color       raster.ColorInfo `json:"color"`
	Bytes       int              `json:"bytes"`
	ImageBase64 string           `json:"image_base64"`
	MimeType    string           `json:"mime_type"`
	Report      *raster.Report   `json:"report"`
}

func (s *Server) handlePNGEncode(args json.RawMessage) (interface{}, error) {
	var a pngEncodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, err := raster.ParseColor(a.Color)
	if err != nil {
		return nil, err
	}
	mode, err := raster.ParseMode(a.Mode)
	if err != nil {
		return nil, err
	}

	data, err := raster.EncodeMode(mode, raster.Descriptor{Width: a.Width, Height: a.Height, Color: c})
	if err != nil {
		return nil, err
	}
	report, err := raster.Inspect(data)
	if err != nil {
		return nil, err
	}

	return &pngEncodeResult{
		Width:       a.Width,
		Height:      a.Height,
		Mode:        mode.String(),
		Color:       c.Describe(),
		Bytes:       len(data),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
		Report:      report,
	}, nil
}

type pngInspectArgs struct {
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) handlePNGInspect(args json.RawMessage) (interface{}, error) {
	var a pngInspectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	switch {
	case a.Path != "":
		return raster.InspectFile(a.Path)
	case a.ImageBase64 != "":
		data, err := base64.StdEncoding.DecodeString(a.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("invalid image_base64: %w", err)
		}
		return raster.Inspect(data)
	default:
		return nil, errors.New("png_inspect needs path or image_base64")
	}
}

// === Audio Handlers ===

type toneGenerateArgs struct {
	Frequencies []float64 `json:"frequencies"`
	DurationMS  int       `json:"duration_ms"`
	SampleRate  int       `json:"sample_rate"`
	Volume      *float64  `json:"volume"`
}

type toneGenerateResult struct {
	SampleRate  int    `json:"sample_rate"`
	Samples     int    `json:"samples"`
	DurationMS  int    `json:"duration_ms"`
	Bytes       int    `json:"bytes"`
	AudioBase64 string `json:"audio_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleToneGenerate(args json.RawMessage) (interface{}, error) {
	var a toneGenerateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Frequencies) == 0 {
		return nil, errors.New("tone_generate needs at least one frequency")
	}

	rate := a.SampleRate
	if rate == 0 {
		rate = s.cfg.SampleRate
	}
	volume := s.cfg.Volume
	if a.Volume != nil {
		volume = *a.Volume
	}

	tones := make([]tone.Tone, len(a.Frequencies))
	for i, f := range a.Frequencies {
		tones[i] = tone.Tone{Frequency: f, Duration: time.Duration(a.DurationMS) * time.Millisecond}
	}
	samples, err := tone.Sequence(tones, rate, volume)
	if err != nil {
		return nil, err
	}
	data, err := wav.Bytes(samples, rate)
	if err != nil {
		return nil, err
	}

	return &toneGenerateResult{
		SampleRate:  rate,
		Samples:     len(samples),
		DurationMS:  a.DurationMS * len(tones),
		Bytes:       len(data),
		AudioBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "audio/wav",
	}, nil
}
