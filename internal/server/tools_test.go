package server

import "testing"

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"asset_list",
		"asset_generate",
		"png_encode",
		"png_inspect",
		"tone_generate",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}
		})
	}
}

func TestToolDefinitions_RequiredExist(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		required, ok := tool.InputSchema["required"].([]string)
		if !ok {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})

		t.Run(tool.Name, func(t *testing.T) {
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required field %s is not a property", r)
				}
			}
		})
	}
}
