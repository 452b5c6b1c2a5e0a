package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the top-down image",
	}
}

func expectedProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Number of players to look for. Defaults to the server setting (22 unless configured)",
		"minimum":     1,
		"maximum":     200,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and size. The decoded image is cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "players_detect",
			Description: "Detect circular player markers. Returns each player's id, center and radius in a lower-left origin frame " +
				"(y grows upward), the shared radius, and per-stage candidate counts. Fewer players than expected is a valid result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty(),
					"expected": expectedProperty(),
					"debug": map[string]interface{}{
						"type":        "boolean",
						"description": "Log per-stage candidate counts at info level",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "players_graph",
			Description: "Detect players, take one team (A = left half of the IDs, B = right half) and return every pairwise " +
				"edge between its players with Euclidean lengths.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty(),
					"expected": expectedProperty(),
					"team": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"A", "B"},
						"description": "Team to connect",
					},
					"fold": map[string]interface{}{
						"type":        "boolean",
						"description": "Shift team B left by half the image width first",
						"default":     false,
					},
				},
				"required": []string{"path", "team"},
			},
		},
		{
			Name:        "players_distances",
			Description: "Detect players and return the distance from one player to each player of the other team.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty(),
					"expected": expectedProperty(),
					"player_id": map[string]interface{}{
						"type":        "integer",
						"description": "ID of the player to measure from",
						"minimum":     1,
					},
					"fold": map[string]interface{}{
						"type":        "boolean",
						"description": "Overlay both halves on one half-pitch frame before measuring",
						"default":     true,
					},
					"nearest": map[string]interface{}{
						"type":        "integer",
						"description": "If set, return only the k nearest opponents, closest first",
						"minimum":     0,
					},
				},
				"required": []string{"path", "player_id"},
			},
		},
		{
			Name:        "players_render",
			Description: "Detect players and return the image with team-colored discs and ID labels drawn on it, as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty(),
					"expected": expectedProperty(),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor for the returned image. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "players_plot",
			Description: "Detect players and save a chart of them in the lower-left frame to an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty(),
					"expected": expectedProperty(),
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the chart; the extension picks the format (png, svg, pdf)",
					},
					"fold": map[string]interface{}{
						"type":        "boolean",
						"description": "Overlay both halves on one half-pitch frame",
						"default":     false,
					},
					"graph": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"A", "B"},
						"description": "Draw the complete graph of this team",
					},
				},
				"required": []string{"path", "output"},
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
