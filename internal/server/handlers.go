package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/player-locator/internal/detection"
	"github.com/ironsheep/player-locator/internal/formation"
	"github.com/ironsheep/player-locator/internal/imaging"
	"github.com/ironsheep/player-locator/internal/render"
)

var validate = validator.New()

// errInvalidArguments marks tool calls whose arguments fail to parse or
// validate. They are reported as -32602 rather than as tool failures.
var errInvalidArguments = errors.New("invalid arguments")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "players_detect").
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
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.WithFields(logrus.Fields{"tool": params.Name, "error": err}).Warn("tool call failed")
		if errors.Is(err, errInvalidArguments) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
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
	case "image_load":
		return s.handleImageLoad(args)
	case "players_detect":
		return s.handlePlayersDetect(args)
	case "players_graph":
		return s.handlePlayersGraph(args)
	case "players_distances":
		return s.handlePlayersDistances(args)
	case "players_render":
		return s.handlePlayersRender(args)
	case "players_plot":
		return s.handlePlayersPlot(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// decodeArgs unmarshals and validates tool arguments into dst.
func decodeArgs(args json.RawMessage, dst interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return nil
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// detect runs the pipeline on path with the server defaults, overridden by
// a positive expected. Diagnostics are on when either the call or the
// server asks for them.
func (s *Server) detect(path string, expected int, debug bool) (*detection.DetectionResult, error) {
	if expected <= 0 {
		expected = s.expected
	}
	d := detection.NewDetector(
		detection.WithBackend(s.backend),
		detection.WithLogger(s.log.WithField("path", path)),
		detection.WithExpected(expected),
		detection.WithDebug(debug || s.debug),
	)
	return d.DetectFile(s.cache, path)
}

// === Image Information ===

type imageLoadArgs struct {
	Path string `json:"path" validate:"required"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Detection ===

type detectArgs struct {
	Path     string `json:"path" validate:"required"`
	Expected int    `json:"expected" validate:"min=0,max=200"`
	Debug    bool   `json:"debug"`
}

func (s *Server) handlePlayersDetect(args json.RawMessage) (interface{}, error) {
	var a detectArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.detect(a.Path, a.Expected, a.Debug)
}

// === Formation ===

type graphArgs struct {
	Path     string `json:"path" validate:"required"`
	Expected int    `json:"expected" validate:"min=0,max=200"`
	Team     string `json:"team" validate:"required"`
	Fold     bool   `json:"fold"`
}

// GraphResult is the complete graph over one team.
type GraphResult struct {
	Team    formation.Team     `json:"team"`
	Players []detection.Player `json:"players"`
	Edges   []formation.Edge   `json:"edges"`
}

func (s *Server) handlePlayersGraph(args json.RawMessage) (interface{}, error) {
	var a graphArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	team, err := formation.ParseTeam(a.Team)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidArguments, err)
	}

	result, err := s.detect(a.Path, a.Expected, false)
	if err != nil {
		return nil, err
	}
	players := result.Detected
	if a.Fold {
		players = formation.FoldHalves(players, result.Expected, result.ImageWidth)
	}
	members := formation.Members(players, result.Expected, team)
	return &GraphResult{
		Team:    team,
		Players: members,
		Edges:   formation.CompleteGraph(members),
	}, nil
}

type distancesArgs struct {
	Path     string `json:"path" validate:"required"`
	Expected int    `json:"expected" validate:"min=0,max=200"`
	PlayerID int    `json:"player_id" validate:"required,min=1"`
	Fold     *bool  `json:"fold"`
	Nearest  int    `json:"nearest" validate:"min=0"`
}

// DistancesResult holds the distances from one player to every opponent.
type DistancesResult struct {
	Player    detection.Player   `json:"player"`
	Opponents []detection.Player `json:"opponents"`
	Edges     []formation.Edge   `json:"edges"`
}

func (s *Server) handlePlayersDistances(args json.RawMessage) (interface{}, error) {
	var a distancesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	result, err := s.detect(a.Path, a.Expected, false)
	if err != nil {
		return nil, err
	}
	players := result.Detected
	if a.Fold == nil || *a.Fold {
		players = formation.FoldHalves(players, result.Expected, result.ImageWidth)
	}

	p, opponents, err := formation.Opponents(players, a.PlayerID, result.Expected)
	if err != nil {
		return nil, err
	}
	edges := formation.DistancesFrom(p, opponents)
	if a.Nearest > 0 {
		edges = formation.Nearest(edges, a.Nearest)
	}
	return &DistancesResult{Player: p, Opponents: opponents, Edges: edges}, nil
}

// === Rendering ===

type renderArgs struct {
	Path     string  `json:"path" validate:"required"`
	Expected int     `json:"expected" validate:"min=0,max=200"`
	Scale    float64 `json:"scale" validate:"min=0,max=8"`
}

// RenderResult is an annotated image plus the counts it shows.
type RenderResult struct {
	*render.EncodedImage
	Detected int `json:"detected"`
	Expected int `json:"expected"`
}

func (s *Server) handlePlayersRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	result, err := s.detect(a.Path, a.Expected, false)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	enc, err := render.Encode(render.Overlay(img, result, s.palette), a.Scale)
	if err != nil {
		return nil, err
	}
	return &RenderResult{EncodedImage: enc, Detected: len(result.Detected), Expected: result.Expected}, nil
}

type plotArgs struct {
	Path     string `json:"path" validate:"required"`
	Expected int    `json:"expected" validate:"min=0,max=200"`
	Output   string `json:"output" validate:"required"`
	Fold     bool   `json:"fold"`
	Graph    string `json:"graph" validate:"omitempty,oneof=A B a b"`
}

// PlotResult reports where a chart was written.
type PlotResult struct {
	Output  string             `json:"output"`
	Players []detection.Player `json:"players"`
	Edges   int                `json:"edges"`
}

func (s *Server) handlePlayersPlot(args json.RawMessage) (interface{}, error) {
	var a plotArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	result, err := s.detect(a.Path, a.Expected, false)
	if err != nil {
		return nil, err
	}
	opts := render.ResultPlotOptions(result)
	opts.Palette = s.palette
	players := result.Detected
	if a.Fold {
		players = formation.FoldHalves(players, result.Expected, result.ImageWidth)
		opts.XMax = float64(result.ImageWidth) / 2
		opts.Title = "Folded Players (origin lower left)"
	}
	if a.Graph != "" {
		team, err := formation.ParseTeam(a.Graph)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidArguments, err)
		}
		opts.Edges = formation.CompleteGraph(formation.Members(players, result.Expected, team))
	}

	if err := render.Plot(players, opts, a.Output); err != nil {
		return nil, err
	}
	return &PlotResult{Output: a.Output, Players: players, Edges: len(opts.Edges)}, nil
}
