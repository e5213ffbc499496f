// Package mcp provides an MCP (Model Context Protocol) server for jdkmig.
// Agents can extract methods, read parameter lists and summarize datasets
// through MCP tools instead of CLI commands.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/jdkbench/jdkmig/internal/dataset"
	"github.com/jdkbench/jdkmig/internal/deprecation"
	"github.com/jdkbench/jdkmig/internal/extract"
	"github.com/jdkbench/jdkmig/internal/output"
	"github.com/jdkbench/jdkmig/internal/report"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server with jdkmig tools
type Server struct {
	mcpServer *server.MCPServer
	extractor *extract.FileExtractor
	// extractMu serializes use of the tree-sitter parser.
	extractMu sync.Mutex

	root         string
	minLength    int
	tools        map[string]bool
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration
type Config struct {
	Tools   []string      // Which tools to expose (empty = all)
	Timeout time.Duration // Inactivity timeout (0 = no timeout)
	// Root resolves relative paths given to tools. Defaults to ".".
	Root string
	// MinLength is the default minimum method length for jdkmig_extract.
	MinLength int
}

// AllTools lists all available tools
var AllTools = []string{"jdkmig_extract", "jdkmig_params", "jdkmig_stats"}

// New creates a new MCP server for jdkmig
func New(cfg Config) (*Server, error) {
	extractor, err := extract.NewFileExtractor()
	if err != nil {
		return nil, fmt.Errorf("creating extractor: %w", err)
	}

	root := cfg.Root
	if root == "" {
		root = "."
	}

	s := &Server{
		mcpServer:    server.NewMCPServer("jdkmig", "1.0.0", server.WithToolCapabilities(false)),
		extractor:    extractor,
		root:         root,
		minLength:    cfg.MinLength,
		tools:        make(map[string]bool),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = AllTools
	}
	for _, toolName := range toolsToRegister {
		if err := s.registerTool(toolName); err != nil {
			extractor.Close()
			return nil, fmt.Errorf("failed to register tool %s: %w", toolName, err)
		}
		s.tools[toolName] = true
	}
	return s, nil
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(name string) error {
	var tool mcp.Tool
	switch name {
	case "jdkmig_extract":
		tool = mcp.NewTool("jdkmig_extract",
			mcp.WithDescription(toolSchemaRegistry[name].Description),
			mcp.WithString("source", mcp.Description("Java source text")),
			mcp.WithString("path", mcp.Description("Path of a .java file, used when source is empty")),
			mcp.WithNumber("min_length", mcp.Description("Minimum method length in lines (default: 0)")),
			mcp.WithString("density", mcp.Description("Detail level: sparse, medium, dense (default: medium)")),
		)
	case "jdkmig_params":
		tool = mcp.NewTool("jdkmig_params",
			mcp.WithDescription(toolSchemaRegistry[name].Description),
			mcp.WithString("text", mcp.Required(), mcp.Description("Method text starting at its signature")),
		)
	case "jdkmig_stats":
		tool = mcp.NewTool("jdkmig_stats",
			mcp.WithDescription(toolSchemaRegistry[name].Description),
			mcp.WithString("path", mcp.Required(), mcp.Description("Dataset JSON file")),
			mcp.WithString("terms", mcp.Description("Term set: filter, initial, secondary (default: initial)")),
			mcp.WithBoolean("map_terms", mcp.Description("Group keyword counts by category")),
		)
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}

	s.mcpServer.AddTool(tool, s.handler(name))
	return nil
}

// handler adapts CallTool to an MCP tool handler.
func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.updateActivity()

		result, err := s.CallTool(name, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(result), nil
	}
}

// ServeStdio starts the server using stdio transport
func (s *Server) ServeStdio() error {
	if s.timeout > 0 {
		go s.timeoutChecker()
	}

	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker monitors for inactivity and exits if timeout exceeded
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		elapsed := time.Since(s.lastActivity)
		s.mu.RUnlock()

		if elapsed > s.timeout {
			fmt.Fprintf(os.Stderr, "jdkmig serve: timeout after %v of inactivity\n", s.timeout)
			os.Exit(0)
		}
	}
}

func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// Close releases the extractor.
func (s *Server) Close() error {
	s.extractMu.Lock()
	defer s.extractMu.Unlock()
	s.extractor.Close()
	return nil
}

// ListTools returns the registered tool names, sorted.
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	sort.Strings(tools)
	return tools
}

// ToolSchema describes a tool's name, description, and parameters.
type ToolSchema struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Parameters  []ParameterSchema `json:"parameters" yaml:"parameters"`
}

// ParameterSchema describes a single tool parameter.
type ParameterSchema struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
}

// toolSchemaRegistry mirrors the mcp.NewTool definitions in registerTool.
var toolSchemaRegistry = map[string]ToolSchema{
	"jdkmig_extract": {
		Name:        "jdkmig_extract",
		Description: "Extract every method of a Java file with its length, parameters and normalized source.",
		Parameters: []ParameterSchema{
			{Name: "source", Type: "string", Description: "Java source text"},
			{Name: "path", Type: "string", Description: "Path of a .java file, used when source is empty"},
			{Name: "min_length", Type: "number", Description: "Minimum method length in lines (default: 0)"},
			{Name: "density", Type: "string", Description: "Detail level: sparse, medium, dense (default: medium)"},
		},
	},
	"jdkmig_params": {
		Name:        "jdkmig_params",
		Description: "Read the parameter declarations of a method text.",
		Parameters: []ParameterSchema{
			{Name: "text", Type: "string", Description: "Method text starting at its signature", Required: true},
		},
	},
	"jdkmig_stats": {
		Name:        "jdkmig_stats",
		Description: "Compute length, parameter and deprecated-API statistics for a dataset file.",
		Parameters: []ParameterSchema{
			{Name: "path", Type: "string", Description: "Dataset JSON file", Required: true},
			{Name: "terms", Type: "string", Description: "Term set: filter, initial, secondary (default: initial)"},
			{Name: "map_terms", Type: "boolean", Description: "Group keyword counts by category"},
		},
	},
}

// GetToolSchemas returns schemas for all registered tools, sorted by name.
func (s *Server) GetToolSchemas() []ToolSchema {
	schemas := make([]ToolSchema, 0, len(s.tools))
	for _, name := range s.ListTools() {
		if schema, ok := toolSchemaRegistry[name]; ok {
			schemas = append(schemas, schema)
		}
	}
	return schemas
}

// CallTool dispatches a tool call by name with the given arguments.
// Returns the JSON result string or an error.
func (s *Server) CallTool(name string, args map[string]any) (string, error) {
	s.mu.RLock()
	registered := s.tools[name]
	s.mu.RUnlock()

	if !registered {
		return "", fmt.Errorf("unknown tool: %s (run 'jdkmig call --list' to see available tools)", name)
	}

	switch name {
	case "jdkmig_extract":
		source, _ := args["source"].(string)
		path, _ := args["path"].(string)
		if source == "" && path == "" {
			return "", fmt.Errorf("source or path parameter is required")
		}
		minLength := s.minLength
		if l, ok := args["min_length"].(float64); ok {
			minLength = int(l)
		}
		density, _ := args["density"].(string)
		if density == "" {
			density = string(output.DefaultDensity)
		}
		return s.executeExtract(source, path, minLength, density)

	case "jdkmig_params":
		text, _ := args["text"].(string)
		if text == "" {
			return "", fmt.Errorf("text parameter is required")
		}
		return executeParams(text)

	case "jdkmig_stats":
		path, _ := args["path"].(string)
		if path == "" {
			return "", fmt.Errorf("path parameter is required")
		}
		terms, _ := args["terms"].(string)
		if terms == "" {
			terms = "initial"
		}
		mapTerms, _ := args["map_terms"].(bool)
		return s.executeStats(path, terms, mapTerms)

	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

func (s *Server) executeExtract(source, path string, minLength int, density string) (string, error) {
	d, err := output.ParseDensity(density)
	if err != nil {
		return "", err
	}

	name := "input.java"
	if source == "" {
		data, err := os.ReadFile(s.resolve(path))
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		source = string(data)
		name = filepath.Base(path)
	}

	s.extractMu.Lock()
	res, err := s.extractor.ExtractAll([]byte(source), minLength)
	s.extractMu.Unlock()
	if err != nil {
		return "", err
	}

	return output.NewJSONFormatter().Format(output.NewExtractOutput(name, res), d)
}

func executeParams(text string) (string, error) {
	params, err := extract.ExtractParameters(text)
	if err != nil {
		return "", err
	}
	return toJSON(&output.ParamsOutput{Parameters: params, Count: len(params)})
}

func (s *Server) executeStats(path, termSet string, mapTerms bool) (string, error) {
	terms, ok := deprecation.TermSets[termSet]
	if !ok {
		return "", fmt.Errorf("unknown term set: %s", termSet)
	}
	ds, err := dataset.Load(s.resolve(path))
	if err != nil {
		return "", err
	}
	return toJSON(report.DatasetStats(ds, terms, mapTerms))
}

func (s *Server) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.root, path)
}

func toJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
