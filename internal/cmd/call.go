package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jdkbench/jdkmig/internal/mcp"
	"github.com/spf13/cobra"
)

var (
	callList bool
	callPipe bool
)

var callCmd = &cobra.Command{
	Use:   "call [tool] [json-args]",
	Short: "Call an MCP tool once from the command line",
	Long: `Call any jdkmig MCP tool with JSON input and print its JSON result,
without starting a server.

Modes:
  jdkmig call --list                          List all tools and parameters
  jdkmig call <tool> '{"key":"value"}'        Call a tool with JSON args
  jdkmig call --pipe                          Read JSON lines from stdin

Tool names accept shorthand: "params" is equivalent to "jdkmig_params".

Examples:
  jdkmig call --list
  jdkmig call params '{"text":"void f(int a, String b) {}"}'
  jdkmig call extract '{"path":"src/Codec.java","density":"sparse"}'
  echo '{"tool":"stats","args":{"path":"data/synthetic_dataset.json"}}' | jdkmig call --pipe`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
	callCmd.Flags().BoolVar(&callList, "list", false, "List all available tools and their parameters")
	callCmd.Flags().BoolVar(&callPipe, "pipe", false, "Read JSON lines from stdin (pipe mode)")
}

func runCall(cmd *cobra.Command, args []string) error {
	srv, err := mcp.New(mcp.Config{Tools: mcp.AllTools, Root: projectRoot()})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	defer srv.Close()

	if callList {
		return runCallList(srv)
	}
	if callPipe {
		return runCallPipe(srv)
	}
	if len(args) == 0 {
		return fmt.Errorf("tool name required (run 'jdkmig call --list' to see available tools)")
	}
	return runCallSingle(srv, args)
}

func runCallList(srv *mcp.Server) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return writeOutput(cfg, srv.GetToolSchemas())
}

func runCallSingle(srv *mcp.Server, args []string) error {
	toolArgs := make(map[string]any)
	if len(args) >= 2 {
		if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
			return fmt.Errorf("invalid JSON args: %w", err)
		}
	}

	result, err := srv.CallTool(normalizeToolName(args[0]), toolArgs)
	if err != nil {
		return err
	}

	fmt.Println(result)
	return nil
}

// pipeRequest is the JSON format for pipe mode input.
type pipeRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// pipeResponse is the JSON format for pipe mode output.
type pipeResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// runCallPipe answers one JSON request per stdin line with one JSON
// response per stdout line. Bad lines get an error response and the loop
// goes on.
func runCallPipe(srv *mcp.Server) error {
	enc := json.NewEncoder(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)
	// Method sources can be long.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := enc.Encode(pipeCall(srv, []byte(line))); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func pipeCall(srv *mcp.Server, line []byte) pipeResponse {
	var req pipeRequest
	if err := json.Unmarshal(line, &req); err != nil {
		return pipeResponse{Error: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if req.Args == nil {
		req.Args = map[string]any{}
	}
	result, err := srv.CallTool(normalizeToolName(req.Tool), req.Args)
	if err != nil {
		return pipeResponse{Error: err.Error()}
	}
	return pipeResponse{Result: json.RawMessage(result)}
}

// normalizeToolName expands shorthand such as "params" to "jdkmig_params".
func normalizeToolName(name string) string {
	const prefix = "jdkmig_"
	if strings.HasPrefix(name, prefix) {
		return name
	}
	return prefix + name
}
