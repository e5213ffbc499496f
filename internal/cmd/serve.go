package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jdkbench/jdkmig/internal/config"
	"github.com/jdkbench/jdkmig/internal/mcp"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server for agent integration",
	Long: `Start an MCP (Model Context Protocol) server on stdio so agents can call
the extractor and dataset statistics as tools.

Available Tools:
  jdkmig_extract   Methods of a Java file with length, parameters and source
  jdkmig_params    Parameter list of a method text
  jdkmig_stats     Statistics for a dataset file

Examples:
  jdkmig serve                          # Start with all tools
  jdkmig serve --tools extract,params   # Start with specific tools only
  jdkmig serve --timeout 30m            # Auto-stop after 30 minutes idle
  jdkmig serve --status                 # Check if server is running
  jdkmig serve --stop                   # Stop running server
  jdkmig serve --list-tools             # Show available tools`,
	RunE: runServe,
}

var (
	serveTools     string
	serveTimeout   string
	serveStatus    bool
	serveStop      bool
	serveListTools bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveTools, "tools", "", "Comma-separated list of tools to expose (default: all)")
	serveCmd.Flags().StringVar(&serveTimeout, "timeout", "30m", "Inactivity timeout (0 for no timeout)")
	serveCmd.Flags().BoolVar(&serveStatus, "status", false, "Check if server is running")
	serveCmd.Flags().BoolVar(&serveStop, "stop", false, "Stop running server")
	serveCmd.Flags().BoolVar(&serveListTools, "list-tools", false, "List available tools")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveListTools {
		fmt.Println("Available MCP tools:")
		fmt.Println()
		for _, name := range mcp.AllTools {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}
	if serveStatus {
		return checkServerStatus()
	}
	if serveStop {
		return stopServer()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	timeout, err := parseDuration(serveTimeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	var tools []string
	if serveTools != "" {
		for _, t := range strings.Split(serveTools, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tools = append(tools, normalizeToolName(t))
			}
		}
	}

	server, err := mcp.New(mcp.Config{
		Tools:     tools,
		Timeout:   timeout,
		Root:      projectRoot(),
		MinLength: cfg.GitHub.MinFunctionLength,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	pid, err := newPIDFile()
	if err == nil {
		err = pid.write()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write PID file: %v\n", err)
	}

	ctx, cancel := signalContext()
	defer cancel()
	go func() {
		<-ctx.Done()
		fmt.Fprintf(os.Stderr, "\njdkmig serve: shutting down\n")
		server.Close()
		pid.remove()
		os.Exit(0)
	}()

	// stdout carries the MCP protocol
	fmt.Fprintf(os.Stderr, "jdkmig serve: tools %s", strings.Join(server.ListTools(), ", "))
	if timeout > 0 {
		fmt.Fprintf(os.Stderr, ", idle timeout %v", timeout)
	}
	fmt.Fprintln(os.Stderr)

	err = server.ServeStdio()
	pid.remove()
	return err
}


func parseDuration(s string) (time.Duration, error) {
	if s == "0" || s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// pidFile records the running server in .jdkmig/serve.pid. A nil pidFile
// does nothing.
type pidFile struct {
	path string
}

func newPIDFile() (*pidFile, error) {
	dir, err := config.FindConfigDir(".")
	if err != nil {
		return nil, err
	}
	return &pidFile{path: filepath.Join(dir, "serve.pid")}, nil
}

func (p *pidFile) write() error {
	return os.WriteFile(p.path, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func (p *pidFile) remove() {
	if p != nil {
		os.Remove(p.path)
	}
}

// running returns the recorded process when it is still alive. A stale
// file is removed.
func (p *pidFile) running() (*os.Process, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err == nil {
		// FindProcess never fails on Unix; signal 0 probes liveness.
		var proc *os.Process
		if proc, err = os.FindProcess(n); err == nil {
			if err = proc.Signal(syscall.Signal(0)); err == nil {
				return proc, true
			}
		}
	}
	p.remove()
	return nil, false
}

func checkServerStatus() error {
	if pid, err := newPIDFile(); err == nil {
		if proc, ok := pid.running(); ok {
			fmt.Printf("Status: running (PID %d)\n", proc.Pid)
			return nil
		}
	}
	fmt.Println("Status: not running")
	return nil
}

func stopServer() error {
	pid, err := newPIDFile()
	if err != nil {
		fmt.Println("No server running")
		return nil
	}
	proc, ok := pid.running()
	if !ok {
		fmt.Println("No server running")
		return nil
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		pid.remove()
		return fmt.Errorf("stop server (PID %d): %w", proc.Pid, err)
	}
	fmt.Printf("Stopped server (PID %d)\n", proc.Pid)
	return nil
}
