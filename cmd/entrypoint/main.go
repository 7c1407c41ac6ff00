// Package main runs the dice service and the MCP HTTP bridge in one container.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/louisbranch/dicebag/internal/platform/cmd"
)

// defaultDiceAddr is the internal gRPC address the MCP bridge dials.
const defaultDiceAddr = "127.0.0.1:8082"

// defaultMCPHTTPAddr is the MCP HTTP bind address for container use.
const defaultMCPHTTPAddr = "0.0.0.0:8081"

// shutdownTimeout is the grace period before forcing child exit.
const shutdownTimeout = 10 * time.Second

// childProcess describes a managed child command.
type childProcess struct {
	name string
	cmd  *exec.Cmd
}

// processExit reports a child process exit result.
type processExit struct {
	name string
	err  error
}

// main starts the dice service and MCP HTTP bridge, then supervises them.
func main() {
	log.SetPrefix("[ENTRYPOINT] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	diceAddr := getenvDefault("DICEBAG_DICE_ADDR", defaultDiceAddr)
	mcpHTTPAddr := getenvDefault("DICEBAG_MCP_HTTP_ADDR", defaultMCPHTTPAddr)

	specs := []struct {
		name string
		path string
		args []string
	}{
		{name: cmd.ServiceDice, path: "/app/dice", args: []string{"-addr=" + diceAddr}},
		{name: cmd.ServiceMCP, path: "/app/mcp", args: []string{"-transport=http", "-http-addr=" + mcpHTTPAddr, "-addr=" + diceAddr}},
	}

	children := make([]*childProcess, 0, len(specs))
	for _, spec := range specs {
		child, err := startChild(spec.name, exec.Command(spec.path, spec.args...))
		if err != nil {
			terminateChildren(children)
			log.Fatalf("failed to start %s: %v", spec.name, err)
		}
		children = append(children, child)
	}

	exitCh := make(chan processExit, len(children))
	for _, child := range children {
		go waitChild(child, exitCh)
	}

	select {
	case <-ctx.Done():
		log.Printf("shutdown signal received")
		terminateChildren(children)
		waitForChildren(exitCh, len(children), shutdownTimeout, children)
		return
	case exit := <-exitCh:
		log.Printf("%s exited: %v", exit.name, exit.err)
		terminateChildren(children)
		waitForChildren(exitCh, len(children)-1, shutdownTimeout, children)
		os.Exit(exitCode(exit.err))
	}
}

// startChild starts a child process with inherited stdio streams.
func startChild(name string, cmd *exec.Cmd) (*childProcess, error) {
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Start()
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}

	return &childProcess{name: name, cmd: cmd}, nil
}

// waitChild waits for a child process and reports its exit.
func waitChild(child *childProcess, exitCh chan<- processExit) {
	err := child.cmd.Wait()
	exitCh <- processExit{name: child.name, err: err}
}

// terminateChildren sends SIGTERM to all child processes.
func terminateChildren(children []*childProcess) {
	for _, child := range children {
		if child == nil || child.cmd == nil || child.cmd.Process == nil {
			continue
		}
		_ = child.cmd.Process.Signal(syscall.SIGTERM)
	}
}

// waitForChildren waits for the remaining exits or forces shutdown.
func waitForChildren(exitCh <-chan processExit, remaining int, timeout time.Duration, children []*childProcess) {
	if remaining <= 0 {
		return
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for remaining > 0 {
		select {
		case <-exitCh:
			remaining--
		case <-timer.C:
			forceKill(children)
			return
		}
	}
}

// forceKill sends SIGKILL to any child still running.
func forceKill(children []*childProcess) {
	for _, child := range children {
		if child == nil || child.cmd == nil || child.cmd.Process == nil {
			continue
		}
		if child.cmd.ProcessState != nil {
			continue
		}
		_ = child.cmd.Process.Kill()
	}
}

// exitCode derives a process exit code from a wait error.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return 1
}

// getenvDefault returns the env value or a fallback when unset.
func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
