// Package procmon supervises the external agent process for setups where
// reportchat starts it rather than attaching to one already running.
package procmon

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"

	"reportchat/internal/logger"
)

// Process is one spawned agent runtime. Its stdout/stderr run through a
// pty so line-buffered frameworks flush promptly, and every line lands in
// the component log.
type Process struct {
	cmd  *exec.Cmd
	log  *logger.LogEntry
	done chan struct{}

	mu      sync.Mutex
	exitErr error
}

// Spawn starts command under a pty. The command is run through the shell
// so config values like "uvicorn playground:app --port 7777" work as-is.
func Spawn(ctx context.Context, command string) (*Process, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, errors.New("empty spawn command")
	}
	cmd := exec.CommandContext(ctx, "bash", "-lc", command)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, fmt.Errorf("start agent process: %w", err)
	}

	p := &Process{
		cmd:  cmd,
		log:  logger.Named("agent-proc"),
		done: make(chan struct{}),
	}

	go func() {
		scanner := bufio.NewScanner(ptmx)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			p.log.Info(scanner.Text())
		}
	}()
	go func() {
		err := cmd.Wait()
		_ = ptmx.Close()
		p.mu.Lock()
		p.exitErr = err
		p.mu.Unlock()
		close(p.done)
	}()

	p.log.WithField("pid", cmd.Process.Pid).Infof("spawned: %s", command)
	return p, nil
}

// WaitReady blocks until the process has stayed up for the grace period,
// or returns the exit error if it died first. Frameworks take a moment to
// bind their port; callers connect after this returns nil.
func (p *Process) WaitReady(ctx context.Context, grace time.Duration) error {
	select {
	case <-p.done:
		return fmt.Errorf("agent process exited during startup: %w", p.exitError())
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(grace):
		return nil
	}
}

// Stop terminates the process and waits for it to exit.
func (p *Process) Stop() {
	if p.cmd != nil && p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	<-p.done
}

// Done is closed when the process exits.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

func (p *Process) exitError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.exitErr == nil {
		return errors.New("exit status 0")
	}
	return p.exitErr
}
