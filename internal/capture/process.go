package capture

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// process is the subset of a running ffmpeg the device needs.
type process interface {
	// Interrupt asks ffmpeg to stop and finalize the output.
	Interrupt() error
	Kill() error
	Wait() error
}

type execProcess struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *tailBuffer
	once   sync.Once
}

func startExec(name string, args []string) (process, error) {
	cmd := exec.Command(name, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stderr := &tailBuffer{limit: 4096}
	cmd.Stderr = stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}
	return &execProcess{cmd: cmd, stdin: stdin, stderr: stderr}, nil
}

func (proc *execProcess) Interrupt() error {
	var err error
	proc.once.Do(func() {
		if _, writeErr := io.WriteString(proc.stdin, "q"); writeErr != nil {
			err = fmt.Errorf("send quit: %w", writeErr)
		}
		_ = proc.stdin.Close()
	})
	return err
}

func (proc *execProcess) Kill() error {
	if proc.cmd.Process == nil {
		return nil
	}
	return proc.cmd.Process.Kill()
}

func (proc *execProcess) Wait() error {
	err := proc.cmd.Wait()
	if err == nil {
		return nil
	}
	if tail := strings.TrimSpace(proc.stderr.String()); tail != "" {
		return fmt.Errorf("%w: %s", err, tail)
	}
	return err
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	data  []byte
}

func (buffer *tailBuffer) Write(p []byte) (int, error) {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	buffer.data = append(buffer.data, p...)
	if overflow := len(buffer.data) - buffer.limit; overflow > 0 {
		buffer.data = bytes.Clone(buffer.data[overflow:])
	}
	return len(p), nil
}

func (buffer *tailBuffer) String() string {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	return string(buffer.data)
}
