package gdbmi

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// maxRecordSize bounds a single record line. Value dumps of large
// arrays can run long.
const maxRecordSize = 1 << 20

// Options configures a gdb launch.
type Options struct {
	// Path is the gdb executable. Empty means "gdb" from PATH.
	Path string

	// Args is the debugged program and its arguments.
	Args []string

	// TTY is the terminal device handed to the debugged program for
	// its input and output.
	TTY string
}

// Session is a running gdb subprocess. One command may be outstanding
// at a time; everything gdb volunteers in between arrives on Records.
type Session struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser

	records chan Record
	done    chan struct{}

	closeOnce sync.Once

	// queue decouples the stream readers from the Records consumer.
	// The consumer may sit inside Execute while gdb floods output;
	// the readers must stay free to reach the result record.
	queueMu   sync.Mutex
	queueCond *sync.Cond
	queue     []Record
	eof       bool

	mu      sync.Mutex
	pending chan *ResultRecord
	running bool
	closed  bool
}

// Launch starts gdb in machine interface mode.
func Launch(opts Options) (*Session, error) {
	path := opts.Path
	if path == "" {
		path = "gdb"
	}
	args := []string{"--interpreter=mi"}
	if opts.TTY != "" {
		args = append(args, "--tty="+opts.TTY)
	}
	if len(opts.Args) > 0 {
		args = append(args, "--args")
		args = append(args, opts.Args...)
	}

	cmd := exec.Command(path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("creating gdb stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("creating gdb stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("creating gdb stderr: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting gdb: %w", err)
	}

	return newSession(cmd, stdin, stdout, stderr), nil
}

// newSession wires a session onto raw streams. Launch attaches it to a
// process; tests attach it to pipes.
func newSession(cmd *exec.Cmd, stdin io.WriteCloser, stdout, stderr io.Reader) *Session {
	s := &Session{
		cmd:     cmd,
		stdin:   stdin,
		records: make(chan Record, 16),
		done:    make(chan struct{}),
	}
	s.queueCond = sync.NewCond(&s.queueMu)
	go s.read(stdout, stderr)
	go s.forward()
	return s
}

// Records delivers stream, async, unsolicited result, and malformed
// records. The channel closes when the session ends.
func (s *Session) Records() <-chan Record {
	return s.records
}

// Done is closed when gdb's output has ended.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// TargetRunning reports whether the debugged program is currently
// executing.
func (s *Session) TargetRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Execute sends one command and waits for its result record.
// It returns ErrBusy while the target runs or another command is
// outstanding, and ErrQuit once the session has ended.
func (s *Session) Execute(ctx context.Context, command string) (*ResultRecord, error) {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return nil, ErrQuit
	case s.running, s.pending != nil:
		s.mu.Unlock()
		return nil, ErrBusy
	}
	pending := make(chan *ResultRecord, 1)
	s.pending = pending
	s.mu.Unlock()

	if _, err := io.WriteString(s.stdin, command+"\n"); err != nil {
		s.mu.Lock()
		if s.pending == pending {
			s.pending = nil
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("writing command: %w", err)
	}

	select {
	case rec, ok := <-pending:
		if !ok {
			return nil, ErrQuit
		}
		if rec.Class == ResultExit {
			return nil, ErrQuit
		}
		return rec, nil
	case <-ctx.Done():
		s.mu.Lock()
		if s.pending == pending {
			s.pending = nil
		}
		s.mu.Unlock()
		return nil, ctx.Err()
	}
}

// Interrupt stops the running target, like hitting Ctrl-C in a plain
// gdb session.
func (s *Session) Interrupt() error {
	if s.cmd == nil || s.cmd.Process == nil {
		return ErrQuit
	}
	return s.cmd.Process.Signal(os.Interrupt)
}

// Kill forcibly terminates the gdb process.
func (s *Session) Kill() error {
	if s.cmd == nil || s.cmd.Process == nil {
		return ErrQuit
	}
	return s.cmd.Process.Kill()
}

// Close ends the session by closing gdb's command stream, which gdb
// treats as a quit.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.stdin.Close()
	})
	return err
}

func (s *Session) read(stdout, stderr io.Reader) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.readRecords(stdout)
	}()
	go func() {
		defer wg.Done()
		s.readLog(stderr)
	}()
	wg.Wait()
	s.shutdown()
}

// deliver queues a record for the Records consumer without blocking
// the reader.
func (s *Session) deliver(rec Record) {
	s.queueMu.Lock()
	s.queue = append(s.queue, rec)
	s.queueMu.Unlock()
	s.queueCond.Signal()
}

// forward drains the queue into the Records channel. Only this
// goroutine blocks on the consumer.
func (s *Session) forward() {
	for {
		s.queueMu.Lock()
		for len(s.queue) == 0 && !s.eof {
			s.queueCond.Wait()
		}
		batch := s.queue
		s.queue = nil
		eof := s.eof
		s.queueMu.Unlock()

		for _, rec := range batch {
			s.records <- rec
		}
		if eof {
			close(s.records)
			close(s.done)
			if s.cmd != nil {
				_ = s.cmd.Wait()
			}
			return
		}
	}
}

func (s *Session) readRecords(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	for scanner.Scan() {
		line := scanner.Text()
		rec, err := ParseLine(line)
		if err != nil {
			s.deliver(&MalformedRecord{Line: line, Err: err})
			continue
		}
		switch rec := rec.(type) {
		case *PromptRecord:
			// Block terminator, nothing to deliver.
		case *ResultRecord:
			s.finish(rec)
		case *AsyncRecord:
			s.trackExecState(rec)
			s.deliver(rec)
		default:
			s.deliver(rec)
		}
	}
}

// readLog forwards gdb's stderr as log stream records.
func (s *Session) readLog(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		s.deliver(&StreamRecord{Kind: StreamLog, Text: scanner.Text() + "\n"})
	}
}

// finish completes the outstanding command. A result nobody waits for
// is delivered like an out-of-band record.
func (s *Session) finish(rec *ResultRecord) {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	if rec.Class == ResultExit {
		s.closed = true
	}
	s.mu.Unlock()

	if pending != nil {
		pending <- rec
		return
	}
	s.deliver(rec)
}

func (s *Session) trackExecState(rec *AsyncRecord) {
	if rec.Kind != AsyncExec {
		return
	}
	s.mu.Lock()
	switch rec.Class {
	case ClassRunning:
		s.running = true
	case ClassStopped:
		s.running = false
	}
	s.mu.Unlock()
}

// shutdown runs once both streams have ended. The forwarder closes
// Records and Done after the queue drains.
func (s *Session) shutdown() {
	s.mu.Lock()
	s.closed = true
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if pending != nil {
		close(pending)
	}

	s.queueMu.Lock()
	s.eof = true
	s.queueMu.Unlock()
	s.queueCond.Signal()
}
