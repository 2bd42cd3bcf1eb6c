//go:build linux

// Package pty opens pseudoterminal pairs for the debugged program. The
// slave side is handed to gdb as the inferior's terminal; the master
// side feeds the terminal widget.
package pty

import (
	"fmt"
	"os"
	"strconv"
	"syscall"
	"unsafe"

	"github.com/google/uuid"
)

// Pair is an open pseudoterminal pair. Both ends stay open for the
// lifetime of the pair, so the line survives between runs of the
// debugged program.
type Pair struct {
	id     string
	name   string
	master *os.File
	slave  *os.File
}

// Open creates a new pseudoterminal pair.
func Open() (*Pair, error) {
	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening pty master: %w", err)
	}

	// grantpt is a no-op on modern Linux; unlocking is still required.
	if err := unlockPT(master); err != nil {
		master.Close()
		return nil, fmt.Errorf("unlocking pty: %w", err)
	}

	name, err := ptsName(master)
	if err != nil {
		master.Close()
		return nil, fmt.Errorf("resolving pty name: %w", err)
	}

	slave, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		master.Close()
		return nil, fmt.Errorf("opening pty slave: %w", err)
	}

	return &Pair{
		id:     uuid.New().String(),
		name:   name,
		master: master,
		slave:  slave,
	}, nil
}

// ID identifies this pair in logs.
func (p *Pair) ID() string {
	return p.id
}

// Name returns the slave device path, suitable for gdb's tty option.
func (p *Pair) Name() string {
	return p.name
}

// Read reads output of the debugged program from the master side.
func (p *Pair) Read(buf []byte) (int, error) {
	return p.master.Read(buf)
}

// Write sends input to the debugged program through the master side.
func (p *Pair) Write(data []byte) (int, error) {
	return p.master.Write(data)
}

// Resize propagates the display size of the terminal widget to the
// line, so the debugged program sees the real window dimensions.
func (p *Pair) Resize(cols, rows uint16) error {
	return setWinSize(p.master, cols, rows)
}

// Close closes both ends of the pair.
func (p *Pair) Close() error {
	slaveErr := p.slave.Close()
	masterErr := p.master.Close()
	if masterErr != nil {
		return masterErr
	}
	return slaveErr
}

// unlockPT unlocks the slave side of a newly opened master.
func unlockPT(master *os.File) error {
	var unlock int32
	_, _, errno := syscall.Syscall(
		syscall.SYS_IOCTL,
		master.Fd(),
		syscall.TIOCSPTLCK,
		uintptr(unsafe.Pointer(&unlock)),
	)
	if errno != 0 {
		return errno
	}
	return nil
}

// ptsName returns the slave device path for a master.
func ptsName(master *os.File) (string, error) {
	var ptyno uint32
	_, _, errno := syscall.Syscall(
		syscall.SYS_IOCTL,
		master.Fd(),
		syscall.TIOCGPTN,
		uintptr(unsafe.Pointer(&ptyno)),
	)
	if errno != 0 {
		return "", errno
	}
	return "/dev/pts/" + strconv.Itoa(int(ptyno)), nil
}

// setWinSize sets the window size of the line.
func setWinSize(f *os.File, cols, rows uint16) error {
	ws := &winSize{
		Row: rows,
		Col: cols,
	}
	_, _, errno := syscall.Syscall(
		syscall.SYS_IOCTL,
		f.Fd(),
		syscall.TIOCSWINSZ,
		uintptr(unsafe.Pointer(ws)),
	)
	if errno != 0 {
		return errno
	}
	return nil
}

// winSize is the structure used by TIOCSWINSZ.
type winSize struct {
	Row    uint16
	Col    uint16
	Xpixel uint16
	Ypixel uint16
}
