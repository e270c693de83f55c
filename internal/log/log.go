package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

const maxFileSize = 128 * 1024 // 128 KiB

var (
	Bold   = color.New(color.Bold).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Blue   = color.New(color.FgCyan).SprintFunc()
)

var (
	out         io.Writer = os.Stdout
	interactive           = false
	debug                 = len(os.Getenv("DEBUG")) > 0
)

type logWriter struct {
	writer io.Writer
}

func (w logWriter) Write(bytes []byte) (int, error) {
	w.tryRotate()
	return w.writer.Write(bytes)
}

func (w logWriter) Close() error {
	if c, ok := w.writer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// tryRotate truncates the underlying file once it grew past maxFileSize.
func (w logWriter) tryRotate() bool {
	f, ok := w.writer.(*os.File)
	if !ok {
		// Not a file, can't rotate
		return false
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if info.Size() < maxFileSize {
		// Not ripe for rotation
		return false
	}
	f.Truncate(0)
	f.Seek(0, 0)
	return true
}

// Init sets the log destination. Interactive sessions get no timestamps,
// colors are only emitted if useColors is set.
func Init(w io.Writer, isInteractive, useColors bool) {
	out = logWriter{writer: w}
	interactive = isInteractive
	color.NoColor = !useColors
}

// NewFileWriter opens path for appending. The returned writer truncates
// the file once it exceeds 128 KiB.
func NewFileWriter(path string) (io.WriteCloser, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return logWriter{writer: f}, nil
}

func prefix(level string) string {
	if interactive {
		return level + " "
	}
	return "[" + time.Now().Format("15:04:05") + "] " + level + " "
}

func Debugf(format string, a ...any) {
	if !debug {
		return
	}
	fmt.Fprintf(out, "%s%s\n", prefix("DEBUG"), fmt.Sprintf(format, a...))
}

func Infof(format string, a ...any) {
	fmt.Fprintf(out, "%s%s\n", prefix(Blue("INFO")), fmt.Sprintf(format, a...))
}

func Warningf(format string, a ...any) {
	fmt.Fprintf(out, "%s%s\n", prefix(Yellow("WARNING")), fmt.Sprintf(format, a...))
}

func Errorf(format string, a ...any) {
	fmt.Fprintf(out, "%s%s\n", prefix(Red("ERROR")), fmt.Sprintf(format, a...))
}

func Fatalf(format string, a ...any) {
	fmt.Fprintf(out, "%s%s\n", prefix(Red("FATAL")), fmt.Sprintf(format, a...))
	os.Exit(1)
}

// Printf writes without prefix, for regular command output.
func Printf(format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
