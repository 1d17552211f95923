package ingest

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/nxadm/tail"
)

const maxLineBytes = 1024 * 1024

type SourceKind string

const (
	SourceStdin SourceKind = "stdin"
	SourceFile  SourceKind = "file"
)

type Options struct {
	Source SourceKind
	Path   string
	Follow bool
}

// Read streams log lines from the configured source. Both channels are
// closed when the source is exhausted or the context is cancelled. In
// follow mode the line channel stays open until cancellation.
func Read(ctx context.Context, opt Options) (<-chan string, <-chan error) {
	out := make(chan string, 1024)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)

		switch opt.Source {
		case SourceStdin:
			readFromReader(ctx, os.Stdin, out, errs)
		case SourceFile:
			if opt.Follow {
				readFromTail(ctx, opt.Path, out, errs)
				return
			}
			f, err := os.Open(opt.Path)
			if err != nil {
				errs <- err
				return
			}
			defer f.Close()
			readFromReader(ctx, f, out, errs)
		default:
			errs <- errors.New("unknown source kind")
		}
	}()

	return out, errs
}

func readFromReader(ctx context.Context, r io.Reader, out chan<- string, errs chan<- error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		case out <- scanner.Text():
		}
	}
	if err := scanner.Err(); err != nil {
		errs <- err
	}
}

// readFromTail follows a file from the beginning, surviving rotation.
// Unlike a plain scanner it keeps emitting as the file grows.
func readFromTail(ctx context.Context, path string, out chan<- string, errs chan<- error) {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
		Poll:      true,
	})
	if err != nil {
		errs <- err
		return
	}
	defer t.Cleanup()
	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case l, ok := <-t.Lines:
			if !ok {
				return
			}
			if l.Err != nil {
				errs <- l.Err
				continue
			}
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case out <- l.Text:
			}
		}
	}
}
