package cat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"pkt.systems/cat/internal/decompress"
)

// ConcatRequest configures Concat.
type ConcatRequest struct {
	Inputs []Input
	// Stdin backs inputs marked Stdin. Defaults to os.Stdin.
	Stdin   io.Reader
	Writer  io.Writer
	Options FormatOptions
	// Counter continues numbering from an earlier run when set.
	Counter *LineCounter
	// Decompress decodes gzip, zstd, lz4, brotli and snappy inputs.
	Decompress bool
	// FlushEachLine flushes Writer after every standard input line.
	FlushEachLine bool
	Logger        *slog.Logger
}

type flusher interface {
	Flush() error
}

var enginePool = sync.Pool{
	New: func() any {
		return &Engine{}
	},
}

// Concat checks every input, then transforms each one in order to Writer
// with a single LineCounter. It stops at the first error. If Writer has a
// Flush method it is flushed after each input.
func Concat(ctx context.Context, req ConcatRequest) error {
	if req.Writer == nil {
		return fmt.Errorf("concat: %w", ErrNilWriter)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := req.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	for _, in := range req.Inputs {
		if err := CheckInput(in); err != nil {
			return err
		}
	}
	counter := req.Counter
	if counter == nil {
		counter = &LineCounter{}
	}
	eng := enginePool.Get().(*Engine)
	eng.reset(req.Writer, req.Options, counter)
	defer func() {
		eng.release()
		enginePool.Put(eng)
	}()

	fl, _ := req.Writer.(flusher)
	var stdin *bufio.Reader
	for _, in := range req.Inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		if in.Stdin {
			if stdin == nil {
				src := req.Stdin
				if src == nil {
					src = os.Stdin
				}
				stdin = bufio.NewReader(src)
			}
			var lineFlush flusher
			if req.FlushEachLine {
				lineFlush = fl
			}
			err = concatStdin(ctx, eng, stdin, lineFlush, logger)
		} else {
			err = concatUnit(ctx, eng, in, req.Decompress, logger)
		}
		if err != nil {
			return err
		}
		if fl != nil {
			if err := fl.Flush(); err != nil {
				return fmt.Errorf("concat: flush: %w", err)
			}
		}
	}
	logger.Debug("concat done", "inputs", len(req.Inputs), "lines", counter.Lines())
	return nil
}

func concatUnit(ctx context.Context, eng *Engine, in Input, decode bool, logger *slog.Logger) error {
	if in.Open == nil {
		return fmt.Errorf("%s: no opener", in.Name)
	}
	rc, err := in.Open(ctx)
	if err != nil {
		return inputError(in, err)
	}
	defer func() { _ = rc.Close() }()

	var r io.Reader = rc
	algo := decompress.None
	if decode {
		dec, detected, err := decompress.Open(in.Name, rc)
		if err != nil {
			return fmt.Errorf("%s: %w", in.Name, err)
		}
		defer func() { _ = dec.Close() }()
		r = dec
		algo = detected
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%s: read: %w", in.Name, err)
	}
	logger.Debug("input", "name", in.Name, "bytes", len(data), "compression", string(algo))
	return eng.Transform(data)
}

func concatStdin(ctx context.Context, eng *Engine, r *bufio.Reader, fl flusher, logger *slog.Logger) error {
	var total int
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := r.ReadSlice('\n')
		if len(line) > 0 {
			total += len(line)
			if terr := eng.Transform(line); terr != nil {
				return terr
			}
			if fl != nil && (err == nil || err == io.EOF) {
				if ferr := fl.Flush(); ferr != nil {
					return fmt.Errorf("concat: flush: %w", ferr)
				}
			}
		}
		switch err {
		case nil, bufio.ErrBufferFull:
			continue
		case io.EOF:
			logger.Debug("input", "name", StdinName, "bytes", total)
			return nil
		default:
			return fmt.Errorf("%s: read: %w", StdinName, err)
		}
	}
}
