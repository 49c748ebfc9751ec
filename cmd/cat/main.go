package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/cat"
	"pkt.systems/version"
)

const (
	author        = "pkt.systems"
	outBufferSize = 64 << 10
)

func init() {
	version.SetDefaultModule("pkt.systems/cat")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// formatFlag is a boolean pflag.Value that applies its Option to a shared
// FormatOptions when parsed, so conflicting flags resolve in command line
// order.
type formatFlag struct {
	opts  *cat.FormatOptions
	apply cat.Option
	set   bool
}

func (f *formatFlag) String() string { return strconv.FormatBool(f.set) }
func (f *formatFlag) Type() string   { return "bool" }

func (f *formatFlag) Set(value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	if v {
		f.apply(f.opts)
	}
	f.set = v
	return nil
}

func addFormatFlag(flags *pflag.FlagSet, opts *cat.FormatOptions, name, shorthand, usage string) {
	apply, ok := cat.ShortFlagOption(shorthand[0])
	if !ok {
		panic("no format option for -" + shorthand)
	}
	f := flags.VarPF(&formatFlag{opts: opts, apply: apply}, name, shorthand, usage)
	f.NoOptDefVal = "true"
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		opts        cat.FormatOptions
		decompress  bool
		showVersion bool
		showHelp    bool
		debug       bool
	)

	flags := pflag.NewFlagSet("cat", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.SortFlags = false
	addFormatFlag(flags, &opts, "number-nonblank", "b", "number nonempty output lines, overrides -n")
	addFormatFlag(flags, &opts, "show-ends", "E", "display $ at end of each line")
	addFormatFlag(flags, &opts, "number", "n", "number all output lines")
	addFormatFlag(flags, &opts, "squeeze-blank", "s", "suppress repeated empty output lines")
	addFormatFlag(flags, &opts, "show-tabs", "T", "display TAB characters as ^I")
	addFormatFlag(flags, &opts, "show-nonprinting", "v", "use ^ and M- notation, except for LFD and TAB")
	flags.BoolVarP(&decompress, "decompress", "z", false, "decode gzip, zstd, lz4, brotli and snappy inputs")
	flags.BoolVar(&showHelp, "help", false, "display this help and exit")
	flags.BoolVar(&showVersion, "version", false, "output version information and exit")
	flags.BoolVar(&debug, "debug", false, "log debug information to stderr")
	_ = flags.MarkHidden("debug")
	// -h is not a cat flag; pflag reports it as ErrHelp after calling Usage.
	flags.Usage = func() {}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			err = errors.New("unknown shorthand flag: 'h' in -h")
		}
		fmt.Fprintf(stderr, "cat: %v\n", err)
		fmt.Fprintln(stderr, "see `cat --help`")
		return 1
	}

	if showVersion || showHelp {
		if len(args) != 1 {
			fmt.Fprintln(stderr, "incorrect arguments")
			fmt.Fprintln(stderr, "see `cat --help`")
			return 1
		}
		if showVersion {
			printVersion(stdout)
		} else {
			printUsage(stdout, flags)
		}
		return 0
	}

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	inputs, err := cat.ParseInputs(flags.Args())
	if err != nil {
		fmt.Fprintf(stderr, "cat: %v\n", err)
		return 1
	}
	logger.Debug("options parsed", "options", fmt.Sprintf("%+v", opts), "inputs", len(inputs), "decompress", decompress)

	out := bufio.NewWriterSize(stdout, outBufferSize)
	err = cat.Concat(ctx, cat.ConcatRequest{
		Inputs:        inputs,
		Stdin:         stdin,
		Writer:        out,
		Options:       opts,
		Decompress:    decompress,
		FlushEachLine: isTerminal(stdout),
		Logger:        logger,
	})
	if ferr := out.Flush(); err == nil && ferr != nil {
		err = ferr
	}
	if err != nil {
		fmt.Fprintf(stderr, "cat: %v\n", err)
		return 1
	}
	return 0
}

func printVersion(w io.Writer) {
	fmt.Fprintln(w, version.Module(), version.Current())
	fmt.Fprintf(w, "by: %s\n", author)
}

func printUsage(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, version.Module(), version.Current())
	fmt.Fprintln(w, "Usage: cat [OPTION]... [FILE]...")
	fmt.Fprintln(w, "Concatenate FILE(s) to standard output.")
	fmt.Fprintln(w, "\nWith no FILE, or when FILE is -, read standard input.")
	fmt.Fprintln(w, "FILE may also be a file:// or http(s):// URL.")
	fmt.Fprintln(w, "\nFlags:")
	fmt.Fprint(w, flags.FlagUsages())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
