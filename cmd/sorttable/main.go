package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aerissecure/sorttable"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/errors"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
	flag.PrintDefaults()
}

func exit(msg string, e error) {
	if e != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", msg, e.Error())
	} else {
		fmt.Fprintf(os.Stderr, "%s\n", msg)
	}

	flag.Usage()

	os.Exit(2)
}

// parseClicks reads a comma separated list of column indices.
func parseClicks(s string) ([]int, error) {
	var cols []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		col, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Newf("column %q", part).Wrap(err)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

type options struct {
	input  string
	output string
	index  int
	clicks string
	column int
	desc   bool
	format string
	algo   string
	width  int
	debug  bool
}

// run applies the activations, then the explicit sort, and returns the last outcome.
func run(src source, clicks []int, column int, desc bool) (outcome, bool, error) {
	var (
		last outcome
		did  bool
	)
	for _, col := range clicks {
		res, err := src.Activate(col)
		if err != nil {
			return last, did, errors.Newf("activate column %d", col).Wrap(err)
		}
		last, did = res, true
	}
	if column >= 0 {
		dir := sorttable.Ascending
		if desc {
			dir = sorttable.Descending
		}
		res, err := src.SortAs(column, dir)
		if err != nil {
			return last, did, errors.Newf("sort column %d", column).Wrap(err)
		}
		last, did = res, true
	}
	return last, did, nil
}

func summary(o outcome) string {
	if !o.changed {
		return fmt.Sprintf("column %d: nothing to sort", o.column)
	}
	verb := "sorted"
	if o.reversed {
		verb = "reversed"
	}
	return fmt.Sprintf("column %d: %s %s rows %s as %s", o.column, verb, humanize.Comma(int64(o.rows)), o.direction, o.typ)
}

func main() {
	opts := options{}

	flag.StringVar(&opts.input, "in", "", "the .html, .xlsx or .docx file to sort")
	flag.StringVar(&opts.output, "out", "", "write output here instead of stdout")
	flag.IntVar(&opts.index, "table", 0, "which sortable table (or sheet) to use, 0-based")
	flag.StringVar(&opts.clicks, "click", "", "header activations to replay, e.g. \"2,2\"")
	flag.IntVar(&opts.column, "col", -1, "sort this column in an explicit direction after the activations")
	flag.BoolVar(&opts.desc, "desc", false, "sort -col descending")
	flag.StringVar(&opts.format, "format", "auto", "output format: auto, html or text")
	flag.StringVar(&opts.algo, "algo", sorttable.SortStable.String(), "sort algorithm: stable, unstable or shaker")
	flag.IntVar(&opts.width, "width", 0, "truncate text output cells to this many columns")
	flag.BoolVar(&opts.debug, "debug", false, "log classification and sorting to stderr")

	flag.Usage = usage
	flag.Parse()

	if opts.input == "" {
		exit("must provide an input file", nil)
	}

	algo, ok := sorttable.ParseAlgorithm(opts.algo)
	if !ok {
		exit(fmt.Sprintf("unknown algorithm %q", opts.algo), nil)
	}
	clicks, err := parseClicks(opts.clicks)
	if err != nil {
		exit("invalid -click list", err)
	}
	switch opts.format {
	case "auto", "html", "text":
	default:
		exit(fmt.Sprintf("unknown format %q", opts.format), nil)
	}

	engine := sorttable.DefaultOptions()
	engine.Algorithm = algo
	engine.Debug = opts.debug
	logger := engine.NewLogger("cli")

	src, err := load(opts.input, opts.index, engine)
	if err != nil {
		exit("unable to load table", err)
	}

	last, did, err := run(src, clicks, opts.column, opts.desc)
	if err != nil {
		exit("unable to sort", err)
	}
	if did {
		fmt.Fprintln(os.Stderr, summary(last))
	}

	if opts.output == "" {
		format := resolveFormat(opts.format, os.Stdout)
		logger.Debugf("writing %s to stdout", format)
		if err := write(os.Stdout, src, format, opts.width); err != nil {
			exit("unable to write output", err)
		}
		return
	}
	logger.Debugf("writing to %s", opts.output)
	if err := writeFile(opts.output, src, opts.format, opts.width); err != nil {
		exit("unable to write output", err)
	}
}

// writeFile writes src to path; a failed close is reported like a failed write.
func writeFile(path string, src source, format string, width int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Newf("create %s", path).Wrap(err)
	}
	err = write(f, src, resolveFormat(format, f), width)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.Newf("close %s", path).Wrap(cerr)
	}
	return err
}

func write(w io.Writer, src source, format string, width int) error {
	if format == "text" {
		return writeText(w, src, width)
	}
	return src.WriteHTML(w)
}
