package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/casemock/internal/errors"
	"github.com/AndreyAkinshin/casemock/internal/match"
	"github.com/AndreyAkinshin/casemock/internal/mock"
	"github.com/AndreyAkinshin/casemock/internal/value"
)

// maxInputLine bounds one JSON Lines record in batch mode.
const maxInputLine = 16 << 20

// readInputValue parses a command's input argument: inline JSON text, or
// "-" to read the document from stdin.
func readInputValue(arg string) (value.Value, error) {
	data := []byte(arg)
	if arg == "-" {
		var err error
		if data, err = io.ReadAll(stdin); err != nil {
			return value.Value{}, fmt.Errorf("read stdin: %w", err)
		}
	}
	v, err := value.ParseJSON(data)
	if err != nil {
		return value.Value{}, fmt.Errorf("invalid input JSON: %w", err)
	}
	return v, nil
}

// singleInputArg extracts the one positional argument of lookup and explain.
func singleInputArg(cmd string, args []string) (string, int) {
	var positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		positional = append(positional, args[i])
	}
	switch len(positional) {
	case 0:
		out.ErrorPrefix("%s: input required (JSON text or - for stdin)", cmd)
		return "", errors.ExitConfigError
	case 1:
		return positional[0], 0
	default:
		out.ErrorPrefix("%s: expected one input, got %d (quote the JSON document)", cmd, len(positional))
		return "", errors.ExitConfigError
	}
}

func cmdLookup(ctx context.Context, args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printLookupUsage()
		return 0
	}
	arg, code := singleInputArg("lookup", args)
	if code != 0 {
		return code
	}
	input, err := readInputValue(arg)
	if err != nil {
		out.ErrorPrefix("lookup: %v", err)
		return errors.ExitConfigError
	}

	s, code := openSession(opts)
	if s == nil {
		return code
	}

	res, err := s.Mock.Lookup(ctx, input)
	if err != nil {
		return fail(err)
	}
	if !res.Found {
		out.Notice("no recorded case matches the input")
		return errors.ExitNoMatch
	}

	data, err := json.Marshal(res.Expected)
	if err != nil {
		return fail(errors.Wrap(err, fmt.Sprintf("record %d", res.Index)))
	}
	out.Debug("matched record %d", res.Index)
	out.Println("%s", data)
	return 0
}

// batchLine is one line of batch output.
type batchLine struct {
	Line     int             `json:"line"`
	Found    bool            `json:"found"`
	Index    int             `json:"index"`
	Expected json.RawMessage `json:"expected,omitempty"`
}

func cmdBatch(ctx context.Context, args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printBatchUsage()
		return 0
	}

	concurrency := -1
	source := ""
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case strings.HasPrefix(arg, "--concurrency="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--concurrency="))
			if err != nil || n < 0 {
				out.ErrorPrefix("batch: invalid --concurrency value %q", strings.TrimPrefix(arg, "--concurrency="))
				return errors.ExitConfigError
			}
			concurrency = n
		case arg == "--concurrency":
			out.ErrorPrefix("batch: --concurrency requires a value (--concurrency=<n>)")
			return errors.ExitConfigError
		case arg != "-" && strings.HasPrefix(arg, "-"):
			out.ErrorPrefix("batch: unknown flag: %s", arg)
			return errors.ExitConfigError
		default:
			if source != "" {
				out.ErrorPrefix("batch: unexpected argument: %s", arg)
				return errors.ExitConfigError
			}
			source = arg
		}
	}
	if source == "" {
		out.ErrorPrefix("batch: input file required (path or - for stdin)")
		return errors.ExitConfigError
	}

	var r io.Reader = stdin
	if source != "-" {
		f, err := os.Open(source)
		if err != nil {
			return fail(errors.Environment("batch: cannot open input", err))
		}
		defer f.Close()
		r = f
	}

	inputs, lines, err := readJSONLines(r)
	if err != nil {
		out.ErrorPrefix("batch: %v", err)
		return errors.ExitConfigError
	}

	s, code := openSession(opts)
	if s == nil {
		return code
	}
	if concurrency < 0 {
		concurrency = s.Config.Batch.Concurrency
	}

	results, err := s.Mock.LookupAll(ctx, inputs, concurrency)
	if err != nil {
		return fail(err)
	}

	enc := json.NewEncoder(out.Out())
	enc.SetEscapeHTML(false)
	matched := 0
	for i, res := range results {
		line, err := toBatchLine(lines[i], res)
		if err != nil {
			return fail(errors.Wrap(err, fmt.Sprintf("line %d", lines[i])))
		}
		if res.Found {
			matched++
		}
		if err := enc.Encode(line); err != nil {
			return fail(errors.Wrap(err, "cannot write batch output"))
		}
	}
	out.Debug("%d of %d inputs matched", matched, len(results))
	return 0
}

func toBatchLine(line int, res mock.Result) (batchLine, error) {
	bl := batchLine{Line: line, Found: res.Found, Index: res.Index}
	if res.Found {
		data, err := json.Marshal(res.Expected)
		if err != nil {
			return batchLine{}, err
		}
		bl.Expected = data
	}
	return bl, nil
}

// readJSONLines parses one JSON document per non-blank line and returns the
// values with their 1-based line numbers.
func readJSONLines(r io.Reader) ([]value.Value, []int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxInputLine)

	var inputs []value.Value
	var lines []int
	n := 0
	for sc.Scan() {
		n++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		v, err := value.ParseJSON(text)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: invalid JSON: %w", n, err)
		}
		inputs = append(inputs, v)
		lines = append(lines, n)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	return inputs, lines, nil
}

func cmdExplain(ctx context.Context, args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printExplainUsage()
		return 0
	}
	arg, code := singleInputArg("explain", args)
	if code != 0 {
		return code
	}
	input, err := readInputValue(arg)
	if err != nil {
		out.ErrorPrefix("explain: %v", err)
		return errors.ExitConfigError
	}

	s, code := openSession(opts)
	if s == nil {
		return code
	}

	cat, err := s.Mock.Load(ctx)
	if err != nil {
		return fail(err)
	}

	eps := s.Mock.Tolerance()
	res := mock.Search(cat, input, eps)
	if res.Found {
		rec := cat.Records[res.Index]
		out.Println("match: record %d of %d", res.Index, cat.Len())
		out.SummaryItem("Inputs", rec.Inputs.String())
		out.SummaryItem("Expected", rec.Expected.String())
		return 0
	}

	out.Println("no match among %d records (tolerance %g)", cat.Len(), eps)
	idx := match.NewMatcher(eps).Closest(input, cat.Records)
	if idx < 0 {
		out.SummaryItem("Closest", fmt.Sprintf("none, no record has %s inputs", input.Kind()))
		return errors.ExitNoMatch
	}

	rec := cat.Records[idx]
	_, diff := match.Diff(rec.Inputs, input, eps)
	out.SummaryItem("Closest", fmt.Sprintf("record %d", idx))
	out.SummaryItem("Inputs", rec.Inputs.String())
	out.SummaryItem("Mismatch", diff)
	return errors.ExitNoMatch
}

func printLookupUsage() {
	w := out

	w.HelpTitle("casemock lookup - print the recorded output for an input")

	w.HelpSection("Usage:")
	w.HelpUsage("casemock lookup <json|->")

	w.HelpSection("Description:")
	w.Println("  Finds the first recorded case whose Inputs equal the given JSON")
	w.Println("  document (numbers within the tolerance) and prints its Expected")
	w.Println("  value as JSON. Exits with code 4 when nothing matches.")

	w.HelpSection("Options:")
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthShort)

	w.HelpSection("Examples:")
	w.HelpExample(`casemock lookup '{"x": 1, "y": [1, 2]}'`, "")
	w.HelpExample(`echo '[1, 2]' | casemock lookup -`, "Read the input from stdin")
	w.Println("")
}

func printBatchUsage() {
	w := out

	w.HelpTitle("casemock batch - look up many inputs at once")

	w.HelpSection("Usage:")
	w.HelpUsage("casemock batch [--concurrency=<n>] <file|->")

	w.HelpSection("Description:")
	w.Println("  Reads one JSON document per line and prints one JSON line per input,")
	w.Println("  in input order, with the line number, whether it matched, the record")
	w.Println("  index and the expected value. Blank lines are skipped.")

	w.HelpSection("Options:")
	w.HelpFlag("--concurrency=<n>", "Concurrent lookups (0 = GOMAXPROCS)", helpFlagWidthGlobal)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthGlobal)

	w.HelpSection("Examples:")
	w.HelpExample("casemock batch inputs.jsonl", "")
	w.Println("")
}

func printExplainUsage() {
	w := out

	w.HelpTitle("casemock explain - show why an input does or does not match")

	w.HelpSection("Usage:")
	w.HelpUsage("casemock explain <json|->")

	w.HelpSection("Description:")
	w.Println("  Prints the matching record, or the closest record of the same kind")
	w.Println("  together with the first difference between the two.")

	w.HelpSection("Options:")
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthShort)
	w.Println("")
}
