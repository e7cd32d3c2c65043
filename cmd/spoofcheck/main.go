package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/stoik/spoofguard/internal/adapters/registryfile"
	"github.com/stoik/spoofguard/internal/config"
	"github.com/stoik/spoofguard/internal/domain/detection"
	"github.com/stoik/spoofguard/internal/formatter"
	"golang.org/x/term"
)

// Exit codes
const (
	exitSafe    = 0
	exitError   = 1
	exitSpoofed = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run checks the text given as arguments, or read from stdin, against a
// safe-domain registry file
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return exitError
	}

	fs := flag.NewFlagSet("spoofcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		registryPath   = fs.String("registry", cfg.Registry.SafeDomainsPath, "Path to the safe-domain registry JSON")
		thresholdsPath = fs.String("thresholds", "", "Path to a YAML threshold override file")
		format         = fs.String("format", "text", "Output format: text or json")
		jsonOut        = fs.Bool("json", false, "Shorthand for -format json")
		noColor        = fs.Bool("no-color", false, "Disable colored output")
		verbose        = fs.Bool("v", false, "Show per-match notes")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: spoofcheck [flags] [text ...]")
		fmt.Fprintln(stderr, "Reads the message from stdin when no text is given. Exits 2 when a spoofed domain is found.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *jsonOut {
		*format = "json"
	}

	out, err := formatter.Get(*format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	thresholds := cfg.Thresholds
	if *thresholdsPath != "" {
		if thresholds, err = config.LoadThresholds(*thresholdsPath); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}

	reg, err := registryfile.Load(*registryPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	text := strings.Join(fs.Args(), " ")
	if text == "" {
		if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			fs.Usage()
			return exitError
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading stdin: %v\n", err)
			return exitError
		}
		text = string(data)
	}

	detector := detection.NewDetector(reg.Domains, detection.WithThresholds(thresholds))
	verdict := detector.Analyze(text)

	rendered, err := out.Format(verdict, formatter.Options{NoColor: *noColor, Verbose: *verbose})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	fmt.Fprintln(stdout, rendered)

	if verdict.IsSpoofed {
		return exitSpoofed
	}
	return exitSafe
}
