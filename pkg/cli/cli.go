// Package cli implements the bgone command-line front end: flag parsing,
// output-path resolution, and the single-shot pipeline invocation. Unlike
// the REPL this package grew out of, bgone is a one-shot flag-driven tool:
// parse arguments, run the pipeline once, exit.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	bgone "github.com/Fepozopo/bgone"
	"github.com/Fepozopo/bgone/pkg/bgcolor"
	"github.com/Fepozopo/bgone/pkg/bgdetect"
	"github.com/Fepozopo/bgone/pkg/semver"
)

var log = logrus.New()

func encodePNGBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type parsedArgs struct {
	input      string
	output     string
	background string
	foreground []string
	strict     bool
	threshold  *float32
	trim       bool
	detectOnly bool
	verbose    bool
	version    bool
	update     bool
	envFile    string
}

func usage() {
	fmt.Println("Usage: bgone [flags] <input> [output]")
	fmt.Println("Flags:")
	fmt.Println("  -b, --bg <hex>          declared background color (default: auto-detected)")
	fmt.Println("  -f, --fg <hex|auto>     declared foreground/basis color; repeatable")
	fmt.Println("  -s, --strict            require every pixel to be expressed via the basis")
	fmt.Println("  -t, --threshold <float> basis-proximity threshold (default 0.05)")
	fmt.Println("      --trim              crop output to the non-transparent bounding box")
	fmt.Println("      --detect            print the detected background hex and exit")
	fmt.Println("      --env-file <path>   load environment overrides from a dotenv file")
	fmt.Println("  -v, --verbose           raise log verbosity")
	fmt.Println("      --version           print version information and exit")
	fmt.Println("      --update            check GitHub for a newer release")
}

func parseArgs(args []string) (parsedArgs, error) {
	var p parsedArgs
	var positional []string

	for i := 0; i < len(args); i++ {
		a := args[i]
		next := func() (string, error) {
			i++
			if i >= len(args) {
				return "", fmt.Errorf("flag %s requires a value", a)
			}
			return args[i], nil
		}
		switch a {
		case "-b", "--bg":
			v, err := next()
			if err != nil {
				return p, err
			}
			p.background = v
		case "-f", "--fg":
			v, err := next()
			if err != nil {
				return p, err
			}
			p.foreground = append(p.foreground, v)
		case "-s", "--strict":
			p.strict = true
		case "-t", "--threshold":
			v, err := next()
			if err != nil {
				return p, err
			}
			f, err := strconv.ParseFloat(v, 32)
			if err != nil {
				return p, fmt.Errorf("invalid --threshold %q: %w", v, err)
			}
			f32 := float32(f)
			p.threshold = &f32
		case "--trim":
			p.trim = true
		case "--detect":
			p.detectOnly = true
		case "--env-file":
			v, err := next()
			if err != nil {
				return p, err
			}
			p.envFile = v
		case "-v", "--verbose":
			p.verbose = true
		case "--version":
			p.version = true
		case "--update":
			p.update = true
		default:
			if strings.HasPrefix(a, "-") {
				return p, fmt.Errorf("unknown flag %s", a)
			}
			positional = append(positional, a)
		}
	}

	switch len(positional) {
	case 1:
		p.input = positional[0]
	case 2:
		p.input = positional[0]
		p.output = positional[1]
	}
	return p, nil
}

// Run parses args (excluding the program name), executes the requested
// operation, and returns the process exit code. All user-facing output on
// success goes to stdout; the single required failure line goes to stderr
// as "Error: <message>".
func Run(args []string) int {
	p, err := parseArgs(args)
	if err != nil {
		return fail(err)
	}

	if p.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if p.envFile != "" {
		if err := LoadEnvFile(p.envFile); err != nil {
			return fail(fmt.Errorf("loading env file: %w", err))
		}
	}

	if p.version {
		printVersion()
		return 0
	}
	if p.update {
		if err := CheckForUpdates(); err != nil {
			return fail(err)
		}
		return 0
	}

	if p.input == "" {
		usage()
		return fail(fmt.Errorf("missing required <input>"))
	}

	img, err := LoadImage(p.input)
	if err != nil {
		return fail(fmt.Errorf("loading %s: %w", p.input, err))
	}
	if p.verbose {
		fmt.Println(GetImageInfo(img))
	}

	if p.detectOnly {
		bg, err := bgdetect.DetectBackground(img)
		if err != nil {
			return fail(err)
		}
		fmt.Println(bgcolor.ToHex(bg))
		if p.verbose && PreviewSupported() {
			swatch := bgcolor.Swatch(bg, "", 24)
			if err := PreviewImage(swatch, "png"); err != nil {
				log.WithError(err).Debug("terminal preview failed")
			}
		}
		return 0
	}

	opts, err := buildOptions(p)
	if err != nil {
		return fail(err)
	}

	data, err := runPipeline(img, opts)
	if err != nil {
		return fail(err)
	}

	out := p.output
	if out == "" {
		out = ResolveOutputPath(p.input)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fail(fmt.Errorf("writing %s: %w", out, err))
	}
	fmt.Println(out)
	return 0
}

// runPipeline re-encodes img to PNG bytes and runs it through bgone.Process.
func runPipeline(img image.Image, opts pipelineOptions) ([]byte, error) {
	input, err := encodePNGBytes(img)
	if err != nil {
		return nil, err
	}
	return bgone.Process(context.Background(), bgone.Options{
		Input:      input,
		Background: opts.background,
		Foreground: opts.foreground,
		Strict:     opts.strict,
		Threshold:  opts.threshold,
		Trim:       opts.trim,
	})
}

type pipelineOptions struct {
	background *bgcolor.RGB
	foreground []bgcolor.BasisSlot
	strict     bool
	threshold  *float32
	trim       bool
}

func buildOptions(p parsedArgs) (pipelineOptions, error) {
	var opts pipelineOptions
	opts.strict = p.strict
	opts.threshold = p.threshold
	opts.trim = p.trim

	if p.background != "" {
		c, err := bgcolor.ParseColor(p.background)
		if err != nil {
			return opts, err
		}
		opts.background = &c
	}

	for _, raw := range p.foreground {
		if strings.EqualFold(raw, "auto") {
			opts.foreground = append(opts.foreground, bgcolor.BasisSlot{Auto: true})
			continue
		}
		c, err := bgcolor.ParseColor(raw)
		if err != nil {
			return opts, err
		}
		opts.foreground = append(opts.foreground, bgcolor.BasisSlot{RGB: c})
	}
	return opts, nil
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

func printVersion() {
	v, err := semver.Parse(Version)
	if err != nil {
		fmt.Println(Version)
		return
	}
	fmt.Println(v.String())
}
