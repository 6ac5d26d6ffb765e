package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"

	phoneinput "github.com/goliatone/go-phoneinput"
)

// Usage:
//
//	phoneinput type [-country GB] [-policy every] < keystrokes.txt
//	phoneinput countries [-q query] [-dial +44] [-locale de]
//	phoneinput export -format msgpack -out countries.msgpack
//	phoneinput check -cldr ./cldr-core

func init() {
	_ = godotenv.Load() //nolint:errcheck
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logger := newLogger(os.Getenv("PHONEINPUT_LOG_LEVEL"), os.Getenv("PHONEINPUT_LOG_FORMAT"))

	var err error
	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "type":
		err = runType(args, os.Stdin, os.Stdout, logger)
	case "countries":
		err = runCountries(args, os.Stdout)
	case "export":
		err = runExport(args, os.Stdout)
	case "check":
		err = runCheck(args, os.Stdout, logger)
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		reportError(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "phoneinput commands: type | countries | export | check\n")
}

func reportError(err error) {
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "phoneinput: %v\n", err)
	os.Exit(1)
}

func newLogger(level, format string) *slog.Logger {
	var logLevel slog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func loadDirectory(path string) (*phoneinput.Directory, error) {
	if path == "" {
		return phoneinput.DefaultDirectory()
	}
	return phoneinput.NewDirectoryLoader(path).Load()
}

type typeResult struct {
	Display   string                 `json:"display"`
	Event     phoneinput.ChangeEvent `json:"event"`
	Dismissed bool                   `json:"dismissed"`
}

// runType replays stdin lines as successive text-field contents. A line
// ":pick XX" picks a country instead.
func runType(args []string, in io.Reader, out io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("type", flag.ContinueOnError)
	country := fs.String("country", os.Getenv("PHONEINPUT_COUNTRY"), "initial country ISO code")
	locale := fs.String("locale", "", "derive the initial country from a locale such as en-GB")
	dismiss := fs.Bool("dismiss", true, "report dismiss signals on valid input")
	policy := fs.String("policy", "", "dismiss policy: transition or every")
	fallback := fs.String("fallback", "", "local number fallback: selected or initial")
	refine := fs.Bool("refine", false, "refine inferred countries sharing a dial code")
	configPath := fs.String("config", os.Getenv("PHONEINPUT_CONFIG"), "YAML config file")
	directoryPath := fs.String("directory", os.Getenv("PHONEINPUT_DIRECTORY"), "country directory file (yaml, json or msgpack)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var opts []phoneinput.Option

	if *configPath != "" {
		fileCfg, err := phoneinput.LoadConfigFile(*configPath)
		if err != nil {
			return err
		}
		fileOpts, err := fileCfg.Options()
		if err != nil {
			return err
		}
		opts = append(opts, fileOpts...)
	}

	if *directoryPath != "" {
		directory, err := loadDirectory(*directoryPath)
		if err != nil {
			return err
		}
		opts = append(opts, phoneinput.WithDirectory(directory))
	}

	if *country != "" {
		opts = append(opts, phoneinput.WithInitialCountry(*country))
	}
	if *locale != "" {
		opts = append(opts, phoneinput.WithInitialLocale(*locale))
	}
	if *policy != "" {
		parsed, err := phoneinput.ParseDismissPolicy(*policy)
		if err != nil {
			return err
		}
		opts = append(opts, phoneinput.WithDismissPolicy(parsed))
	}
	if *fallback != "" {
		parsed, err := phoneinput.ParseLocalFallback(*fallback)
		if err != nil {
			return err
		}
		opts = append(opts, phoneinput.WithLocalFallback(parsed))
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dismiss":
			opts = append(opts, phoneinput.WithDismissKeyboard(*dismiss))
		case "refine":
			opts = append(opts, phoneinput.WithRegionRefinement(*refine))
		}
	})

	dismissed := false
	opts = append(opts,
		phoneinput.WithLogger(logger),
		phoneinput.WithDismisser(phoneinput.DismissFunc(func() { dismissed = true })),
	)

	controller, err := phoneinput.NewController(opts...)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		dismissed = false

		var event phoneinput.ChangeEvent
		if code, ok := strings.CutPrefix(line, ":pick "); ok {
			event, err = controller.PickCountry(strings.TrimSpace(code))
			if err != nil {
				logger.Warn("pick failed", slog.String("code", code), slog.Any("error", err))
				continue
			}
		} else {
			event = controller.TextChanged(line)
		}

		if err := enc.Encode(typeResult{
			Display:   controller.Display(),
			Event:     event,
			Dismissed: dismissed,
		}); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func runCountries(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("countries", flag.ContinueOnError)
	query := fs.String("q", "", "search by name, ISO code or dial code")
	dial := fs.String("dial", "", "list every country sharing a dial code")
	locale := fs.String("locale", "", "localize country names")
	limit := fs.Int("limit", 0, "maximum number of results")
	directoryPath := fs.String("directory", os.Getenv("PHONEINPUT_DIRECTORY"), "country directory file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	directory, err := loadDirectory(*directoryPath)
	if err != nil {
		return err
	}

	var records []phoneinput.CountryRecord
	if *dial != "" {
		code := *dial
		if !strings.HasPrefix(code, "+") {
			code = "+" + code
		}
		records = directory.CountriesForDialCode(code)
	} else {
		records = directory.Search(*query, *limit)
	}

	if *limit > 0 && len(records) > *limit {
		records = records[:*limit]
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, record := range records {
		name := record.Name
		if *locale != "" {
			name = directory.DisplayName(record.CountryCode, *locale)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", record.Flag(), record.CountryCode, record.DialCode, name)
	}
	return w.Flush()
}

func runExport(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	format := fs.String("format", phoneinput.FormatYAML, "output format: yaml, json or msgpack")
	outPath := fs.String("out", "", "output file (default stdout)")
	directoryPath := fs.String("directory", os.Getenv("PHONEINPUT_DIRECTORY"), "country directory file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	directory, err := loadDirectory(*directoryPath)
	if err != nil {
		return err
	}

	if *outPath == "" {
		return phoneinput.WriteDirectory(stdout, *format, directory.Records())
	}

	file, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", *outPath, err)
	}

	if err := phoneinput.WriteDirectory(file, *format, directory.Records()); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
