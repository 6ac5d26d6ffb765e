package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	cldr "golang.org/x/text/unicode/cldr"

	phoneinput "github.com/goliatone/go-phoneinput"
)

type dialCodeMismatch struct {
	CountryCode string
	DialCode    string
	CLDR        []string
}

// runCheck compares directory dial codes against the CLDR telephone code data.
func runCheck(args []string, out io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	cldrPath := fs.String("cldr", os.Getenv("CLDR_CORE_DIR"), "path to CLDR core data directory (expects supplemental/)")
	directoryPath := fs.String("directory", os.Getenv("PHONEINPUT_DIRECTORY"), "country directory file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *cldrPath == "" {
		return fmt.Errorf("missing CLDR data directory (set -cldr or CLDR_CORE_DIR)")
	}

	directory, err := loadDirectory(*directoryPath)
	if err != nil {
		return err
	}

	codes, err := loadTelephoneCodes(*cldrPath)
	if err != nil {
		return err
	}
	logger.Debug("loaded CLDR telephone codes", slog.Int("territories", len(codes)))

	mismatches, missing := compareDialCodes(directory.Records(), codes)
	for _, m := range mismatches {
		fmt.Fprintf(out, "%s\t%s\tcldr=%s\n", m.CountryCode, m.DialCode, strings.Join(m.CLDR, ","))
	}
	for _, code := range missing {
		fmt.Fprintf(out, "%s\tmissing from CLDR\n", code)
	}

	if len(mismatches) > 0 {
		return fmt.Errorf("%d dial codes disagree with CLDR", len(mismatches))
	}
	return nil
}

func loadTelephoneCodes(path string) (map[string][]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetSectionFilter("supplemental")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}

	supplemental := data.Supplemental()
	if supplemental == nil || supplemental.TelephoneCodeData == nil {
		return nil, fmt.Errorf("CLDR data has no telephone code data")
	}

	codes := make(map[string][]string)
	for _, entry := range supplemental.TelephoneCodeData.CodesByTerritory {
		if entry == nil {
			continue
		}
		territory := strings.ToUpper(strings.TrimSpace(entry.Territory))
		for _, code := range entry.TelephoneCountryCode {
			if code == nil || strings.TrimSpace(code.Code) == "" {
				continue
			}
			codes[territory] = append(codes[territory], strings.TrimSpace(code.Code))
		}
	}
	return codes, nil
}

// compareDialCodes reports records whose dial digits do not start with any
// CLDR calling code of their territory. NANP entries such as "+1242" agree
// with CLDR "1".
func compareDialCodes(records []phoneinput.CountryRecord, codes map[string][]string) ([]dialCodeMismatch, []string) {
	var (
		mismatches []dialCodeMismatch
		missing    []string
	)

	for _, record := range records {
		known, ok := codes[record.CountryCode]
		if !ok {
			missing = append(missing, record.CountryCode)
			continue
		}

		digits := record.DialDigits()
		agrees := false
		for _, code := range known {
			if strings.HasPrefix(digits, code) {
				agrees = true
				break
			}
		}
		if !agrees {
			mismatches = append(mismatches, dialCodeMismatch{
				CountryCode: record.CountryCode,
				DialCode:    record.DialCode,
				CLDR:        known,
			})
		}
	}
	return mismatches, missing
}
