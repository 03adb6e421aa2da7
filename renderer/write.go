package renderer

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/etnz/fundnav"
)

// Output file names.
const (
	CurrencyIRRsFile = "currency_irrs.csv"
	FundIRRFile      = "fund_irr.csv"
	TradesCSVFile    = "fx_forward_trades.csv"
	TradesJSONLFile  = "fx_forward_trades.jsonl"
	MarkdownFile     = "report.md"
	HTMLFile         = "report.html"
)

// NAVScheduleFile returns the file name of the NAV schedule of 'currency'.
func NAVScheduleFile(currency string) string { return fmt.Sprintf("nav_schedule_%s.csv", currency) }

// Formats selects the groups of files written.
type Formats struct {
	CSV      bool
	JSONL    bool
	Markdown bool
	HTML     bool
}

// AllFormats writes every file.
var AllFormats = Formats{CSV: true, JSONL: true, Markdown: true, HTML: true}

// ParseFormats parses a comma separated list of format names. An empty list
// means all formats.
func ParseFormats(list string) (Formats, error) {
	var f Formats
	if strings.TrimSpace(list) == "" {
		return AllFormats, nil
	}
	for _, name := range strings.Split(list, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "csv":
			f.CSV = true
		case "jsonl":
			f.JSONL = true
		case "markdown", "md":
			f.Markdown = true
		case "html":
			f.HTML = true
		case "all":
			f = AllFormats
		case "":
		default:
			return Formats{}, fmt.Errorf("unknown output format %q, want csv, jsonl, markdown or html", name)
		}
	}
	return f, nil
}

// Render returns the content of every selected file, keyed by file name.
func Render(res *fundnav.Result, formats Formats) (map[string][]byte, error) {
	files := make(map[string][]byte)
	render := func(name string, f func(*bytes.Buffer) error) error {
		var buf bytes.Buffer
		if err := f(&buf); err != nil {
			return fmt.Errorf("cannot render %s: %w", name, err)
		}
		files[name] = buf.Bytes()
		return nil
	}

	if formats.CSV {
		if err := render(CurrencyIRRsFile, func(b *bytes.Buffer) error { return CurrencyIRRsCSV(b, res.CurrencyIRRs) }); err != nil {
			return nil, err
		}
		if err := render(FundIRRFile, func(b *bytes.Buffer) error { return FundIRRCSV(b, res.FundName, res.FundIRR) }); err != nil {
			return nil, err
		}
		for _, cur := range slices.Sorted(maps.Keys(res.NAVSchedules)) {
			s := res.NAVSchedules[cur]
			if err := render(NAVScheduleFile(cur), func(b *bytes.Buffer) error { return NAVScheduleCSV(b, s) }); err != nil {
				return nil, err
			}
		}
		if err := render(TradesCSVFile, func(b *bytes.Buffer) error { return TradesCSV(b, res.Trades) }); err != nil {
			return nil, err
		}
	}
	if formats.JSONL {
		if err := render(TradesJSONLFile, func(b *bytes.Buffer) error { return fundnav.EncodeTrades(b, res.Trades) }); err != nil {
			return nil, err
		}
	}
	md := Markdown(res)
	if formats.Markdown {
		files[MarkdownFile] = []byte(md)
	}
	if formats.HTML {
		page, err := HTML("Fund Analytics: "+res.FundName, md)
		if err != nil {
			return nil, err
		}
		files[HTMLFile] = page
	}
	return files, nil
}

// Write renders every selected file, then writes them all in 'dir', creating it
// if needed. It returns the written paths, sorted.
//
// Files are first written in a temporary directory inside 'dir', then moved in
// place. On error, nothing is left in 'dir' but the files it held before.
func Write(dir string, res *fundnav.Result, formats Formats) ([]string, error) {
	files, err := Render(res, formats)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create output directory: %w", err)
	}
	tmp, err := os.MkdirTemp(dir, ".fnav-*")
	if err != nil {
		return nil, fmt.Errorf("cannot create output directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	names := slices.Sorted(maps.Keys(files))
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(tmp, name), files[name], 0o644); err != nil {
			return nil, fmt.Errorf("cannot write %s: %w", name, err)
		}
	}

	var paths []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.Rename(filepath.Join(tmp, name), path); err != nil {
			for _, p := range paths {
				os.Remove(p)
			}
			return nil, fmt.Errorf("cannot write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
