package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lysyi3m/podparse/app/podcast"
	"github.com/mmcdole/gofeed"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format: %s", s)
}

// Converter parses feed documents and encodes the result.
type Converter struct {
	format    Format
	indent    bool
	metaOnly  bool
	outputDir string
}

func NewConverter(format Format, indent, metaOnly bool, outputDir string) *Converter {
	return &Converter{
		format:    format,
		indent:    indent,
		metaOnly:  metaOnly,
		outputDir: outputDir,
	}
}

// Parse runs the engine over one document, adding a hint on what the
// document is when it is not RSS at all.
func (c *Converter) Parse(data []byte) (*podcast.Podcast, error) {
	p, err := podcast.ParseBytes(data,
		podcast.WithEpisodes(!c.metaOnly),
		podcast.WithLogger(slog.Default()))
	if err != nil {
		return nil, Diagnose(data, err)
	}
	return p, nil
}

// Encode writes p to w in the configured format.
func (c *Converter) Encode(w io.Writer, p *podcast.Podcast) error {
	switch c.format {
	case FormatYAML:
		return encodeYAML(w, p)
	default:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if c.indent {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(p)
	}
}

// ConvertFile converts the feed at path and writes the result into the
// output directory. It returns the written path.
func (c *Converter) ConvertFile(path string) (string, *podcast.Podcast, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read feed: %w", err)
	}

	p, err := c.Parse(data)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf, p); err != nil {
		return "", nil, fmt.Errorf("failed to encode result: %w", err)
	}

	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	out := OutputPath(c.outputDir, path, c.format)
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return "", nil, fmt.Errorf("failed to write result: %w", err)
	}

	return out, p, nil
}

// OutputPath maps an input file onto its converted counterpart:
// feeds/show.xml becomes <dir>/show.json.
func OutputPath(dir, input string, format Format) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"."+string(format))
}

// Diagnose adds the detected document type to a missing <rss> error.
func Diagnose(data []byte, err error) error {
	var missing *podcast.MissingElementError
	if !errors.As(err, &missing) || missing.Name != "rss" {
		return err
	}
	return fmt.Errorf("%w (document looks like %s)", err, describeFeedType(data))
}

func describeFeedType(data []byte) string {
	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeAtom:
		return "an Atom feed"
	case gofeed.FeedTypeJSON:
		return "a JSON feed"
	case gofeed.FeedTypeRSS:
		return "an RDF feed"
	}
	return "an unknown document"
}
