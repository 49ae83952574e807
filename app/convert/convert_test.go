package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lysyi3m/podparse/app/podcast"
	"gopkg.in/yaml.v3"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Show</title>
    <itunes:explicit>no</itunes:explicit>
    <item>
      <title>Episode 1</title>
      <pubDate>Thu, 06 Dec 2018 17:51:50 +0000</pubDate>
      <enclosure url="https://example.com/ep1.mp3" length="28882931" type="audio/mpeg"/>
      <itunes:duration>39:58</itunes:duration>
    </item>
  </channel>
</rss>`

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("YAML"); err != nil || f != FormatYAML {
		t.Errorf("Expected yaml format, got: %s, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestEncodeJSON(t *testing.T) {
	c := NewConverter(FormatJSON, false, false, "")
	p, err := c.Parse([]byte(testFeed))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf, p); err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	var decoded struct {
		Meta     map[string]any   `json:"meta"`
		Episodes []map[string]any `json:"episodes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if decoded.Meta["title"] != "Test Show" {
		t.Errorf("Expected title 'Test Show', got: %v", decoded.Meta["title"])
	}
	if decoded.Meta["explicit"] != false {
		t.Errorf("Expected explicit false, got: %v", decoded.Meta["explicit"])
	}
	if len(decoded.Episodes) != 1 || decoded.Episodes[0]["duration"] != float64(2398) {
		t.Errorf("Unexpected episodes: %v", decoded.Episodes)
	}
	if strings.Contains(buf.String(), "liveEpisodes") {
		t.Errorf("Expected liveEpisodes to be omitted, got: %s", buf.String())
	}
}

func TestEncodeMetaOnly(t *testing.T) {
	c := NewConverter(FormatJSON, true, true, "")
	p, err := c.Parse([]byte(testFeed))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf, p); err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	if strings.Contains(buf.String(), "episodes") {
		t.Errorf("Expected episodes to be omitted, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "\n  \"meta\"") {
		t.Errorf("Expected indented output, got: %s", buf.String())
	}
}

func TestEncodeYAML(t *testing.T) {
	c := NewConverter(FormatYAML, false, false, "")
	p, err := c.Parse([]byte(testFeed))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf, p); err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "length: 28882931") {
		t.Errorf("Expected integer length without exponent, got: %s", out)
	}
	if !strings.Contains(out, "pubDate: \"2018-12-06T17:51:50.000Z\"") && !strings.Contains(out, "pubDate: 2018-12-06T17:51:50.000Z") {
		t.Errorf("Expected normalized pubDate, got: %s", out)
	}

	var decoded struct {
		Meta     map[string]any   `yaml:"meta"`
		Episodes []map[string]any `yaml:"episodes"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to decode YAML: %v", err)
	}
	if decoded.Meta["title"] != "Test Show" {
		t.Errorf("Expected title 'Test Show', got: %v", decoded.Meta["title"])
	}
	if len(decoded.Episodes) != 1 || decoded.Episodes[0]["duration"] != 2398 {
		t.Errorf("Unexpected episodes: %v", decoded.Episodes)
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "show.rss.xml")
	if err := os.WriteFile(input, []byte(testFeed), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "out")
	c := NewConverter(FormatJSON, false, false, outDir)
	out, p, err := c.ConvertFile(input)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if out != filepath.Join(outDir, "show.rss.json") {
		t.Errorf("Unexpected output path: %s", out)
	}
	if p.Meta.String("title") != "Test Show" {
		t.Errorf("Expected title 'Test Show', got: %s", p.Meta.String("title"))
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Expected output file, got: %v", err)
	}
	if !strings.Contains(string(data), `"title":"Test Show"`) {
		t.Errorf("Unexpected output: %s", data)
	}
}

func TestConvertFileMissing(t *testing.T) {
	c := NewConverter(FormatJSON, false, false, t.TempDir())
	if _, _, err := c.ConvertFile(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Error("Expected error for missing input file")
	}
}

func TestDiagnose(t *testing.T) {
	atom := `<?xml version="1.0" encoding="utf-8"?><feed xmlns="http://www.w3.org/2005/Atom"><title>Example</title></feed>`

	c := NewConverter(FormatJSON, false, false, "")
	_, err := c.Parse([]byte(atom))

	var missing *podcast.MissingElementError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingElementError, got: %v", err)
	}
	if !strings.Contains(err.Error(), "an Atom feed") {
		t.Errorf("Expected Atom hint, got: %v", err)
	}
	if podcast.Kind(err) != "MissingElement" {
		t.Errorf("Expected kind MissingElement, got: %s", podcast.Kind(err))
	}

	_, err = c.Parse([]byte(`<rss><item/></rss>`))
	if strings.Contains(err.Error(), "looks like") {
		t.Errorf("Expected no hint for missing channel, got: %v", err)
	}
}
