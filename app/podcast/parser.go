package podcast

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

const serial = "serial"

type options struct {
	includeEpisodes bool
	log             *slog.Logger
}

type Option func(*options)

// WithEpisodes controls whether items and live items are parsed. They are
// by default.
func WithEpisodes(include bool) Option {
	return func(o *options) {
		o.includeEpisodes = include
	}
}

// WithoutEpisodes limits parsing to the show metadata.
func WithoutEpisodes() Option {
	return WithEpisodes(false)
}

// WithLogger enables debug diagnostics such as namespace collisions.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// Parse converts one RSS podcast feed into a normalized Podcast.
//
// It fails only with *ParseError, *UndefinedEntityError or
// *MissingElementError. Problems confined to a single field drop that field.
func Parse(feed string, opts ...Option) (*Podcast, error) {
	o := options{includeEpisodes: true}
	for _, opt := range opts {
		opt(&o)
	}

	doc, err := readDocument(feed)
	if err != nil {
		return nil, err
	}

	rss, err := findNodeOrFail(&doc.Element, "rss")
	if err != nil {
		return nil, err
	}
	channel, err := findNodeOrFail(rss, "channel")
	if err != nil {
		return nil, err
	}

	p := &elementParser{log: o.log}
	podcast := &Podcast{Meta: p.parseChannel(channel)}

	if !o.includeEpisodes {
		return podcast, nil
	}

	compare := CompareEpisodes
	if strings.EqualFold(podcast.Meta.String("type"), serial) {
		compare = CompareSerial
	}

	items := findAllNodes(channel, "item")
	episodes := make([]Record, 0, len(items))
	for _, item := range items {
		episodes = append(episodes, p.parseElement(item))
	}
	slices.SortStableFunc(episodes, compare)
	podcast.Episodes = episodes

	var live []Record
	for _, item := range findNodesLike(channel, "liveItem") {
		if liveItem := p.parseLiveElement(item); isValidLiveItem(liveItem) {
			live = append(live, liveItem)
		}
	}
	if len(live) > 0 {
		slices.SortStableFunc(live, CompareLive)
		podcast.LiveEpisodes = live
	}

	if o.log != nil {
		o.log.Debug("Parsed feed",
			"title", podcast.Meta.String("title"),
			"serial", strings.EqualFold(podcast.Meta.String("type"), serial),
			"episodes", len(podcast.Episodes),
			"live_episodes", len(podcast.LiveEpisodes))
	}

	return podcast, nil
}

// ParseBytes is Parse for raw document bytes.
func ParseBytes(data []byte, opts ...Option) (*Podcast, error) {
	return Parse(string(data), opts...)
}

// ParseReader reads r to the end and parses it.
func ParseReader(r io.Reader, opts ...Option) (*Podcast, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}
	return ParseBytes(data, opts...)
}

func readDocument(feed string) (*etree.Document, error) {
	feed = strings.TrimSpace(strings.TrimPrefix(feed, "\ufeff"))

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Entity:        entities,
	}
	if err := doc.ReadFromString(feed); err != nil {
		return nil, classifyDecodeError(err)
	}

	if err := checkTopLevel(doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	return doc, nil
}

// checkTopLevel rejects documents without exactly one root element or with
// text outside of it.
func checkTopLevel(doc *etree.Document) error {
	roots := 0
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
			if roots > 1 {
				return fmt.Errorf("extra element <%s> after the root element", t.FullTag())
			}
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				if roots == 0 {
					return errors.New("text content before the root element")
				}
				return errors.New("text content after the root element")
			}
		}
	}
	if roots == 0 {
		return errors.New("document has no root element")
	}
	return nil
}
