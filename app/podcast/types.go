package podcast

import "math"

// Record is a sparse show, episode or live item: only fields that resolved
// to a non-empty value are present.
type Record map[string]any

// String returns the string stored under key, or "".
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns the integer stored under key.
func (r Record) Int(key string) (int, bool) {
	n, ok := r[key].(int)
	return n, ok
}

// Float returns the number stored under key.
func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, !math.IsNaN(v)
	case int:
		return float64(v), true
	}
	return 0, false
}

// Bool returns the flag stored under key.
func (r Record) Bool(key string) (bool, bool) {
	b, ok := r[key].(bool)
	return b, ok
}

// Has reports whether key resolved to a value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Podcast is the result of parsing one feed. Episodes is nil when episodes
// were not requested and empty when the feed has none.
type Podcast struct {
	Meta         Record   `json:"meta"`
	Episodes     []Record `json:"episodes,omitzero"`
	LiveEpisodes []Record `json:"liveEpisodes,omitempty"`
}

type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
	Type string `json:"type,omitempty"`
}

type Owner struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type Image struct {
	URL   string `json:"url,omitempty"`
	Link  string `json:"link,omitempty"`
	Title string `json:"title,omitempty"`
}

type Enclosure struct {
	URL    string `json:"url"`
	Type   string `json:"type,omitempty"`
	Length *int64 `json:"length,omitempty"`
}

// MediaContent is a Media RSS <media:content> reference.
type MediaContent struct {
	URL      string `json:"url"`
	Type     string `json:"type,omitempty"`
	FileSize *int64 `json:"fileSize,omitempty"`
}

// Chapter is one PodLove Simple Chapters entry.
type Chapter struct {
	Start string `json:"start,omitempty"`
	Title string `json:"title,omitempty"`
	Href  string `json:"href,omitempty"`
	Image string `json:"image,omitempty"`
}

// ChaptersFile points at an external Podcast 2.0 chapters document.
type ChaptersFile struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Network is an Acast or BBC network reference.
type Network struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
	ID   string `json:"id,omitempty"`
}

type SeriesDetails struct {
	Frequency string `json:"frequency,omitempty"`
	DaysLive  *int   `json:"daysLive,omitempty"`
}

// CTA is a RadioPublic call to action.
type CTA struct {
	Headline string      `json:"headline,omitempty"`
	Subtitle string      `json:"subtitle,omitempty"`
	Actions  []CTAAction `json:"actions,omitempty"`
}

type CTAAction struct {
	Class       string `json:"class,omitempty"`
	Disposition string `json:"disposition,omitempty"`
	Href        string `json:"href,omitempty"`
	Label       string `json:"label,omitempty"`
}

type Location struct {
	Name    string    `json:"name,omitempty"`
	Geo     []float64 `json:"geo,omitempty"`
	OSM     string    `json:"osm,omitempty"`
	Rel     string    `json:"rel,omitempty"`
	Country string    `json:"country,omitempty"`
}

type Soundbite struct {
	Name      string  `json:"name,omitempty"`
	StartTime float64 `json:"startTime"`
	Duration  float64 `json:"duration"`
}

type Person struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Group string `json:"group"`
	Img   string `json:"img,omitempty"`
	Href  string `json:"href,omitempty"`
}

type Transcript struct {
	URL      string `json:"url"`
	Type     string `json:"type"`
	Language string `json:"language,omitempty"`
	Rel      string `json:"rel,omitempty"`
}

type Funding struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// HostID is a Podcast 2.0 <podcast:id> platform identifier.
type HostID struct {
	Platform string `json:"platform"`
	ID       string `json:"id"`
	URL      string `json:"url,omitempty"`
}

type License struct {
	Slug string `json:"slug,omitempty"`
	URL  string `json:"url,omitempty"`
}

type Gateway struct {
	Text  string `json:"text"`
	Order *int   `json:"order,omitempty"`
}

type Images struct {
	Srcset string `json:"srcset"`
}

type AlternateEnclosure struct {
	Type      string                        `json:"type"`
	Length    int64                         `json:"length"`
	Bitrate   *int                          `json:"bitrate,omitempty"`
	Height    *int                          `json:"height,omitempty"`
	Lang      string                        `json:"lang,omitempty"`
	Title     string                        `json:"title,omitempty"`
	Rel       string                        `json:"rel,omitempty"`
	Codecs    string                        `json:"codecs,omitempty"`
	Default   bool                          `json:"default"`
	Source    []AlternateEnclosureSource    `json:"source,omitempty"`
	Integrity []AlternateEnclosureIntegrity `json:"integrity,omitempty"`
}

type AlternateEnclosureSource struct {
	URI         string `json:"uri,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

type AlternateEnclosureIntegrity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type Trailer struct {
	Title   string `json:"title,omitempty"`
	URL     string `json:"url"`
	PubDate string `json:"pubDate"`
	Length  *int64 `json:"length,omitempty"`
	Type    string `json:"type,omitempty"`
	Season  *int   `json:"season,omitempty"`
}

// Value is a Value4Value payment block.
type Value struct {
	Type       string           `json:"type"`
	Method     string           `json:"method"`
	Suggested  *float64         `json:"suggested,omitempty"`
	Recipients []ValueRecipient `json:"valueRecipient"`
}

type ValueRecipient struct {
	Name        string   `json:"name,omitempty"`
	Type        string   `json:"type"`
	Address     string   `json:"address"`
	CustomKey   string   `json:"customKey,omitempty"`
	CustomValue string   `json:"customValue,omitempty"`
	Split       *float64 `json:"split,omitempty"`
	Fee         bool     `json:"fee"`
}

type ContentLink struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

type SocialInteract struct {
	URI        string `json:"uri"`
	Protocol   string `json:"protocol"`
	AccountID  string `json:"accountId,omitempty"`
	AccountURL string `json:"accountUrl,omitempty"`
	Priority   *int   `json:"priority,omitempty"`
}
