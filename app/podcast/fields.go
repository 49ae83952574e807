package podcast

import (
	"cmp"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/beevik/etree"
)

// extractor turns the children matching one field name into a value. It
// returns nil, or any other empty value, when the field is not usable.
type extractor func(nodes []*etree.Element) any

type field struct {
	name    string
	query   string // upper-cased name used for matching
	extract extractor
	// multi marks fields built from every matching node rather than the first.
	multi bool
}

func one(name string, fn extractor) field {
	return field{name: name, query: strings.ToUpper(name), extract: fn}
}

func many(name string, fn extractor) field {
	return field{name: name, query: strings.ToUpper(name), extract: fn, multi: true}
}

// registry is the ordered field table applied to channel, item and liveItem
// elements alike. It is never modified after initialization.
var registry = []field{
	one("title", textField),
	one("description", textField),
	one("subtitle", textField),
	one("language", textField),
	one("author", textField),
	one("summary", textField),
	one("copyright", textField),
	one("managingEditor", textField),
	one("webMaster", textField),
	one("episodeType", textField), // full, trailer or bonus
	one("type", textField),        // episodic or serial
	one("guid", textField),
	one("generator", textField),
	one("countryOfOrigin", textField), // spotify
	one("txt", textField),
	one("limit", extractLimit), // spotify
	one("chapters", extractChapters),
	one("thumbnail", extractThumbnail),
	one("coverart", func(nodes []*etree.Element) any { return getAttribute(nodes, "href") }),
	many("keywords", extractKeywords),
	many("category", extractCategories),
	one("owner", extractOwner),
	one("image", extractImage),
	one("explicit", extractExplicit),
	one("complete", isYes),
	one("blocked", isYes),
	one("isClosedCaptioned", isYes),
	one("duration", extractDuration),
	one("enclosure", extractEnclosure),
	one("content", extractMediaContent),
	one("order", getInteger),
	one("season", getInteger),
	one("episode", getInteger),
	one("ttl", getInteger),
	one("lastBuildDate", dateField),
	one("pubDate", dateField),
	// Omny
	one("clipId", textField),
	// Acast
	one("showId", textField),
	one("showUrl", textField),
	one("episodeUrl", textField),
	one("episodeId", textField),
	one("importedFeed", textField),
	// Acast or BBC
	one("network", extractNetwork),
	// BBC
	one("seriesDetails", extractSeriesDetails),
	// SoundOn
	one("importFeedUrl", textField),
	one("updatedAt", dateField),
	one("createdAt", dateField),
	one("deleted", isYes),
	one("exclusive", textField),
	one("facebookUrl", textField),
	one("youtubeUrl", textField),
	one("instagramUrl", textField),
	// RadioPublic
	many("cta", extractCTAs),
	// Pingback
	one("receiver", textField),
	// GeoRSS
	one("lat", getFloat),
	one("long", getFloat),
	one("point", extractPoint),
	// Podcast 2.0
	one("locked", isYes),
	one("location", extractLocation),
	many("soundbite", extractSoundbites),
	many("person", extractPeople),
	many("transcript", extractTranscripts),
	many("funding", extractFunding),
	one("id", extractHostID),
	one("license", extractLicense),
	one("medium", extractMedium),
	one("gateway", extractGateway),
	one("images", extractImages),
	many("alternateEnclosure", extractAlternateEnclosures),
	many("trailer", extractTrailers),
	many("value", extractValues),
	many("contentLink", extractContentLinks),
	many("socialInteract", extractSocialInteracts),
	one("podping", extractPodping),
}

func textField(nodes []*etree.Element) any {
	return getText(nodes)
}

func dateField(nodes []*etree.Element) any {
	return getDate(nodes)
}

// isEmptyValue reports values that must not appear in a record.
func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case float64:
		return math.IsNaN(val)
	case int, bool:
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Struct:
		return rv.IsZero()
	}
	return false
}

// truthy is the token set accepted for boolean attributes such as fee.
func truthy(value string) bool {
	switch value {
	case "TRUE", "true", "1":
		return true
	}
	return false
}

func childText(node *etree.Element, name string) string {
	if child := findNode(node, name); child != nil {
		return textOf(child)
	}
	return ""
}

func sortedUnique(values []string) []string {
	slices.Sort(values)
	return slices.Compact(values)
}

func extractLimit(nodes []*etree.Element) any {
	if len(nodes) == 0 {
		return nil
	}
	if n := parseIntAttr(nodes[0], "recentCount"); n != nil {
		return *n
	}
	return nil
}

// extractChapters handles both PodLove inline chapters and Podcast 2.0
// references to an external chapters file.
func extractChapters(nodes []*etree.Element) any {
	if len(nodes) == 0 {
		return nil
	}
	node := nodes[0]

	if len(node.ChildElements()) > 0 {
		var chapters []Chapter
		for _, ch := range findNodesLike(node, "chapter") {
			chapters = append(chapters, Chapter{
				Start: attrOf(ch, "start"),
				Title: attrOf(ch, "title"),
				Href:  attrOf(ch, "href"),
				Image: attrOf(ch, "image"),
			})
		}
		return chapters
	}

	url := attrOf(node, "url")
	typ := attrOf(node, "type")
	if url == "" || typ == "" {
		return nil
	}
	return ChaptersFile{URL: url, Type: typ}
}

func extractThumbnail(nodes []*etree.Element) any {
	return cmp.Or(getAttribute(nodes, "url"), getAttribute(nodes, "href"))
}

func extractKeywords(nodes []*etree.Element) any {
	var keywords []string
	for _, node := range nodes {
		for _, keyword := range strings.Split(textOf(node), ",") {
			if keyword = strings.TrimSpace(keyword); keyword != "" {
				keywords = append(keywords, keyword)
			}
		}
	}
	return sortedUnique(keywords)
}

func extractCategories(nodes []*etree.Element) any {
	var categories []string
	for _, node := range nodes {
		category := attrOf(node, "text")
		if category == "" {
			continue
		}
		if sub := getAttribute(findNodesLike(node, "category"), "text"); sub != "" {
			category += " > " + sub
		}
		categories = append(categories, category)
	}
	return sortedUnique(categories)
}

func extractOwner(nodes []*etree.Element) any {
	if len(nodes) == 0 || len(nodes[0].ChildElements()) == 0 {
		return nil
	}
	return Owner{
		Name:  getText(findNodesLike(nodes[0], "name")),
		Email: getText(findNodesLike(nodes[0], "email")),
	}
}

func extractImage(nodes []*etree.Element) any {
	if len(nodes) == 0 {
		return nil
	}
	node := nodes[0]

	// <image><url>http://cdn.example.org/logo.png</url></image>
	if url := findNode(node, "url"); url != nil {
		return Image{
			URL:   textOf(url),
			Link:  childText(node, "link"),
			Title: childText(node, "title"),
		}
	}

	// <itunes:image href="http://cdn.example.org/logo.png"/>
	if href := attrOf(node, "href"); href != "" {
		return Image{URL: href}
	}

	// <image>http://cdn.example.org/logo.png</image>
	return Image{URL: textOf(node)}
}

func extractExplicit(nodes []*etree.Element) any {
	switch strings.ToLower(getText(nodes)) {
	case "yes", "explicit", "true":
		return true
	case "clean", "no", "false":
		return false
	}
	return nil
}

// extractDuration normalizes "H:MM:SS", "MM:SS" and plain seconds to whole
// seconds.
func extractDuration(nodes []*etree.Element) any {
	text := getText(nodes)
	if text == "" {
		return nil
	}

	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return nil
	}

	var total float64
	for _, part := range parts {
		var v float64
		if part = strings.TrimSpace(part); part != "" {
			f, ok := parseFinite(part)
			if !ok {
				return nil
			}
			v = f
		}
		total = total*60 + v
	}

	// float64(math.MaxInt64) rounds up to 2^63, which int cannot hold.
	if math.IsNaN(total) || total < math.MinInt64 || total >= math.MaxInt64 {
		return nil
	}
	return int(total)
}

func extractEnclosure(nodes []*etree.Element) any {
	if len(nodes) == 0 {
		return nil
	}
	node := nodes[0]
	url := attrOf(node, "url")
	if url == "" {
		return nil
	}
	return Enclosure{
		URL:    url,
		Type:   attrOf(node, "type"),
		Length: parseInt64Attr(node, "length"),
	}
}

func extractMediaContent(nodes []*etree.Element) any {
	if len(nodes) == 0 {
		return nil
	}
	node := nodes[0]
	url := attrOf(node, "url")
	if url == "" {
		return nil
	}
	return MediaContent{
		URL:      url,
		Type:     attrOf(node, "type"),
		FileSize: parseInt64Attr(node, "fileSize"),
	}
}

func extractNetwork(nodes []*etree.Element) any {
	if len(nodes) == 0 {
		return nil
	}
	node := nodes[0]
	name := cmp.Or(attrOf(node, "name"), textOf(node))
	if name == "" {
		return nil
	}
	return Network{
		Name: name,
		Slug: attrOf(node, "slug"),
		ID:   attrOf(node, "id"),
	}
}

func extractSeriesDetails(nodes []*etree.Element) any {
	if len(nodes) == 0 {
		return nil
	}
	return SeriesDetails{
		Frequency: attrOf(nodes[0], "frequency"),
		DaysLive:  parseIntAttr(nodes[0], "daysLive"),
	}
}

func extractCTAs(nodes []*etree.Element) any {
	var ctas []CTA
	for _, node := range nodes {
		cta := CTA{
			Headline: attrOf(node, "headline"),
			Subtitle: attrOf(node, "subtitle"),
		}
		if cta.Headline == "" && cta.Subtitle == "" {
			continue
		}
		for _, action := range findNodesLike(node, "action") {
			a := CTAAction{
				Class:       attrOf(action, "class"),
				Disposition: attrOf(action, "disposition"),
				Href:        attrOf(action, "href"),
				Label:       attrOf(action, "label"),
			}
			if a != (CTAAction{}) {
				cta.Actions = append(cta.Actions, a)
			}
		}
		ctas = append(ctas, cta)
	}
	return ctas
}

// extractPoint parses a GeoRSS point such as "45.256 -71.92".
func extractPoint(nodes []*etree.Element) any {
	text := getText(nodes)
	if text == "" {
		return nil
	}
	var coords []float64
	for _, s := range strings.Fields(text) {
		f, ok := parseFinite(s)
		if !ok {
			return nil
		}
		coords = append(coords, f)
	}
	return coords
}

func extractLocation(nodes []*etree.Element) any {
	if len(nodes) == 0 {
		return nil
	}
	node := nodes[0]
	loc := Location{
		Name:    textOf(node),
		OSM:     attrOf(node, "osm"),
		Rel:     attrOf(node, "rel"),
		Country: attrOf(node, "country"),
	}
	if geo, ok := strings.CutPrefix(attrOf(node, "geo"), "geo:"); ok {
		loc.Geo = parseGeoURI(geo)
	}
	return loc
}

// parseGeoURI reads "lat,lon" out of the body of an RFC 5870 geo: URI,
// ignoring altitude and parameters.
func parseGeoURI(geo string) []float64 {
	coords, _, _ := strings.Cut(geo, ";")
	parts := strings.Split(coords, ",")
	if len(parts) < 2 {
		return nil
	}
	lat, ok := parseFinite(parts[0])
	if !ok {
		return nil
	}
	lon, ok := parseFinite(parts[1])
	if !ok {
		return nil
	}
	return []float64{lat, lon}
}

func extractSoundbites(nodes []*etree.Element) any {
	var soundbites []Soundbite
	for _, node := range nodes {
		start := parseFloatAttr(node, "startTime")
		duration := parseFloatAttr(node, "duration")
		if start == nil || duration == nil {
			continue
		}
		soundbites = append(soundbites, Soundbite{
			Name:      textOf(node),
			StartTime: *start,
			Duration:  *duration,
		})
	}
	return soundbites
}

func extractPeople(nodes []*etree.Element) any {
	var people []Person
	for _, node := range nodes {
		name := textOf(node)
		if name == "" {
			continue
		}
		people = append(people, Person{
			Name:  name,
			Role:  cmp.Or(attrOf(node, "role"), "host"),
			Group: cmp.Or(attrOf(node, "group"), "cast"),
			Img:   attrOf(node, "img"),
			Href:  attrOf(node, "href"),
		})
	}
	return people
}

func extractTranscripts(nodes []*etree.Element) any {
	var transcripts []Transcript
	for _, node := range nodes {
		t := Transcript{
			URL:      attrOf(node, "url"),
			Type:     attrOf(node, "type"),
			Language: attrOf(node, "language"),
			Rel:      attrOf(node, "rel"),
		}
		if t.URL == "" || t.Type == "" {
			continue
		}
		transcripts = append(transcripts, t)
	}
	return transcripts
}

func extractFunding(nodes []*etree.Element) any {
	var funding []Funding
	for _, node := range nodes {
		f := Funding{Name: textOf(node), URL: attrOf(node, "url")}
		if f.Name == "" || f.URL == "" {
			continue
		}
		funding = append(funding, f)
	}
	return funding
}

// extractHostID reads <podcast:id>. Platform slugs are listed in the
// namespace's serviceslugs.txt.
func extractHostID(nodes []*etree.Element) any {
	if len(nodes) == 0 {
		return nil
	}
	node := nodes[0]
	id := HostID{
		Platform: attrOf(node, "platform"),
		ID:       attrOf(node, "id"),
		URL:      attrOf(node, "url"),
	}
	if id.Platform == "" || id.ID == "" {
		return nil
	}
	return id
}

func extractLicense(nodes []*etree.Element) any {
	if len(nodes) == 0 {
		return nil
	}
	return License{Slug: textOf(nodes[0]), URL: attrOf(nodes[0], "url")}
}

func extractMedium(nodes []*etree.Element) any {
	return strings.ToLower(getText(nodes))
}

func extractGateway(nodes []*etree.Element) any {
	text := getText(nodes)
	if text == "" {
		return nil
	}
	return Gateway{Text: text, Order: parseIntAttr(nodes[0], "order")}
}

var srcsetSeparator = regexp.MustCompile(`,\s*`)

func extractImages(nodes []*etree.Element) any {
	srcset := getAttribute(nodes, "srcset")
	if strings.TrimSpace(srcset) == "" {
		return nil
	}
	return Images{Srcset: srcsetSeparator.ReplaceAllString(srcset, ",\n")}
}

func extractAlternateEnclosures(nodes []*etree.Element) any {
	var enclosures []AlternateEnclosure
	for _, node := range nodes {
		typ := attrOf(node, "type")
		length, ok := parseLeadingInt(attrOf(node, "length"))
		if typ == "" || !ok {
			continue
		}

		enc := AlternateEnclosure{
			Type:    typ,
			Length:  int64(length),
			Bitrate: parseIntAttr(node, "bitrate"),
			Height:  parseIntAttr(node, "height"),
			Lang:    attrOf(node, "lang"),
			Title:   attrOf(node, "title"),
			Rel:     attrOf(node, "rel"),
			Codecs:  attrOf(node, "codecs"),
		}
		switch attrOf(node, "default") {
		case "TRUE", "true":
			enc.Default = true
		}

		for _, src := range findNodesLike(node, "source") {
			s := AlternateEnclosureSource{
				URI:         attrOf(src, "uri"),
				ContentType: attrOf(src, "contentType"),
			}
			if s != (AlternateEnclosureSource{}) {
				enc.Source = append(enc.Source, s)
			}
		}
		for _, integrity := range findNodesLike(node, "integrity") {
			i := AlternateEnclosureIntegrity{
				Type:  attrOf(integrity, "type"),
				Value: attrOf(integrity, "value"),
			}
			if i != (AlternateEnclosureIntegrity{}) {
				enc.Integrity = append(enc.Integrity, i)
			}
		}

		enclosures = append(enclosures, enc)
	}
	return enclosures
}

func extractTrailers(nodes []*etree.Element) any {
	var trailers []Trailer
	for _, node := range nodes {
		t := Trailer{
			Title:   textOf(node),
			URL:     attrOf(node, "url"),
			PubDate: attrOf(node, "pubdate"),
			Length:  parseInt64Attr(node, "length"),
			Type:    attrOf(node, "type"),
			Season:  parseIntAttr(node, "season"),
		}
		if t.URL == "" || t.PubDate == "" {
			continue
		}
		trailers = append(trailers, t)
	}
	slices.SortStableFunc(trailers, compareTrailers)
	return trailers
}

func extractValues(nodes []*etree.Element) any {
	var values []Value
	for _, node := range nodes {
		v := Value{
			Type:      attrOf(node, "type"),
			Method:    attrOf(node, "method"),
			Suggested: parseFloatAttr(node, "suggested"),
		}
		for _, r := range findNodesLike(node, "valueRecipient") {
			recipient := ValueRecipient{
				Name:        attrOf(r, "name"),
				Type:        attrOf(r, "type"),
				Address:     attrOf(r, "address"),
				CustomKey:   attrOf(r, "customKey"),
				CustomValue: attrOf(r, "customValue"),
				Split:       parseFloatAttr(r, "split"),
				Fee:         truthy(attrOf(r, "fee")),
			}
			if recipient.Type == "" || recipient.Address == "" {
				continue
			}
			v.Recipients = append(v.Recipients, recipient)
		}
		if v.Type == "" || v.Method == "" || len(v.Recipients) == 0 {
			continue
		}
		values = append(values, v)
	}
	return values
}

func extractContentLinks(nodes []*etree.Element) any {
	var links []ContentLink
	for _, node := range nodes {
		l := ContentLink{Text: textOf(node), Href: attrOf(node, "href")}
		if l.Text == "" || l.Href == "" {
			continue
		}
		links = append(links, l)
	}
	return links
}

func extractSocialInteracts(nodes []*etree.Element) any {
	var interacts []SocialInteract
	for _, node := range nodes {
		s := SocialInteract{
			URI:        attrOf(node, "uri"),
			Protocol:   attrOf(node, "protocol"),
			AccountID:  attrOf(node, "accountId"),
			AccountURL: attrOf(node, "accountUrl"),
			Priority:   parseIntAttr(node, "priority"),
		}
		if s.URI == "" || s.Protocol == "" {
			continue
		}
		interacts = append(interacts, s)
	}
	return interacts
}

func extractPodping(nodes []*etree.Element) any {
	switch strings.ToLower(getAttribute(nodes, "usesPodping")) {
	case "true":
		return true
	case "false":
		return false
	}
	return nil
}
