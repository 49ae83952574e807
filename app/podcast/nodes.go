package podcast

import (
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// findNode returns the first direct child named exactly name.
func findNode(node *etree.Element, name string) *etree.Element {
	for _, child := range node.ChildElements() {
		if child.FullTag() == name {
			return child
		}
	}
	return nil
}

// findNodeOrFail is findNode for structural elements the feed cannot do without.
func findNodeOrFail(node *etree.Element, name string) (*etree.Element, error) {
	child := findNode(node, name)
	if child == nil {
		return nil, &MissingElementError{Name: name}
	}
	return child, nil
}

// findAllNodes returns every direct child named exactly name.
func findAllNodes(node *etree.Element, name string) []*etree.Element {
	var nodes []*etree.Element
	for _, child := range node.ChildElements() {
		if child.FullTag() == name {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

// findNodesLike returns direct children whose name matches name regardless
// of namespace prefix: "image" matches image, itunes:image and image:foo.
func findNodesLike(node *etree.Element, name string) []*etree.Element {
	query := strings.ToUpper(name)
	var nodes []*etree.Element
	for _, child := range node.ChildElements() {
		if nodeNameLike(strings.ToUpper(child.FullTag()), query) {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

func nodeNameLike(name, query string) bool {
	return name == query ||
		strings.HasPrefix(name, query+":") ||
		strings.HasSuffix(name, ":"+query)
}

// textOf returns the trimmed first run of character data of el. Adjacent
// text and CDATA tokens form a single run; comments inside it are skipped.
func textOf(el *etree.Element) string {
	var b strings.Builder
	found := false
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			found = true
			b.WriteString(t.Data)
		case *etree.Comment:
		default:
			if found {
				return strings.TrimSpace(b.String())
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func getText(nodes []*etree.Element) string {
	if len(nodes) == 0 {
		return ""
	}
	return textOf(nodes[0])
}

func attrOf(el *etree.Element, name string) string {
	for _, attr := range el.Attr {
		if attr.FullKey() == name {
			return attr.Value
		}
	}
	return ""
}

func getAttribute(nodes []*etree.Element, name string) string {
	if len(nodes) == 0 {
		return ""
	}
	return attrOf(nodes[0], name)
}

// getDate normalizes the text of the first node to ISO8601, passing
// unparseable text through untouched.
func getDate(nodes []*etree.Element) string {
	return normalizeDate(getText(nodes))
}

func getInteger(nodes []*etree.Element) any {
	if n, ok := parseLeadingInt(getText(nodes)); ok {
		return n
	}
	return nil
}

func getFloat(nodes []*etree.Element) any {
	if f, ok := parseLeadingFloat(getText(nodes)); ok {
		return f
	}
	return nil
}

func isYes(nodes []*etree.Element) any {
	text := getText(nodes)
	if text == "" {
		return nil
	}
	return strings.ToLower(text) == "yes"
}

// parseLeadingInt parses the base-10 integer prefix of s, so "12abc" is 12.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseLeadingFloat parses the decimal prefix of s, so "73.0s" is 73.
func parseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	mantissa := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		mantissa++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			mantissa++
		}
	}
	if mantissa == 0 {
		return 0, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '-' || s[exp] == '+') {
			exp++
		}
		start := exp
		for exp < len(s) && s[exp] >= '0' && s[exp] <= '9' {
			exp++
		}
		if exp > start {
			end = exp
		}
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseFinite parses the whole of s as a float, refusing NaN and infinities.
func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseIntAttr(el *etree.Element, name string) *int {
	if n, ok := parseLeadingInt(attrOf(el, name)); ok {
		return &n
	}
	return nil
}

func parseInt64Attr(el *etree.Element, name string) *int64 {
	if n, ok := parseLeadingInt(attrOf(el, name)); ok {
		v := int64(n)
		return &v
	}
	return nil
}

func parseFloatAttr(el *etree.Element, name string) *float64 {
	if f, ok := parseLeadingFloat(attrOf(el, name)); ok {
		return &f
	}
	return nil
}
