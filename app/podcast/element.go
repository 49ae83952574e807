package podcast

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/beevik/etree"
)

type child struct {
	name string // upper-cased full name
	el   *etree.Element
}

// children indexes the direct child elements of one element so every
// registry field can be matched without re-normalizing names.
type children []child

func indexChildren(el *etree.Element) children {
	elements := el.ChildElements()
	index := make(children, 0, len(elements))
	for _, c := range elements {
		index = append(index, child{name: strings.ToUpper(c.FullTag()), el: c})
	}
	return index
}

func (cs children) like(query string) []*etree.Element {
	var nodes []*etree.Element
	for _, c := range cs {
		if nodeNameLike(c.name, query) {
			nodes = append(nodes, c.el)
		}
	}
	return nodes
}

type elementParser struct {
	log *slog.Logger
}

// parseElement applies the registry to the direct children of el.
func (p *elementParser) parseElement(el *etree.Element) Record {
	index := indexChildren(el)
	record := make(Record)

	for _, f := range registry {
		nodes := index.like(f.query)
		if len(nodes) == 0 {
			continue
		}
		if !f.multi {
			p.reportCollision(el, f.name, nodes)
		}
		if v := f.extract(nodes); !isEmptyValue(v) {
			record[f.name] = v
		}
	}

	// Plain RSS <link>, exact name only so atom:link never shadows it.
	if link := getText(findAllNodes(el, "link")); link != "" {
		record["link"] = link
	}

	return record
}

func (p *elementParser) parseChannel(channel *etree.Element) Record {
	meta := p.parseElement(channel)
	if links := parseLinks(channel); len(links) > 0 {
		meta["links"] = links
	}
	return meta
}

// parseLiveElement parses a liveItem like an item and adds the schedule
// carried on the liveItem's own attributes.
func (p *elementParser) parseLiveElement(el *etree.Element) Record {
	item := p.parseElement(el)
	for _, attr := range []string{"status", "start", "end"} {
		if v := attrOf(el, attr); v != "" {
			item[attr] = v
		}
	}
	return item
}

// reportCollision logs single-valued fields matched under several
// namespace prefixes. Only the first node is used for them.
func (p *elementParser) reportCollision(el *etree.Element, name string, nodes []*etree.Element) {
	if p.log == nil || len(nodes) < 2 {
		return
	}
	var names []string
	for _, node := range nodes {
		names = append(names, node.FullTag())
	}
	slices.Sort(names)
	names = slices.Compact(names)
	if len(names) < 2 {
		return
	}
	p.log.Debug("Field matched several namespaces, using first",
		"element", el.FullTag(),
		"field", name,
		"names", names,
		"used", nodes[0].FullTag())
}

func parseLinks(channel *etree.Element) []Link {
	var links []Link
	for _, node := range findNodesLike(channel, "link") {
		rel := attrOf(node, "rel")
		href := attrOf(node, "href")
		if rel == "" || href == "" {
			continue
		}
		links = append(links, Link{Rel: rel, Href: href, Type: attrOf(node, "type")})
	}
	return links
}

var liveStatuses = []string{"pending", "live", "ended"}

func isValidLiveItem(item Record) bool {
	return slices.Contains(liveStatuses, item.String("status")) &&
		item.String("start") != "" &&
		item.String("end") != ""
}
