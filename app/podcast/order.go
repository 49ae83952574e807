package podcast

import (
	"cmp"
	"strings"
)

// CompareEpisodes orders episodes by explicit order first: episodes that
// carry one precede those that don't, ascending. Everything else is newest
// first, with same-date episodes ordered by title, descending.
func CompareEpisodes(a, b Record) int {
	ao, aok := a.Int("order")
	bo, bok := b.Int("order")
	switch {
	case aok && bok:
		if c := cmp.Compare(ao, bo); c != 0 {
			return c
		}
	case aok:
		return -1
	case bok:
		return 1
	}
	return compareNewestFirst(a, b)
}

// CompareSerial keeps serial shows in season and episode reading order.
// Episodes lacking a season, or an episode number within the same season,
// fall back to the newest first order of CompareEpisodes.
func CompareSerial(a, b Record) int {
	as, aok := a.Int("season")
	bs, bok := b.Int("season")
	if !aok || !bok {
		return compareNewestFirst(a, b)
	}
	if as != bs {
		return cmp.Compare(as, bs)
	}

	ae, aok := a.Int("episode")
	be, bok := b.Int("episode")
	if aok && bok {
		if c := cmp.Compare(ae, be); c != 0 {
			return c
		}
	}
	return compareNewestFirst(a, b)
}

// CompareLive orders valid live items. It matches CompareEpisodes.
func CompareLive(a, b Record) int {
	return CompareEpisodes(a, b)
}

// compareNewestFirst compares normalized pubDate strings, which sort
// chronologically, and breaks ties by title. Both keys descend.
func compareNewestFirst(a, b Record) int {
	if c := strings.Compare(b.String("pubDate"), a.String("pubDate")); c != 0 {
		return c
	}
	return strings.Compare(b.String("title"), a.String("title"))
}

// compareTrailers puts the newest trailer first. Trailer dates are kept as
// published (RFC 2822), so they are parsed for comparison; unparseable
// dates go last.
func compareTrailers(a, b Trailer) int {
	at, aok := parseDate(a.PubDate)
	bt, bok := parseDate(b.PubDate)
	switch {
	case aok && bok:
		if c := bt.Compare(at); c != 0 {
			return c
		}
	case aok:
		return -1
	case bok:
		return 1
	default:
		if c := strings.Compare(b.PubDate, a.PubDate); c != 0 {
			return c
		}
	}
	return strings.Compare(b.Title, a.Title)
}
