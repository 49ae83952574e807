package podcast

import (
	"slices"
	"testing"
)

func titles(records []Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.String("title"))
	}
	return out
}

func TestCompareEpisodesIsStable(t *testing.T) {
	episodes := []Record{
		{"title": "Same", "guid": "a"},
		{"title": "Same", "guid": "b"},
		{"title": "Same", "guid": "c"},
	}
	slices.SortStableFunc(episodes, CompareEpisodes)

	for i, guid := range []string{"a", "b", "c"} {
		if episodes[i].String("guid") != guid {
			t.Errorf("Expected document order to be kept for ties, got: %v", episodes)
		}
	}
}

func TestCompareEpisodesMissingPubDate(t *testing.T) {
	episodes := []Record{
		{"title": "Undated"},
		{"title": "Dated", "pubDate": "2023-01-01T00:00:00.000Z"},
	}
	slices.SortStableFunc(episodes, CompareEpisodes)

	if got := titles(episodes); got[0] != "Dated" {
		t.Errorf("Expected dated episode first, got: %v", got)
	}
}

func TestCompareSerialFallsBackToPubDate(t *testing.T) {
	episodes := []Record{
		{"title": "Older bonus", "pubDate": "2023-01-01T00:00:00.000Z", "season": 1},
		{"title": "S1E1", "pubDate": "2023-02-01T00:00:00.000Z", "season": 1, "episode": 1},
		{"title": "Newer bonus", "pubDate": "2023-03-01T00:00:00.000Z", "season": 1},
	}
	slices.SortStableFunc(episodes, CompareSerial)

	expected := []string{"Newer bonus", "S1E1", "Older bonus"}
	if got := titles(episodes); !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got: %v", expected, got)
	}
}

func TestCompareSerialSeasonsAscending(t *testing.T) {
	episodes := []Record{
		{"title": "S3E1", "season": 3, "episode": 1},
		{"title": "S1E5", "season": 1, "episode": 5},
		{"title": "S2E1", "season": 2, "episode": 1},
		{"title": "S1E2", "season": 1, "episode": 2},
	}
	slices.SortStableFunc(episodes, CompareSerial)

	expected := []string{"S1E2", "S1E5", "S2E1", "S3E1"}
	if got := titles(episodes); !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got: %v", expected, got)
	}
}

func TestCompareTrailers(t *testing.T) {
	trailers := []Trailer{
		{Title: "Garbled", PubDate: "sometime"},
		{Title: "Old", PubDate: "Mon, 04 Jan 2021 08:00:00 GMT"},
		{Title: "New", PubDate: "Tue, 04 Jan 2022 08:00:00 GMT"},
	}
	slices.SortStableFunc(trailers, compareTrailers)

	expected := []string{"New", "Old", "Garbled"}
	for i, title := range expected {
		if trailers[i].Title != title {
			t.Errorf("Expected trailer %d to be '%s', got: %s", i, title, trailers[i].Title)
		}
	}
}
