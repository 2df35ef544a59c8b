package matcher

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bitzorro/relstring/internal/match"
)

func intValues(ms *match.Matches, name string) []int {
	var out []int
	for _, m := range ms.Named(name) {
		out = append(out, m.Int())
	}
	return out
}

func strValues(ms *match.Matches, name string) []string {
	var out []string
	for _, m := range ms.Named(name) {
		out = append(out, m.Str())
	}
	return out
}

func TestScanNumbering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		seasons  []int
		episodes []int
		title    string
	}{
		{
			name:     "sxxexx",
			input:    "Show.Name.S02E14.X264.1080p.HDTV",
			seasons:  []int{2},
			episodes: []int{14},
			title:    "Show Name",
		},
		{
			name:     "x shorthand",
			input:    "Show.Name.3x09.HDTV",
			seasons:  []int{3},
			episodes: []int{9},
			title:    "Show Name",
		},
		{
			name:     "episode chain",
			input:    "Show.Name.S02E01E02.720p",
			seasons:  []int{2},
			episodes: []int{1, 2},
			title:    "Show Name",
		},
		{
			name:     "dashed chain endpoints only",
			input:    "Show.Name.S02E01-E04.720p",
			seasons:  []int{2},
			episodes: []int{1, 4},
			title:    "Show Name",
		},
		{
			name:    "season word range endpoints",
			input:   "show name s01-s04",
			seasons: []int{1, 4},
			title:   "show name",
		},
		{
			name:     "spanish cap range",
			input:    "Some.Show.[Cap.203_204].[720p]",
			seasons:  []int{2},
			episodes: []int{3, 4},
			title:    "Some Show",
		},
		{
			name:     "part number",
			input:    "Show.Name.Part.3.720p.HDTV.x264-Group",
			episodes: nil,
			title:    "Show Name",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ms := Scan(tc.input, nil)
			if diff := cmp.Diff(tc.seasons, intValues(ms, "season")); diff != "" {
				t.Errorf("seasons mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.episodes, intValues(ms, "episode")); diff != "" {
				t.Errorf("episodes mismatch (-want +got):\n%s", diff)
			}
			title := ms.FirstNamed("title")
			if title == nil {
				t.Fatal("no title match")
			}
			if got := title.Str(); got != tc.title {
				t.Errorf("title = %q, want %q", got, tc.title)
			}
		})
	}
}

func TestScanEpisodeOf(t *testing.T) {
	t.Parallel()

	ms := Scan("Show.Name.1.of.8.HDTV", nil)
	if diff := cmp.Diff([]int{1}, intValues(ms, "episode")); diff != "" {
		t.Errorf("episodes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{8}, intValues(ms, "episode_count")); diff != "" {
		t.Errorf("episode_count mismatch (-want +got):\n%s", diff)
	}
}

func TestScanWeakDigits(t *testing.T) {
	t.Parallel()

	t.Run("three digit run splits", func(t *testing.T) {
		t.Parallel()
		ms := Scan("Show.Name.102.720p.HDTV", nil)
		if diff := cmp.Diff([]int{1}, intValues(ms, "season")); diff != "" {
			t.Errorf("seasons mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int{2}, intValues(ms, "episode")); diff != "" {
			t.Errorf("episodes mismatch (-want +got):\n%s", diff)
		}
		for _, m := range ms.Named("season") {
			if !m.HasTag(TagWeakDuplicate) {
				t.Errorf("season %v missing weak-duplicate tag", m)
			}
			if m.HasTag(TagAnime) {
				t.Errorf("season %v tagged anime without a bracket prefix", m)
			}
		}
	})

	t.Run("bracket prefix adds anime tag", func(t *testing.T) {
		t.Parallel()
		ms := Scan("[Fansub].Show.Name.-.102.[720p]", nil)
		seasons := ms.Tagged(TagAnime, match.Named("season"))
		if len(seasons) != 1 || seasons[0].Int() != 1 {
			t.Errorf("anime-tagged seasons = %v, want one with value 1", seasons)
		}
	})

	t.Run("letter neighbor blocks the run", func(t *testing.T) {
		t.Parallel()
		ms := Scan("Show.Name.BS666.HDTV", nil)
		if got := intValues(ms, "episode"); got != nil {
			t.Errorf("episodes = %v, want none", got)
		}
		if got := intValues(ms, "season"); got != nil {
			t.Errorf("seasons = %v, want none", got)
		}
	})

	t.Run("claimed version suffix does not block", func(t *testing.T) {
		t.Parallel()
		ms := Scan("Show.Name.102v2.720p", nil)
		if diff := cmp.Diff([]int{2}, intValues(ms, "version")); diff != "" {
			t.Errorf("versions mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int{1}, intValues(ms, "season")); diff != "" {
			t.Errorf("seasons mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int{2}, intValues(ms, "episode")); diff != "" {
			t.Errorf("episodes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("digit range stays in the title", func(t *testing.T) {
		t.Parallel()
		ms := Scan("Show.Name.101-104.HDTV", nil)
		if got := intValues(ms, "episode"); got != nil {
			t.Errorf("episodes = %v, want none", got)
		}
		title := ms.FirstNamed("title")
		if title == nil || title.Str() != "Show Name 101-104" {
			t.Errorf("title = %v, want Show Name 101-104", title)
		}
	})

	t.Run("version needs a digit before the v", func(t *testing.T) {
		t.Parallel()
		ms := Scan("Show.Name.S01E01.TV5.HDTV", nil)
		if got := intValues(ms, "version"); got != nil {
			t.Errorf("versions = %v, want none", got)
		}
	})
}

func TestScanScreenSizes(t *testing.T) {
	t.Parallel()

	t.Run("suffixed", func(t *testing.T) {
		t.Parallel()
		ms := Scan("Show.Name.S06E04.1080i.HDTV", nil)
		if diff := cmp.Diff([]string{"1080i"}, strValues(ms, "screen_size")); diff != "" {
			t.Errorf("screen_size mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("bare size coexists with weak split", func(t *testing.T) {
		t.Parallel()
		ms := Scan("Show.Name.720.HDTV.x264-GRP", nil)
		if diff := cmp.Diff([]string{"720p"}, strValues(ms, "screen_size")); diff != "" {
			t.Errorf("screen_size mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int{7}, intValues(ms, "season")); diff != "" {
			t.Errorf("seasons mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int{20}, intValues(ms, "episode")); diff != "" {
			t.Errorf("episodes mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestScanDates(t *testing.T) {
	t.Parallel()

	ms := Scan("Show.Name.2023.11.24.HDTV", nil)
	date := ms.FirstNamed("date")
	if date == nil {
		t.Fatal("no date match")
	}
	want := time.Date(2023, time.November, 24, 0, 0, 0, 0, time.UTC)
	if got := date.Value.(time.Time); !got.Equal(want) {
		t.Errorf("date = %v, want %v", got, want)
	}
	if title := ms.FirstNamed("title"); title == nil || title.Str() != "Show Name" {
		t.Errorf("title = %v, want Show Name", title)
	}
}

func TestScanReleaseGroups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		group string
	}{
		{"dash tail", "Show.Name.S01E01.720p.HDTV.x264-GROUP", "GROUP"},
		{"dash tail keeps brackets", "Some.Show.S02E14.1080p.HDTV.X264-GROUP[TRASH]", "GROUP[TRASH]"},
		{"dashless after technical", "Show.Name.S06E04.1080i.HDTV.DD5.1.H264.BS666.rartv", "BS666.rartv"},
		{"bracket-only tail skipped", "Show.Name.S01E01.HDTV.[www.site.com]", ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ms := Scan(tc.input, nil)
			rg := ms.FirstNamed("release_group")
			if tc.group == "" {
				if rg != nil {
					t.Fatalf("release_group = %v, want none", rg)
				}
				return
			}
			if rg == nil || rg.Str() != tc.group {
				t.Errorf("release_group = %v, want %q", rg, tc.group)
			}
		})
	}
}

func TestScanTitleCarving(t *testing.T) {
	t.Parallel()

	t.Run("alternative title before numbering", func(t *testing.T) {
		t.Parallel()
		ms := Scan("Show.Name.2019.Alt.Title.S01E01.720p", nil)
		if title := ms.FirstNamed("title"); title == nil || title.Str() != "Show Name" {
			t.Errorf("title = %v, want Show Name", title)
		}
		if diff := cmp.Diff([]string{"Alt Title"}, strValues(ms, "alternative_title")); diff != "" {
			t.Errorf("alternative_title mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int{2019}, intValues(ms, "year")); diff != "" {
			t.Errorf("year mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("episode title after numbering", func(t *testing.T) {
		t.Parallel()
		ms := Scan("Show.Name.S01E01.Episode.Title.720p", nil)
		if diff := cmp.Diff([]string{"Episode Title"}, strValues(ms, "episode_title")); diff != "" {
			t.Errorf("episode_title mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("film title before the film number", func(t *testing.T) {
		t.Parallel()
		ms := Scan("Show.Name.F2.Other.Name.720p", nil)
		if diff := cmp.Diff([]int{2}, intValues(ms, "film")); diff != "" {
			t.Errorf("film mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"Show Name"}, strValues(ms, "film_title")); diff != "" {
			t.Errorf("film_title mismatch (-want +got):\n%s", diff)
		}
		if title := ms.FirstNamed("title"); title == nil || title.Str() != "Other Name" {
			t.Errorf("title = %v, want Other Name", title)
		}
	})

	t.Run("interior number splits title and episode title", func(t *testing.T) {
		t.Parallel()
		ms := Scan("Show.Name.2.The.Big.Show.S01E01.720p", nil)
		if title := ms.FirstNamed("title"); title == nil || title.Str() != "Show Name" {
			t.Errorf("title = %v, want Show Name", title)
		}
		if diff := cmp.Diff([]string{"The Big Show"}, strValues(ms, "episode_title")); diff != "" {
			t.Errorf("episode_title mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("leading bracket group left unmatched", func(t *testing.T) {
		t.Parallel()
		ms := Scan("[Group].Show.Name.-.102.[720p]", nil)
		if title := ms.FirstNamed("title"); title == nil || title.Str() != "Show Name" {
			t.Errorf("title = %v, want Show Name", title)
		}
		if rg := ms.FirstNamed("release_group"); rg != nil {
			t.Errorf("release_group = %v at scan time, want none", rg)
		}
	})
}

func TestScanExpected(t *testing.T) {
	t.Parallel()

	t.Run("literal with separators", func(t *testing.T) {
		t.Parallel()
		ctx := match.NewContext(match.ShowTypeUnknown)
		ctx.ExpectedTitles = []string{"11.22.63"}
		ms := Scan("11.22.63.S01E01.720p", ctx)
		title := ms.FirstNamed("title")
		if title == nil || title.Str() != "11.22.63" {
			t.Fatalf("title = %v, want 11.22.63", title)
		}
		if !title.HasTag(TagExpected) {
			t.Error("expected tag missing")
		}
		if diff := cmp.Diff([]int{1}, intValues(ms, "season")); diff != "" {
			t.Errorf("seasons mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("regex entry", func(t *testing.T) {
		t.Parallel()
		ctx := match.NewContext(match.ShowTypeUnknown)
		ctx.ExpectedTitles = []string{`re:^12 Monkeys\b`}
		ms := Scan("12.Monkeys.S01E01.HDTV", ctx)
		title := ms.FirstNamed("title")
		if title == nil || title.Str() != "12.Monkeys" {
			t.Errorf("title = %v, want 12.Monkeys", title)
		}
	})

	t.Run("expected group", func(t *testing.T) {
		t.Parallel()
		ctx := match.NewContext(match.ShowTypeUnknown)
		ctx.ExpectedGroups = []string{`re:\bTV2LAX9\b`}
		ms := Scan("Show.Name.S01E01.HDTV.TV2LAX9", ctx)
		rg := ms.FirstNamed("release_group")
		if rg == nil || rg.Str() != "TV2LAX9" {
			t.Errorf("release_group = %v, want TV2LAX9", rg)
		}
	})
}

func TestScanProperties(t *testing.T) {
	t.Parallel()

	ms := Scan("Show.Name.S01E01.REPACK.WEBRip.DDP5.1.x264.PROPER", nil)
	if diff := cmp.Diff([]string{"WEBRip"}, strValues(ms, "format")); diff != "" {
		t.Errorf("format mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"DolbyDigitalPlus"}, strValues(ms, "audio_codec")); diff != "" {
		t.Errorf("audio_codec mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"h264"}, strValues(ms, "video_codec")); diff != "" {
		t.Errorf("video_codec mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Repack", "Proper"}, strValues(ms, "other")); diff != "" {
		t.Errorf("other mismatch (-want +got):\n%s", diff)
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"Show.Name", "Show Name"},
		{"Show_Name__2", "Show Name 2"},
		{".-Show.Name-.", "Show Name"},
		{"Show.Name.-.Alt", "Show Name - Alt"},
	}
	for _, tc := range tests {
		tc := tc
		if got := Clean(tc.in); got != tc.want {
			t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
