package rules

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bitzorro/relstring/internal/match"
	"github.com/bitzorro/relstring/internal/matcher"
)

func TestFixInvalidTitleOrAlternativeTitle(t *testing.T) {
	t.Parallel()

	input := "Show.Name.101-104.E05.HDTV"
	ms := match.NewMatches(input)
	title := &match.Match{Name: "title", Start: 0, End: 17, Raw: "Show.Name.101-104", Value: "Show Name 101-104"}
	marker := &match.Match{Name: "marker", Start: 18, End: 21, Raw: "E05", Private: true}
	episode := &match.Match{Name: "episode", Start: 19, End: 21, Raw: "05", Value: 5, Parent: marker}
	ms.Append(title, marker, episode)

	apply(t, FixInvalidTitleOrAlternativeTitle{}, ms, nil)

	got := ms.FirstNamed("title")
	if got == nil || got.Str() != "Show Name" {
		t.Errorf("title = %v, want Show Name", got)
	}
	if diff := cmp.Diff([]int{101, 102, 103, 104}, intValues(ms, "absolute_episode")); diff != "" {
		t.Errorf("absolute_episode mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{5}, intValues(ms, "episode")); diff != "" {
		t.Errorf("episodes mismatch (-want +got):\n%s", diff)
	}
}

func TestFixInvalidTitleNeedsEpisodeEvidence(t *testing.T) {
	t.Parallel()

	ms := matcher.Scan("Show.Name.101-104.HDTV", nil)
	apply(t, FixInvalidTitleOrAlternativeTitle{}, ms, nil)

	title := ms.FirstNamed("title")
	if title == nil || title.Str() != "Show Name 101-104" {
		t.Errorf("title = %v, want Show Name 101-104", title)
	}
	if got := intValues(ms, "absolute_episode"); got != nil {
		t.Errorf("absolute_episode = %v, want none", got)
	}
}

func TestFixWrongTitleDueToFilmTitle(t *testing.T) {
	t.Parallel()

	t.Run("fuse group and film number", func(t *testing.T) {
		t.Parallel()
		input := "Show.Name.GRP.F2.720p"
		ms := match.NewMatches(input)
		filmTitle := &match.Match{Name: "film_title", Start: 0, End: 9, Raw: "Show.Name", Value: "Show Name"}
		title := &match.Match{Name: "title", Start: 10, End: 13, Raw: "GRP", Value: "GRP"}
		marker := &match.Match{Name: "marker", Start: 14, End: 16, Raw: "F2", Private: true}
		film := &match.Match{Name: "film", Start: 15, End: 16, Raw: "2", Value: 2, Parent: marker}
		size := &match.Match{Name: "screen_size", Start: 17, End: 21, Raw: "720p", Value: "720p"}
		ms.Append(filmTitle, title, marker, film, size)

		apply(t, FixWrongTitleDueToFilmTitle{}, ms, nil)

		got := ms.FirstNamed("title")
		if got == nil || got.Str() != "Show Name" {
			t.Errorf("title = %v, want Show Name", got)
		}
		rg := ms.FirstNamed("release_group")
		if rg == nil || rg.Str() != "GRP.F2" {
			t.Errorf("release_group = %v, want GRP.F2", rg)
		}
		if ms.FirstNamed("film") != nil {
			t.Error("film match should be consumed")
		}
	})

	t.Run("placeholder title replaced", func(t *testing.T) {
		t.Parallel()
		input := "Show.Name.Special.720p"
		ms := match.NewMatches(input)
		filmTitle := &match.Match{Name: "film_title", Start: 0, End: 9, Raw: "Show.Name", Value: "Show Name"}
		title := &match.Match{Name: "title", Start: 10, End: 17, Raw: "Special", Value: "Special"}
		ms.Append(filmTitle, title)

		apply(t, FixWrongTitleDueToFilmTitle{}, ms, nil)

		got := ms.FirstNamed("title")
		if got == nil || got.Str() != "Show Name" {
			t.Errorf("title = %v, want Show Name", got)
		}
		if ms.FirstNamed("film_title") != nil {
			t.Error("film_title should be consumed")
		}
	})

	t.Run("film title promoted when no title", func(t *testing.T) {
		t.Parallel()
		input := "Show.Name.F2.720p"
		ms := match.NewMatches(input)
		filmTitle := &match.Match{Name: "film_title", Start: 0, End: 9, Raw: "Show.Name", Value: "Show Name"}
		ms.Append(filmTitle)

		apply(t, FixWrongTitleDueToFilmTitle{}, ms, nil)

		got := ms.FirstNamed("title")
		if got == nil || got.Str() != "Show Name" {
			t.Errorf("title = %v, want Show Name", got)
		}
	})
}

func TestExpectedTitleDots(t *testing.T) {
	t.Parallel()

	t.Run("pattern match gets spaces", func(t *testing.T) {
		t.Parallel()
		ctx := match.NewContext(match.ShowTypeUnknown)
		ctx.ExpectedTitles = []string{`re:^Star Trek DS9\b`}
		ms := matcher.Scan("Star.Trek.DS9.S01E01.HDTV", ctx)
		apply(t, ExpectedTitleDots{}, ms, ctx)

		title := ms.FirstNamed("title")
		if title == nil || title.Str() != "Star Trek DS9" {
			t.Errorf("title = %v, want Star Trek DS9", title)
		}
	})

	t.Run("literal list member keeps its dots", func(t *testing.T) {
		t.Parallel()
		ctx := match.NewContext(match.ShowTypeUnknown)
		ctx.ExpectedTitles = []string{"11.22.63"}
		ms := matcher.Scan("11.22.63.S01E01.720p", ctx)
		apply(t, ExpectedTitleDots{}, ms, ctx)

		title := ms.FirstNamed("title")
		if title == nil || title.Str() != "11.22.63" {
			t.Errorf("title = %v, want 11.22.63", title)
		}
	})
}

func TestCreateExtendedTitleWithAlternativeTitle(t *testing.T) {
	t.Parallel()

	t.Run("joined over claimed year", func(t *testing.T) {
		t.Parallel()
		ms := matcher.Scan("Show.Name.2019.Alt.Title.S01E01.720p", nil)
		apply(t, CreateExtendedTitleWithAlternativeTitle{}, ms, nil)

		ext := ms.FirstNamed("extended_title")
		if ext == nil || ext.Str() != "Show Name Alt Title" {
			t.Errorf("extended_title = %v, want Show Name Alt Title", ext)
		}
	})

	t.Run("bare dash keeps the dash", func(t *testing.T) {
		t.Parallel()
		input := "Show.Name.-.Alt.Title.S01E01"
		ms := match.NewMatches(input)
		title := &match.Match{Name: "title", Start: 0, End: 9, Raw: "Show.Name", Value: "Show Name"}
		alt := &match.Match{Name: "alternative_title", Start: 12, End: 21, Raw: "Alt.Title", Value: "Alt Title"}
		ms.Append(title, alt)

		apply(t, CreateExtendedTitleWithAlternativeTitle{}, ms, nil)

		ext := ms.FirstNamed("extended_title")
		if ext == nil || ext.Str() != "Show Name - Alt Title" {
			t.Errorf("extended_title = %v, want Show Name - Alt Title", ext)
		}
	})

	t.Run("season word blocks the join", func(t *testing.T) {
		t.Parallel()
		input := "Show.Name.Temporada.2"
		ms := match.NewMatches(input)
		title := &match.Match{Name: "title", Start: 0, End: 9, Raw: "Show.Name", Value: "Show Name"}
		alt := &match.Match{Name: "alternative_title", Start: 10, End: 19, Raw: "Temporada", Value: "Temporada"}
		ms.Append(title, alt)

		apply(t, CreateExtendedTitleWithAlternativeTitle{}, ms, nil)

		if ext := ms.FirstNamed("extended_title"); ext != nil {
			t.Errorf("extended_title = %v, want none", ext)
		}
	})
}

func TestCreateExtendedTitleWithCountryOrYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"country", "Show.Name.US.S03E05.720p", "Show Name US"},
		{"year", "Show.Name.2019.S01E01.720p", "Show Name 2019"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ms := matcher.Scan(tc.input, nil)
			apply(t, CreateExtendedTitleWithCountryOrYear{}, ms, nil)

			ext := ms.FirstNamed("extended_title")
			if ext == nil || ext.Str() != tc.want {
				t.Errorf("extended_title = %v, want %q", ext, tc.want)
			}
		})
	}
}

func TestFixNumericTitle(t *testing.T) {
	t.Parallel()

	ms := matcher.Scan("Show.Name.2.The.Big.Show.S01E01.720p", nil)
	apply(t, FixNumericTitle{}, ms, nil)

	title := ms.FirstNamed("title")
	if title == nil || title.Str() != "Show Name 2 The Big Show" {
		t.Errorf("title = %v, want Show Name 2 The Big Show", title)
	}
	if got := ms.Named("episode_title"); len(got) != 0 {
		t.Errorf("episode_title = %v, want none", got)
	}
}

func TestFixMultipleTitles(t *testing.T) {
	t.Parallel()

	input := "Show.Name.Other.Text"
	ms := match.NewMatches(input)
	first := &match.Match{Name: "title", Start: 0, End: 9, Raw: "Show.Name", Value: "Show Name"}
	second := &match.Match{Name: "title", Start: 10, End: 20, Raw: "Other.Text", Value: "Other Text"}
	ms.Append(first, second)

	apply(t, FixMultipleTitles{}, ms, nil)

	titles := ms.Named("title")
	if len(titles) != 1 || titles[0] != first {
		t.Errorf("titles = %v, want only the first", titles)
	}
}
