package rules

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bitzorro/relstring/internal/match"
	"github.com/bitzorro/relstring/internal/matcher"
)

func TestFixScreenSizeConflict(t *testing.T) {
	t.Parallel()

	ms := matcher.Scan("Show.Name.720.HDTV.x264-GRP", nil)
	apply(t, FixScreenSizeConflict{}, ms, nil)

	if diff := cmp.Diff([]string{"720p"}, strValues(ms, "screen_size")); diff != "" {
		t.Errorf("screen_size mismatch (-want +got):\n%s", diff)
	}
	if got := ms.Named("season"); len(got) != 0 {
		t.Errorf("seasons = %v, want none", got)
	}
	if got := ms.Named("episode"); len(got) != 0 {
		t.Errorf("episodes = %v, want none", got)
	}
}

func TestPartsAsEpisodeNumbers(t *testing.T) {
	t.Parallel()

	t.Run("lone part becomes the episode", func(t *testing.T) {
		t.Parallel()
		ms := matcher.Scan("Show.Name.Part.3.720p.HDTV.x264-Group", nil)
		apply(t, PartsAsEpisodeNumbers{}, ms, nil)

		if diff := cmp.Diff([]int{3}, intValues(ms, "episode")); diff != "" {
			t.Errorf("episodes mismatch (-want +got):\n%s", diff)
		}
		if got := ms.Named("part"); len(got) != 0 {
			t.Errorf("parts = %v, want none", got)
		}
	})

	t.Run("existing numbering keeps the part", func(t *testing.T) {
		t.Parallel()
		ms := matcher.Scan("Show.Name.S01E02.Part.3.HDTV", nil)
		apply(t, PartsAsEpisodeNumbers{}, ms, nil)

		if diff := cmp.Diff([]int{2}, intValues(ms, "episode")); diff != "" {
			t.Errorf("episodes mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int{3}, intValues(ms, "part")); diff != "" {
			t.Errorf("parts mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestFixEpisodeRangeDetection(t *testing.T) {
	t.Parallel()

	t.Run("dashed range fills in", func(t *testing.T) {
		t.Parallel()
		ms := matcher.Scan("Show.Name.S02E01-E04.720p", nil)
		apply(t, FixEpisodeRangeDetection{}, ms, nil)

		if diff := cmp.Diff([]int{1, 2, 3, 4}, intValues(ms, "episode")); diff != "" {
			t.Errorf("episodes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("count over a range separator expands", func(t *testing.T) {
		t.Parallel()
		input := "Show.Name.01-08"
		ms := match.NewMatches(input)
		title := &match.Match{Name: "title", Start: 0, End: 9, Raw: "Show.Name", Value: "Show Name"}
		episode := &match.Match{Name: "episode", Start: 10, End: 12, Raw: "01", Value: 1}
		count := &match.Match{Name: "episode_count", Start: 13, End: 15, Raw: "08", Value: 8}
		ms.Append(title, episode, count)

		apply(t, FixEpisodeRangeDetection{}, ms, nil)

		if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6, 7, 8}, intValues(ms, "episode")); diff != "" {
			t.Errorf("episodes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("one of n stays a single episode", func(t *testing.T) {
		t.Parallel()
		ms := matcher.Scan("Show.Name.1.of.8.HDTV", nil)
		apply(t, FixEpisodeRangeDetection{}, ms, nil)

		if diff := cmp.Diff([]int{1}, intValues(ms, "episode")); diff != "" {
			t.Errorf("episodes mismatch (-want +got):\n%s", diff)
		}
	})
}
