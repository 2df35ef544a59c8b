package matcher

import "regexp"

// property is one entry of the technical vocabulary: anything the
// pattern matches is normalized to value. Entries are tried in table
// order, so the more specific spelling must precede the one it
// contains (WEBRip before WEB-DL, DDP before DD).
type property struct {
	name  string
	value string
	re    *regexp.Regexp
}

func rx(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + pattern + `)\b`)
}

var properties = []property{
	// Source formats. Mux and rip spellings fold into their base
	// format, LDTV counts as plain TV.
	{"format", "WEBRip", rx(`web[ ._-]?(?:dl[ ._-]?)?rip`)},
	{"format", "WEBCap", rx(`web[ ._-]?cap`)},
	{"format", "WEB-DL", rx(`web[ ._-]?dl(?:[ ._-]?mux)?|web[ ._-]?hd|dl[ ._-]?mux|web[ ._-]?mux`)},
	{"format", "HDTV", rx(`hdtv(?:[ ._-]?mux)?`)},
	{"format", "TV", rx(`ldtv`)},
	{"format", "BluRay", rx(`blu[ ._-]?ray(?:[ ._-]?mux)?|bd[ ._-]?mux|br[ ._-]?mux|bdiso`)},
	{"format", "BDRip", rx(`bd[ ._-]?rip`)},
	{"format", "BRRip", rx(`br[ ._-]?rip`)},
	{"format", "HD-DVD", rx(`hd[ ._-]?dvd`)},
	{"format", "DVDRip", rx(`dvd[ ._-]?rip`)},
	{"format", "DVD", rx(`dvd(?:[ ._-]?mux)?|dvd[ ._-]?2|video[ ._-]?ts`)},
	{"format", "DSRip", rx(`ds[ ._-]?rip|dsr(?:[ ._-]?rip)?|sat[ ._-]?rip|dth[ ._-]?rip`)},
	{"format", "HDRip", rx(`hd[ ._-]?rip`)},
	{"format", "Telesync", rx(`telesync|ts[ ._-]?rip`)},
	{"format", "Cam", rx(`cam[ ._-]?rip|hd[ ._-]?cam`)},

	{"video_codec", "h264", rx(`x[ ._]?264|h[ ._]?264`)},
	{"video_codec", "h265", rx(`x[ ._]?265|h[ ._]?265|hevc`)},
	{"video_codec", "XviD", rx(`xvid`)},
	{"video_codec", "DivX", rx(`divx`)},
	{"video_codec", "VP9", rx(`vp9`)},
	{"video_codec", "MPEG2", rx(`mpeg[ ._-]?2`)},

	{"audio_codec", "DTS-HD", rx(`dts[ ._-]?hd(?:[ ._-]?ma)?`)},
	{"audio_codec", "DTS", rx(`dts`)},
	{"audio_codec", "TrueHD", rx(`true[ ._-]?hd`)},
	{"audio_codec", "DolbyAtmos", rx(`atmos`)},
	{"audio_codec", "DolbyDigitalPlus", rx(`e[ ._-]?ac[ ._-]?3|ddp[ ._]?\d(?:[ ._]?\d)?|ddp|dd\+`)},
	{"audio_codec", "DolbyDigital", rx(`ac3|dd[ ._]?\d[ ._]?\d`)},
	{"audio_codec", "FLAC", rx(`flac`)},
	{"audio_codec", "AAC", rx(`aac(?:[ ._]?\d[ ._]?\d)?`)},
	{"audio_codec", "MP3", rx(`mp3`)},

	{"language", "French", rx(`french|truefrench|vostfr|vff|vfq`)},
	{"language", "English", rx(`english|eng`)},
	{"language", "German", rx(`german`)},
	{"language", "Spanish", rx(`spanish|castellano|espanol`)},
	{"language", "Italian", rx(`italian`)},
	{"language", "Multi", rx(`multi`)},

	// Flags surfaced as joined extra info.
	{"other", "Proper", rx(`proper`)},
	{"other", "Repack", rx(`repack|rerip`)},
	{"other", "Internal", rx(`internal`)},
	{"other", "Extended", rx(`extended(?:[ ._-]?cut)?`)},
	{"other", "Uncensored", rx(`uncensored`)},
	{"other", "Complete", rx(`complete`)},
	{"other", "Limited", rx(`limited`)},
	{"other", "Obfuscated", rx(`obfuscated`)},
	{"other", "10bit", rx(`10[ ._-]?bits?|hi10p?`)},
	{"other", "Dual Audio", rx(`dual[ ._-]?audio`)},
}
