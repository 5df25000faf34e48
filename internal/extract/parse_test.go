package extract

import (
	"reflect"
	"testing"
)

const movieDiagnostics = `Input #0, matroska,webm, from 'Heat (1995).mkv':
  Stream #0:0: Video: h264 (High), yuv420p, 1920x1040
  Stream #0:1(eng): Audio: dts (DTS-HD MA), 48000 Hz, 5.1(side)
  Stream #0:2(ger): Audio: ac3, 48000 Hz, 5.1(side)
  Stream #0:3(ENG): Audio: ac3, 48000 Hz, stereo
  Stream #0:4(en): Audio: aac, 48000 Hz, stereo
  Stream #0:5(eng): Subtitle: hdmv_pgs_subtitle
  Stream #0:6(fre): Subtitle: subrip
  Stream #0:7(und): Subtitle: subrip
`

func TestStreams(t *testing.T) {
	audio, subtitles := Streams(movieDiagnostics)
	if want := []string{"eng", "ger"}; !reflect.DeepEqual(audio, want) {
		t.Fatalf("audio = %v, want %v", audio, want)
	}
	if want := []string{"eng", "fre", "und"}; !reflect.DeepEqual(subtitles, want) {
		t.Fatalf("subtitles = %v, want %v", subtitles, want)
	}
}

func TestStreamsNoLanguages(t *testing.T) {
	audio, subtitles := Streams("Input #0, avi, from 'x.avi':\n  Stream #0:0: Video: mpeg4\n  Stream #0:1: Audio: mp3\n")
	if len(audio) != 0 || len(subtitles) != 0 {
		t.Fatalf("expected no codes, got %v %v", audio, subtitles)
	}
}

func TestSidecarCode(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"/media/Heat (1995)/Heat (1995).en.srt", "eng", true},
		{"Heat (1995).ger.forced.srt", "deu", true},
		{"Heat (1995).de.srt", "deu", true},
		{"Heat.1995.en.srt", "eng", true},
		{"Heat (1995).xx.fr.srt", "fra", true},
		{"Heat (1995).srt", "", false},
		{"Heat (1995).forced.srt", "", false},
		{"Heat (1995).qq.srt", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SidecarCode(tt.name)
			if got != tt.want || ok != tt.ok {
				t.Errorf("SidecarCode(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSidecarCodesDeduplicate(t *testing.T) {
	got := SidecarCodes([]string{"a.en.srt", "a.eng.forced.srt", "a.de.ass", "a.srt"})
	if want := []string{"eng", "deu"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SidecarCodes = %v, want %v", got, want)
	}
}

func TestDedupeCodesShape(t *testing.T) {
	got := dedupeCodes([]string{"ENG", "eng", "en", "e1g", "deu ", ""})
	if want := []string{"eng", "deu"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("dedupeCodes = %v, want %v", got, want)
	}
}

func TestIsSubtitleFile(t *testing.T) {
	for name, want := range map[string]bool{
		"a.SRT": true, "a.ass": true, "a.sup": true, "a.mkv": false, "a.nfo": false,
	} {
		if got := IsSubtitleFile(name); got != want {
			t.Errorf("IsSubtitleFile(%q) = %v", name, got)
		}
	}
}
