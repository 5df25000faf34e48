package extract

import (
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/asticode/go-astisub"

	"langtagger/internal/language"
)

const (
	// minDetectRunes is the least amount of dialogue text worth classifying.
	minDetectRunes = 200
	// maxDetectRunes caps how much dialogue is fed to the detector.
	maxDetectRunes = 8000
)

// DetectSidecarLanguage parses a text subtitle file and classifies the
// language of its dialogue. Image-based formats, short files, and unreliable
// detections return ok=false without error.
func DetectSidecarLanguage(path string) (code string, ok bool, err error) {
	if !textSubtitle(path) {
		return "", false, nil
	}
	subs, err := astisub.OpenFile(path)
	if err != nil {
		return "", false, fmt.Errorf("open subtitle %s: %w", path, err)
	}
	text := dialogueText(subs)
	if len([]rune(text)) < minDetectRunes {
		return "", false, nil
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return "", false, nil
	}
	canonical := language.Canonical3(info.Lang.Iso6393())
	if canonical == "" {
		return "", false, nil
	}
	return canonical, true, nil
}

func textSubtitle(path string) bool {
	switch strings.ToLower(path[strings.LastIndexByte(path, '.')+1:]) {
	case "srt", "ass", "ssa", "vtt":
		return true
	default:
		return false
	}
}

func dialogueText(subs *astisub.Subtitles) string {
	var b strings.Builder
	runes := 0
	for _, item := range subs.Items {
		for _, line := range item.Lines {
			for _, li := range line.Items {
				text := strings.TrimSpace(li.Text)
				if text == "" {
					continue
				}
				b.WriteString(text)
				b.WriteByte(' ')
				runes += len([]rune(text)) + 1
				if runes >= maxDetectRunes {
					return b.String()
				}
			}
		}
	}
	return b.String()
}
