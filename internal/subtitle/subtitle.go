// Package subtitle writes estimated word windows as ASS or SRT so they can be
// checked against the audio in an ordinary media player.
package subtitle

import (
	"fmt"
	"strings"

	"readalong/internal/timing"
)

type Options struct {
	FontName     string
	FontSize     int
	PrimaryColor string
	OutlineColor string
	OutlineSize  int
	Bold         bool
}

func ToASS(timings []timing.WordTiming, opts Options) string {
	fontName := "Arial"
	if opts.FontName != "" {
		fontName = opts.FontName
	}

	fontSize := 48
	if opts.FontSize > 0 {
		fontSize = opts.FontSize
	}

	primaryColor := "&H00FFFFFF" // white
	if opts.PrimaryColor != "" {
		primaryColor = toASSColor(opts.PrimaryColor)
	}

	outlineColor := "&H00000000" // black
	if opts.OutlineColor != "" {
		outlineColor = toASSColor(opts.OutlineColor)
	}

	outlineSize := 2
	if opts.OutlineSize > 0 {
		outlineSize = opts.OutlineSize
	}

	boldVal := 0
	if opts.Bold {
		boldVal = -1
	}

	var sb strings.Builder

	sb.WriteString("[Script Info]\n")
	sb.WriteString("Title: Estimated Word Timings\n")
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("\n")

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(&sb, "Style: Default,%s,%d,%s,%s,%s,&H80000000,%d,0,0,0,100,100,0,0,1,%d,0,2,10,10,50,1\n",
		fontName, fontSize, primaryColor, primaryColor, outlineColor, boldVal, outlineSize)
	sb.WriteString("\n")

	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, w := range timings {
		if w.Duration() <= 0 {
			continue
		}
		fmt.Fprintf(&sb, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTime(w.StartMs), formatASSTime(w.EndMs), w.Text)
	}

	return sb.String()
}

func ToSRT(timings []timing.WordTiming) string {
	var sb strings.Builder
	n := 0

	for _, w := range timings {
		if w.Duration() <= 0 {
			continue
		}
		n++
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n\n", n, formatSRTTime(w.StartMs), formatSRTTime(w.EndMs), w.Text)
	}

	return sb.String()
}

func toASSColor(color string) string {
	if strings.HasPrefix(color, "&H") {
		return color
	}
	color = strings.TrimPrefix(color, "#")
	if len(color) == 6 {
		r := color[0:2]
		g := color[2:4]
		b := color[4:6]
		return fmt.Sprintf("&H00%s%s%s", b, g, r)
	}
	return "&H00FFFFFF"
}

// formatASSTime renders h:mm:ss.cc, truncating to centiseconds.
func formatASSTime(ms int64) string {
	hours := ms / 3600000
	minutes := (ms % 3600000) / 60000
	secs := (ms % 60000) / 1000
	centis := (ms % 1000) / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}

func formatSRTTime(ms int64) string {
	hours := ms / 3600000
	minutes := (ms % 3600000) / 60000
	secs := (ms % 60000) / 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, ms%1000)
}
