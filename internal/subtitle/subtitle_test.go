package subtitle

import (
	"strings"
	"testing"

	"readalong/internal/timing"
)

func TestFormatASSTime(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0:00:00.00"},
		{1500, "0:00:01.50"},
		{61234, "0:01:01.23"},
		{3723450, "1:02:03.45"},
	}

	for _, tt := range tests {
		if got := formatASSTime(tt.ms); got != tt.want {
			t.Errorf("formatASSTime(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestFormatSRTTime(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00,000"},
		{1500, "00:00:01,500"},
		{3723456, "01:02:03,456"},
	}

	for _, tt := range tests {
		if got := formatSRTTime(tt.ms); got != tt.want {
			t.Errorf("formatSRTTime(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestToASSColor(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"#FF0000", "&H000000FF"},
		{"00FF00", "&H0000FF00"},
		{"&H00123456", "&H00123456"},
		{"bad", "&H00FFFFFF"},
	}

	for _, tt := range tests {
		if got := toASSColor(tt.input); got != tt.want {
			t.Errorf("toASSColor(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToASS(t *testing.T) {
	timings := timing.EstimateWordTimings("Hi there", 2000, timing.DefaultPolicy())
	out := ToASS(timings, Options{FontName: "Verdana", Bold: true})

	for _, want := range []string{
		"[Script Info]",
		"Style: Default,Verdana,48,",
		"Dialogue: 0,0:00:00.00,0:00:00.75,Default,,0,0,0,,Hi\n",
		"Dialogue: 0,0:00:00.75,0:00:02.00,Default,,0,0,0,,there\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ToASS() missing %q in:\n%s", want, out)
		}
	}
}

func TestToSRT(t *testing.T) {
	timings := timing.EstimateWordTimings("Hi there", 2000, timing.DefaultPolicy())

	want := "1\n00:00:00,000 --> 00:00:00,750\nHi\n\n" +
		"2\n00:00:00,750 --> 00:00:02,000\nthere\n\n"
	if got := ToSRT(timings); got != want {
		t.Errorf("ToSRT() = %q, want %q", got, want)
	}
}

func TestSkipsEmptyWindows(t *testing.T) {
	timings := timing.EstimateWordTimings("not loaded", 0, timing.DefaultPolicy())

	if got := ToSRT(timings); got != "" {
		t.Errorf("ToSRT() = %q, want empty", got)
	}
	if strings.Contains(ToASS(timings, Options{}), "Dialogue:") {
		t.Error("ToASS() should skip zero-length windows")
	}
}
