package ui

import (
	"fmt"
	"strings"
	"time"

	"cadenza/internal/mpd"
	"cadenza/internal/panes"
	"cadenza/internal/ui/textutil"
)

// renderHeader draws the one-line frame header: tab names on the left, the
// playback state, current song, and volume on the right.
func renderHeader(width int, names []string, active int, st mpd.Status, song *mpd.Song, connected bool) string {
	if width < 1 {
		return ""
	}

	var tabs []string
	for i, name := range names {
		if i == active {
			tabs = append(tabs, Styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, Styles.TabInactive.Render(name))
		}
	}
	left := strings.Join(tabs, Styles.HeaderMuted.Render(" │ "))

	right := Styles.HeaderMuted.Render("not connected")
	if connected {
		var parts []string
		parts = append(parts, stateGlyph(st.State))
		if song != nil && st.State != mpd.StateStopped {
			parts = append(parts, textutil.Truncate(songLabel(song), width/2))
		}
		parts = append(parts, fmt.Sprintf("vol %d%%", st.Volume))
		right = Styles.HeaderState.Render(strings.Join(parts, " "))
	}

	gap := width - textutil.VisualWidthStyled(left) - textutil.VisualWidthStyled(right)
	if gap < 1 {
		return textutil.Truncate(stripLine(left), width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func stateGlyph(s mpd.PlayState) string {
	switch s {
	case mpd.StatePlaying:
		return "▶"
	case mpd.StatePaused:
		return "⏸"
	default:
		return "■"
	}
}

func songLabel(song *mpd.Song) string {
	if song.Artist != "" {
		return song.Artist + " - " + song.DisplayName()
	}
	return song.DisplayName()
}

// renderStatusBar draws the bottom line: a transient status message when one
// is live, otherwise the elapsed progress bar.
func renderStatusBar(width int, status string, level panes.Level, st mpd.Status) string {
	if width < 1 {
		return ""
	}
	if status != "" {
		style := Styles.StatusInfo
		switch level {
		case panes.LevelWarn:
			style = Styles.StatusWarn
		case panes.LevelError:
			style = Styles.StatusError
		}
		return style.Render(textutil.Truncate(status, width))
	}
	if st.State == mpd.StateStopped || st.Duration <= 0 {
		return Styles.HeaderMuted.Render(textutil.PadRight("stopped", width))
	}
	return progressBar(width, st.Elapsed, st.Duration)
}

// progressBar renders "mm:ss ━━━━╸──── mm:ss" scaled to the elapsed share.
func progressBar(width int, elapsed, total time.Duration) string {
	left := clock(elapsed)
	right := clock(total)
	barWidth := width - len(left) - len(right) - 2
	if barWidth < 4 {
		return Styles.HeaderMuted.Render(textutil.Truncate(left+"/"+right, width))
	}
	filled := int(int64(barWidth) * int64(elapsed) / int64(total))
	if filled > barWidth {
		filled = barWidth
	}
	bar := Styles.Progress.Render(strings.Repeat("━", filled)) +
		Styles.ProgressBg.Render(strings.Repeat("─", barWidth-filled))
	return Styles.HeaderMuted.Render(left) + " " + bar + " " + Styles.HeaderMuted.Render(right)
}

func clock(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// stripLine keeps header truncation simple when there is no room for the
// right side: drop styling rather than slice inside escape codes.
func stripLine(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
