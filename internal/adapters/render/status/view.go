package status

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/oraad/ogero-sensors/internal/application"
	"github.com/oraad/ogero-sensors/internal/domain"
)

type RenderOptions struct {
	Now        time.Time
	StaleAfter time.Duration
}

const shortIDLength = 8

func renderView(statuses []application.EntryStatus, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Ogero Sensors"),
		s.header.Render(fmt.Sprintf("entries: %d", len(statuses))),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No entries configured. Run: ogero entry add"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderEntry(status, opts, s)))
	}
	lines = append(lines, s.section.Render(s.attribution.Render(domain.Attribution)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderEntry(status application.EntryStatus, opts RenderOptions, s styles) string {
	parts := []string{
		s.entry.Render(entryTitle(status.Title, status.ID)),
	}

	if status.Device != nil {
		parts = append(parts, s.detail.Render(deviceLine(*status.Device)))
	}
	if warning := stateWarning(status, opts); warning != "" {
		parts = append(parts, s.warning.Render(warning))
	}
	if line, ok := quotaLine(status.Sensors, s); ok {
		parts = append(parts, line)
	}
	for _, sensor := range status.Sensors {
		parts = append(parts, sensorLines(sensor, opts, s)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func entryTitle(title string, id domain.EntryID) string {
	trimmed := strings.TrimSpace(title)
	short := string(id)
	if len(short) > shortIDLength {
		short = short[:shortIDLength]
	}
	if trimmed == "" {
		return short
	}
	return fmt.Sprintf("%s (%s)", trimmed, short)
}

func deviceLine(device domain.DeviceInfo) string {
	line := fmt.Sprintf("device: %s (%s", device.Name, device.Manufacturer)
	if device.Model != "" {
		line += " " + device.Model
	}
	return line + ")"
}

func stateWarning(status application.EntryStatus, opts RenderOptions) string {
	switch status.State {
	case application.EntryStateNeedsReauth:
		return fmt.Sprintf("[re-authentication required] run: ogero entry reauth %s", status.ID)
	case application.EntryStateNotReady:
		return "[not ready] " + status.LastError
	case application.EntryStateFailed:
		return "[setup failed] " + status.LastError
	}

	if status.LastError != "" {
		return "[stale] last refresh failed: " + status.LastError
	}
	if isStale(status.LastSuccess, opts) {
		return "[stale]"
	}
	return ""
}

func isStale(lastSuccess time.Time, opts RenderOptions) bool {
	if opts.Now.IsZero() || opts.StaleAfter <= 0 || lastSuccess.IsZero() {
		return false
	}
	return opts.Now.Sub(lastSuccess) > opts.StaleAfter
}

func sensorLines(sensor application.SensorState, opts RenderOptions, s styles) []string {
	label := s.sensorKey.Render(sensorLabel(sensor.Key) + ":")
	if !sensor.Available {
		return []string{lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.unavailable.Render("unavailable"))}
	}

	value := s.sensorValue.Render(formatValue(sensor, opts.Now))
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, label, " ", value)}
	for _, month := range application.SortedMonths(sensor.Attributes) {
		lines = append(lines, s.sensorMeta.Render(fmt.Sprintf("  %s: %s", month, sensor.Attributes[month])))
	}

	return lines
}

func sensorLabel(key domain.SensorKey) string {
	return strings.ReplaceAll(string(key), "_", " ")
}

func formatValue(sensor application.SensorState, now time.Time) string {
	var text string
	switch v := sensor.Value.(type) {
	case nil:
		return "n/a"
	case float64:
		text = formatFloat(v, sensor.Precision)
	case int64:
		if sensor.Precision != nil && *sensor.Precision > 0 {
			text = formatFloat(float64(v), sensor.Precision)
		} else {
			text = strconv.FormatInt(v, 10)
		}
	case time.Time:
		return formatTimestamp(v, now)
	case string:
		if strings.TrimSpace(v) == "" {
			return "n/a"
		}
		text = v
	default:
		text = fmt.Sprint(v)
	}

	if sensor.Unit != "" {
		text += " " + sensor.Unit
	}
	return text
}

func formatFloat(v float64, precision *int) string {
	if precision == nil {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', *precision, 64)
}

func formatTimestamp(at, now time.Time) string {
	if at.IsZero() {
		return "n/a"
	}
	stamp := at.UTC().Format("2006-01-02 15:04 UTC")
	if now.IsZero() || at.After(now) {
		return stamp
	}
	return fmt.Sprintf("%s (%s)", stamp, formatAgo(now.Sub(at)))
}

func formatAgo(elapsed time.Duration) string {
	if elapsed < time.Hour {
		minutes := int(elapsed.Minutes())
		if minutes < 1 {
			return "just now"
		}
		return plural(minutes, "minute") + " ago"
	}
	if elapsed < 24*time.Hour {
		return plural(int(elapsed.Hours()), "hour") + " ago"
	}
	return plural(int(elapsed.Hours()/24), "day") + " ago"
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// quotaLine draws the remaining share of the quota when both the quota and
// the total consumption are known.
func quotaLine(sensors []application.SensorState, s styles) (string, bool) {
	var quota, used float64
	var haveQuota, haveUsed bool
	for _, sensor := range sensors {
		if !sensor.Available {
			continue
		}
		switch sensor.Key {
		case domain.SensorQuota:
			quota, haveQuota = numeric(sensor.Value)
		case domain.SensorTotalConsumption:
			used, haveUsed = numeric(sensor.Value)
		}
	}
	if !haveQuota || !haveUsed || quota <= 0 {
		return "", false
	}

	usedPercent := used / quota * 100
	leftPercent := clampPercent(100 - usedPercent)
	percentStyle := lipgloss.NewStyle().Foreground(interpolateColor(leftPercent, 0, 100))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.sensorKey.Render("quota left:"),
		" ",
		renderProgressBar(usedPercent, 24, s),
		" ",
		percentStyle.Render(fmt.Sprintf("%2.0f%% left", leftPercent)),
	), true
}

func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	leftFraction := (100.0 - used) / 100.0
	filled := int(math.Round(float64(width) * leftFraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(strconv.Itoa(colorCode))
}
