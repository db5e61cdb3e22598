package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/chassis-price-bot/internal/domain/constants"
	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
)

// formatAmount 1234567 -> "1,234,567"
func formatAmount(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func formatSigned(v int64) string {
	if v > 0 {
		return "+" + formatAmount(v)
	}
	return formatAmount(v)
}

func stepGlyph(d entity.StepDirection) string {
	switch d {
	case entity.StepUp:
		return "▲"
	case entity.StepDown:
		return "▼"
	default:
		return "➖"
	}
}

func vehicleCard(v entity.Vehicle) string {
	var sb strings.Builder
	if v.IsUnknown() {
		fmt.Fprintf(&sb, "❓ %s is not in the catalog (UNKNOWN)\n", v.ChassisCode)
		return sb.String()
	}
	fmt.Fprintf(&sb, "🚗 %s\n", v.ModelName)
	fmt.Fprintf(&sb, "🔢 Chassis: %s\n", v.ChassisCode)
	fmt.Fprintf(&sb, "🎨 Color: %s\n", nonEmpty(v.Color, entity.UnknownColor))
	if v.ModelYear > 0 {
		fmt.Fprintf(&sb, "📅 Year: %d\n", v.ModelYear)
	}
	return sb.String()
}

func savedText(obs entity.PriceObservation, tr entity.Trend) string {
	var sb strings.Builder
	sb.WriteString("✅ Price saved\n\n")
	fmt.Fprintf(&sb, "🔢 %s  %s\n", obs.ChassisCode, obs.ModelName)
	fmt.Fprintf(&sb, "💴 %s\n", formatAmount(obs.Price))
	fmt.Fprintf(&sb, "📅 %s  📍 %s\n", obs.DateString(), obs.Location)
	if n := len(tr.Steps); n >= 2 {
		last := tr.Steps[n-1]
		fmt.Fprintf(&sb, "\n%s %s vs previous\n", stepGlyph(last.Direction), formatSigned(last.Change))
		fmt.Fprintf(&sb, "Overall: %s (%+.1f%%) over %d entries\n", formatSigned(tr.OverallChange), tr.PercentChange, len(tr.History))
	}
	return sb.String()
}

func historyText(code string, tr entity.Trend) string {
	if len(tr.History) == 0 {
		return fmt.Sprintf("📭 No price history for %s yet.", code)
	}
	var sb strings.Builder
	first := tr.History[0]
	fmt.Fprintf(&sb, "📈 Price history: %s\n", code)
	fmt.Fprintf(&sb, "🚗 %s\n\n", first.ModelName)
	for i, st := range tr.Steps {
		obs := st.Observation
		fmt.Fprintf(&sb, "%d. %s  %s", i+1, obs.DateString(), formatAmount(obs.Price))
		if i > 0 {
			fmt.Fprintf(&sb, "  %s %s", stepGlyph(st.Direction), formatSigned(st.Change))
		}
		if obs.SubmitterName != "" {
			fmt.Fprintf(&sb, "  (%s)", obs.SubmitterName)
		}
		sb.WriteString("\n")
	}
	if tr.HasChange {
		fmt.Fprintf(&sb, "\nOverall: %s (%+.1f%%)\n", formatSigned(tr.OverallChange), tr.PercentChange)
	}
	return sb.String()
}

func modelListText(query string, vehicles []entity.Vehicle) string {
	if len(vehicles) == 0 {
		return fmt.Sprintf("🔍 No models match %q.", query)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "🔍 %q: %d found\n\n", query, len(vehicles))
	for i, v := range vehicles {
		if i >= constants.MaxModelResults {
			fmt.Fprintf(&sb, "… and %d more\n", len(vehicles)-constants.MaxModelResults)
			break
		}
		fmt.Fprintf(&sb, "%d. %s  %s  %s  %d\n", i+1, v.ChassisCode, v.ModelName, v.Color, v.ModelYear)
	}
	return sb.String()
}

func nonEmpty(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}

const (
	usageText = `🚗 Chassis price tracker

• Send a chassis code (e.g. NT32-504837) to see the vehicle
• Photo + caption "NT32-504837 150000" saves the price right away
• Photo + caption "NT32-504837" then send the price as a separate message
• /find CHASSIS - look up a chassis
• /model NAME - search by model (e.g. /model xtrail)
• /price CHASSIS PRICE - record a price directly
• /history CHASSIS - price history and trend
• /export - whole ledger as an Excel file
• /web - spreadsheet link`

	noChassisText   = "❌ No chassis code found. Use /price CHASSIS PRICE (e.g. /price NT32-504837 150000)."
	priceUsageText  = "❗ Usage: /price CHASSIS PRICE (e.g. /price NT32-504837 150,000)"
	invalidPriceMsg = "❌ Invalid price. Send digits only (e.g. 150000 or 150,000) or a new chassis code."
	saveFailedText  = "⚠️ Could not save the price. Please try again."
)
