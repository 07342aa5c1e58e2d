package statusboard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Flight category values, worst to best.
const (
	CategoryLIFR    = "LIFR"
	CategoryIFR     = "IFR"
	CategoryMVFR    = "MVFR"
	CategoryVFR     = "VFR"
	CategoryUnknown = "UNK"
)

var (
	obsTimePattern  = regexp.MustCompile(`\b(\d{2})(\d{2})(\d{2})Z\b`)
	visMixedPattern = regexp.MustCompile(`\b(\d+)\s+(\d+)/(\d+)SM\b`)
	visFracPattern  = regexp.MustCompile(`\b(\d+)/(\d+)SM\b`)
	visWholePattern = regexp.MustCompile(`\b(\d+)SM\b`)
	ceilingPattern  = regexp.MustCompile(`\b(VV|BKN|OVC)(\d{3})\b`)
)

// parseVisibilitySM extracts prevailing visibility in statute miles. METARs
// write it as a whole number ("10SM"), a fraction ("1/2SM"), or a mixed
// number ("2 1/2SM").
func parseVisibilitySM(metar string) (float64, bool) {
	if m := visMixedPattern.FindStringSubmatch(metar); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den == 0 {
			return 0, false
		}
		return whole + num/den, true
	}
	if m := visFracPattern.FindStringSubmatch(metar); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		if den == 0 {
			return 0, false
		}
		return num / den, true
	}
	if m := visWholePattern.FindStringSubmatch(metar); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v, true
	}
	return 0, false
}

// parseCeilingFt extracts the ceiling: the lowest broken, overcast, or
// vertical-visibility layer base, in feet AGL.
func parseCeilingFt(metar string) (int, bool) {
	var best int
	var found bool
	for _, m := range ceilingPattern.FindAllStringSubmatch(metar, -1) {
		h, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		ft := h * 100
		if !found || ft < best {
			best = ft
			found = true
		}
	}
	return best, found
}

// FlightCategory derives the flight category and a reason naming the
// degraded values from a raw METAR. The reason is empty for VFR, and the
// category is UNK when neither visibility nor ceiling parses.
func FlightCategory(metar string) (string, string) {
	vis, hasVis := parseVisibilitySM(metar)
	ceil, hasCeil := parseCeilingFt(metar)

	if !hasVis && !hasCeil {
		return CategoryUnknown, ""
	}

	reason := func() string {
		var parts []string
		if hasCeil {
			parts = append(parts, fmt.Sprintf("ceiling %dft", ceil))
		}
		if hasVis {
			parts = append(parts, fmt.Sprintf("vis %gSM", vis))
		}
		return strings.Join(parts, ", ")
	}

	switch {
	case (hasCeil && ceil < 500) || (hasVis && vis < 1.0):
		return CategoryLIFR, reason()
	case (hasCeil && ceil >= 500 && ceil < 1000) || (hasVis && vis >= 1.0 && vis < 3.0):
		return CategoryIFR, reason()
	case (hasCeil && ceil >= 1000 && ceil < 3000) || (hasVis && vis >= 3.0 && vis <= 5.0):
		return CategoryMVFR, reason()
	default:
		return CategoryVFR, ""
	}
}

// StatusForCategory maps a flight category onto a board status. Degraded
// flight rules are an impact; an unknown category is not.
func StatusForCategory(cat string) string {
	switch strings.ToUpper(cat) {
	case CategoryMVFR, CategoryIFR, CategoryLIFR:
		return StatusImpact
	default:
		return StatusOK
	}
}

// ObservationTime extracts the ddhhmmZ group as "dd hh:mmZ", or "" when the
// report has none.
func ObservationTime(metar string) string {
	m := obsTimePattern.FindStringSubmatch(metar)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%s %s:%sZ", m[1], m[2], m[3])
}
