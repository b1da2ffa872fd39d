package inputs

import (
	"strings"

	"github.com/shopspring/decimal"
)

var decorationReplacer = strings.NewReplacer(
	"R$", "",
	"r$", "",
	"$", "",
	"%", "",
	" ", "",
	"\u00a0", "",
	"\t", "",
)

// ParseNumber reads a locale-formatted decimal such as "R$ 1.234,56",
// "1,45%" or "1,234.56". Either comma or dot may be the decimal separator;
// when both appear the last one wins and the other is treated as a
// thousands separator. A currency amount with a single dot followed by
// exactly three digits ("R$ 1.500") reads the dot as thousands grouping.
// Empty or unparseable text yields an empty Value.
func ParseNumber(text string) Value {
	return parseNumber(text, strings.Contains(text, "$"))
}

func parseNumber(text string, money bool) Value {
	cleaned := decorationReplacer.Replace(strings.TrimSpace(text))
	if cleaned == "" {
		return Empty()
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(cleaned, ",") > 1 {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	case lastDot >= 0 && strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	case lastDot >= 0 && money && isThousandsGroup(cleaned[lastDot+1:]):
		cleaned = strings.Replace(cleaned, ".", "", 1)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Empty()
	}
	f, _ := d.Float64()
	return Of(f)
}

func isThousandsGroup(digits string) bool {
	if len(digits) != 3 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseMoney parses a monetary amount typed into the form. Amounts are in
// reais, so "1.500" is fifteen hundred.
func ParseMoney(text string) Value {
	return parseNumber(text, true)
}

// ParsePercent parses a percentage typed into the form. The result stays in
// percent units, e.g. "0,3%" is 0.3.
func ParsePercent(text string) Value {
	return ParseNumber(text)
}
