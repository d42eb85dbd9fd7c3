package insights

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatUSD renders a bar annotation such as "$120,000". Negative
// amounts keep the sign after the dollar: "$-1,500".
func FormatUSD(v float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("$%d", int64(math.RoundToEven(v)))
}
