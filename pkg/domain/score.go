package domain

// Score symbols as they appear in reports and exports.
// Anything outside 1..4 (including "not scored") renders as ScoreNone.
const (
	ScoreNone = "-"
)

var scoreSymbols = map[int]string{
	1: "×",
	2: "△",
	3: "◯",
	4: "◎",
}

// ScoreSymbol maps a raw score value to its display symbol.
func ScoreSymbol(score int) string {
	if s, ok := scoreSymbols[score]; ok {
		return s
	}
	return ScoreNone
}
