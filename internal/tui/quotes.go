package tui

import "math/rand/v2"

var motivationalQuotes = []string{
	"The best way to predict the future is to create it.",
	"The journey of a thousand miles begins with a single step.",
	"Write it down. Make it happen.",
	"Start where you are. Use what you have. Do what you can.",
	"The only way to do great work is to love what you do.",
	"Don't watch the clock; do what it does. Keep going.",
	"Productivity is never an accident. It is always the result of a commitment to excellence.",
	"If you are persistent, you will get it. If you are consistent, you will keep it.",
}

// RandomQuote returns one motivational thought, quoted.
func RandomQuote() string {
	return `"` + motivationalQuotes[rand.IntN(len(motivationalQuotes))] + `"`
}
