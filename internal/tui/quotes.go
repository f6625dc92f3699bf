package tui

import "time"

// Footer quotes. The rotation is keyed on the day of year so the quote is
// stable within a session but changes daily.
var quotes = []string{
	"The expert in anything was once a beginner.",
	"Machine learning is the last invention that humanity will ever need to make.",
	"Every model you train teaches you something, even the bad ones.",
	"Consistency beats intensity. Show up every week.",
	"You don't have to be great to start, but you have to start to be great.",
	"Data is the new oil, but models are the refineries.",
	"Small progress is still progress.",
	"The best time to start was last week. The second best time is now.",
}

func dailyQuote(now time.Time) string {
	return quotes[now.YearDay()%len(quotes)]
}
