package notifier

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"DailyMarketBot/internal/model"
	"DailyMarketBot/internal/recorder"
	"DailyMarketBot/internal/report"
)

// MaxMessageLength keeps each message under Telegram's 4096 character cap.
const MaxMessageLength = 4000

var ratingEmoji = map[model.Rating]string{
	model.RatingBuy:  "🟢",
	model.RatingHold: "⚪",
	model.RatingSell: "🔴",
}

// FormatDailyDigest formats a batch into one or more Telegram messages.
func FormatDailyDigest(batch *model.DailyBatch) []string {
	header := fmt.Sprintf("📊 <b>Daily Market Report</b> | %s\n%d tickers\n", html.EscapeString(batch.AsOf), len(batch.Data))

	var messages []string
	var b strings.Builder
	b.WriteString(header)
	for i := range batch.Data {
		entry := "\n" + FormatNote(&batch.Data[i])
		if utf8.RuneCountInString(b.String())+utf8.RuneCountInString(entry) > MaxMessageLength {
			messages = append(messages, b.String())
			b.Reset()
		}
		b.WriteString(entry)
	}
	return append(messages, b.String())
}

// FormatNote formats a single payload.
func FormatNote(p *model.DailyPayload) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>%s</b> %s | %s\n",
		ratingEmoji[p.Rating], html.EscapeString(p.Ticker), report.USD(p.Last), strings.ToUpper(string(p.Rating))))
	b.WriteString(fmt.Sprintf("1d %s · 5d %s · vol %s · 52w %s\n",
		report.Pct(p.Metrics.Ret1d), report.Pct(p.Metrics.Ret5d),
		report.Mult(p.Metrics.VolVs30d), report.Position(p.PosPct52w)))
	b.WriteString(fmt.Sprintf("Sentiment: %s\n", p.Sentiment))
	if p.Note != "" {
		b.WriteString(fmt.Sprintf("<i>%s</i>\n", html.EscapeString(p.Note)))
	}
	return b.String()
}

// FormatHistory lists recorded notes for one ticker, newest first.
func FormatHistory(ticker string, notes []recorder.StoredNote) string {
	if len(notes) == 0 {
		return fmt.Sprintf("No recorded notes for %s.", html.EscapeString(ticker))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>%s history</b>\n\n", html.EscapeString(ticker)))
	for _, n := range notes {
		p := n.Payload
		b.WriteString(fmt.Sprintf("%s %s %s %s pos %s\n",
			html.EscapeString(p.AsOf), ratingEmoji[p.Rating], report.USD(p.Last),
			report.Pct(p.Metrics.Ret1d), report.Position(p.PosPct52w)))
	}
	return b.String()
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	var b strings.Builder
	b.WriteString("<b>Commands</b>\n")
	b.WriteString("/note TICKER  daily note for one ticker\n")
	b.WriteString("/report  daily report for the default tickers\n")
	b.WriteString("/history TICKER  recent scheduled notes\n")
	return b.String()
}
