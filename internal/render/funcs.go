package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"yatube/internal/models"
)

var months = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"date":        FormatDate,
		"naturaltime": humanize.Time,
		"comma":       humanize.Comma,
		"int64":       func(i int) int64 { return int64(i) },
		"truncate":    models.Truncate,
		"linebreaks":  Linebreaks,
		"mediaURL":    MediaURL,
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"now":         time.Now,
	}
}

// FormatDate renders "8 марта 2024".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// Linebreaks escapes text and turns blank-line separated blocks into paragraphs.
func Linebreaks(text string) template.HTML {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")

	var b strings.Builder
	for _, block := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		for i, line := range lines {
			lines[i] = template.HTMLEscapeString(line)
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}

	return template.HTML(b.String())
}

func MediaURL(objectName string) string {
	return "/media/" + objectName
}
