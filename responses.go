package main

import (
	"bytes"
	"embed"
	"html/template"
	"math"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/index.html
var templates embed.FS

var format = message.NewPrinter(language.English)

var indexTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"rank":  func(i int) string { return humanize.Ordinal(i + 1) },
	"score": FormatScore,
}).ParseFS(templates, "templates/index.html"))

type IndexPage struct {
	Scores    []float64
	MaxScores int
}

// FormatScore renders whole scores with digit grouping and keeps two decimals
// otherwise.
func FormatScore(score float64) string {
	if score == math.Trunc(score) && math.Abs(score) < 1e15 {
		return format.Sprintf("%d", int64(score))
	}

	return format.Sprintf("%.2f", score)
}

func RenderIndex(scores []float64) ([]byte, error) {
	page := new(bytes.Buffer)
	if err := indexTemplate.Execute(page, IndexPage{
		Scores:    scores,
		MaxScores: MaxScores,
	}); err != nil {
		return nil, err
	}

	return page.Bytes(), nil
}
