package web

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"chapterquiz/internal/config"
)

const pageHead = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Chapter Quiz</title>
    <link rel="stylesheet" href="/assets/style.css" />
  </head>
  <body>
    <main>
      <header>
        <h1>Chapter Quiz</h1>
        <form id="controls">
          <select id="chapter" name="chapter">
`

const pageTail = `          </select>
          <button type="submit" id="start">Start</button>
          <button type="button" id="restart">Restart</button>
          <button type="button" id="end">End quiz</button>
        </form>
      </header>
      <section id="status" aria-live="polite"></section>
      <section id="meta">
        <span id="progress"></span>
        <span id="score"></span>
        <span id="timer"></span>
      </section>
      <div id="bar"><div id="fill"></div></div>
      <section id="question"></section>
      <ol id="options"></ol>
      <section id="explanation"></section>
      <button type="button" id="next" disabled>Next</button>
      <section id="summary"></section>
    </main>
    <script src="/assets/quiz.js"></script>
  </body>
</html>
`

// indexPage renders the page shell with one option per chapter.
func indexPage(chapters []config.ChapterConfig, defaultChapter string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(pageHead)
		for _, chapter := range chapters {
			selected := ""
			if chapter.ID == defaultChapter {
				selected = " selected"
			}
			title := chapter.Title
			if title == "" {
				title = chapter.ID
			}
			fmt.Fprintf(&b, "            <option value=\"%s\"%s>%s</option>\n",
				templ.EscapeString(chapter.ID), selected, templ.EscapeString(title))
		}
		b.WriteString(pageTail)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
