// Package report renders the fixed-width console tables for both
// pipelines.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/yschen25/apprank/internal/scrape"
	"github.com/yschen25/apprank/internal/storage"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// RenderRanking prints the scrape-pipeline summary. Failure records
// show the 錯誤 marker in the ranking column and carry the error message
// on a continuation row.
func RenderRanking(w io.Writer, records []scrape.AppRecord) {
	fmt.Fprintln(w, "\n=== App Store 應用程式排名 ===")
	fmt.Fprintf(w, "抓取時間: %s\n", time.Now().Format("2006-01-02 15:04:05"))

	t := newTable(w)
	t.AppendHeader(table.Row{"排名", "應用程式名稱", "網址"})
	for _, rec := range records {
		if rec.Failed() {
			t.AppendRow(table.Row{"錯誤", rec.Name, rec.URL})
			t.AppendRow(table.Row{"", "錯誤信息: " + rec.Error, ""})
			continue
		}
		t.AppendRow(table.Row{int(rec.Ranking), rec.Name, rec.URL})
	}
	t.Render()
}

// RenderApps prints the database query result for the top-ranked apps.
func RenderApps(w io.Writer, apps []storage.AppRow) {
	fmt.Fprintln(w, "\n=== App Store 應用程式排名 (資料庫查詢結果) ===")
	fmt.Fprintf(w, "查詢時間: %s\n", time.Now().Format("2006-01-02 15:04:05"))

	t := newTable(w)
	t.AppendHeader(table.Row{"排名", "應用程式名稱", "版本", "日期", "網址"})
	for _, app := range apps {
		t.AppendRow(table.Row{app.Ranking, app.Name, app.Version, app.Date, app.URL})
	}
	t.Render()
}

// RenderErrors prints the most recent failure records. Nothing is
// printed when there are none.
func RenderErrors(w io.Writer, errs []storage.ErrorRow) {
	if len(errs) == 0 {
		return
	}

	fmt.Fprintln(w, "\n=== 錯誤記錄 ===")
	t := newTable(w)
	t.AppendHeader(table.Row{"應用程式名稱", "網址", "錯誤信息"})
	for _, e := range errs {
		t.AppendRow(table.Row{e.Name, e.URL, e.Message})
	}
	t.Render()
}
