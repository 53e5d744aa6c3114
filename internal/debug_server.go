package internal

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strikeup/storage"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

//go:embed inspect.html
var templatesFS embed.FS

const DefaultPrefix = "strikeup_"

// InspectRow describes one raw key of the database.
type InspectRow struct {
	Key    string
	Type   string
	Count  string
	Detail string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix   string
	Items    []InspectRow
	Stats    map[string]any
	Snapshot storage.Snapshot
	Error    string
}

// NewInspectHandler renders the raw keys under the requested prefix and the
// decoded snapshot. It only reads from db.
func NewInspectHandler(db *badger.DB, log *slog.Logger, mapper RowMapper, statsProvider StatsProvider) http.Handler {
	tmpl := template.Must(template.New("inspect.html").Funcs(template.FuncMap{
		"minute": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	}).ParseFS(templatesFS, "inspect.html"))

	if mapper == nil {
		mapper = DefaultMapper
	}
	adapter := storage.NewBadgerAdapter(db, log)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = DefaultPrefix
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		err := db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				if err := item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.Key()), val))
					return nil
				}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Error("Key scan failed", "prefix", prefix, "error", err)
			data.Error = err.Error()
		}

		if snapshot, err := storage.LoadSnapshot(adapter); err != nil {
			data.Error = err.Error()
		} else {
			data.Snapshot = snapshot
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err = tmpl.Execute(w, data); err != nil {
			log.Error("Inspect page rendering failed", "error", err)
		}
	})
}

// StartDebugServer serves the inspect page on port in the background.
func StartDebugServer(db *badger.DB, log *slog.Logger, port int, endpoint string, statsProvider StatsProvider) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(endpoint, NewInspectHandler(db, log, nil, statsProvider))

	server := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Debug server stopped", "error", err)
		}
	}()
	return server
}

// DefaultMapper classifies snapshot keys: entity collections report their
// record count, the markers their raw value.
func DefaultMapper(key string, val []byte) InspectRow {
	row := InspectRow{
		Key:    key,
		Type:   "RAW",
		Count:  "-",
		Detail: "Size: " + strconv.Itoa(len(val)) + " bytes",
	}

	switch {
	case lo.Contains([]string{storage.UsersKey, storage.SessionsKey, storage.MatchesKey, storage.MessagesKey}, key):
		row.Type = "COLLECTION"
		var records []json.RawMessage
		if err := json.Unmarshal(val, &records); err != nil {
			row.Type = "CORRUPT"
			return row
		}
		row.Count = strconv.Itoa(len(records))
	case key == storage.CurrentUserKey:
		row.Type = "SESSION"
		var marker struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(val, &marker); err != nil {
			row.Type = "CORRUPT"
			return row
		}
		row.Detail = fmt.Sprintf("#%d %s", marker.ID, marker.Name)
	case key == storage.InitializedKey:
		row.Type = "FLAG"
		row.Detail = strings.TrimSpace(string(val))
	}
	return row
}
