// Package serverapp assembles the HTTP application: stores over the save
// directory, the engine on top, and one route table for the UI shell.
package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/binder"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/blob"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/city"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/config"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/fragment"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/game"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/httpmw"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/journal"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/library"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/mail"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/notify"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/shop"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/userdata"
)

type Options struct {
	Config  *config.Config
	DataDir string
	Logger  *log.Logger
	// Clock defaults to the wall clock; tests inject a fake.
	Clock game.Clock
}

// NewHandler loads every save file, reconciles the day, and returns the
// wired route table.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = "data"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = game.RealClock{}
	}

	blobs, err := blob.NewFileStore(opts.DataDir)
	if err != nil {
		return nil, err
	}
	return newHandler(opts, blobs)
}

func newHandler(opts Options, blobs blob.Store) (http.Handler, error) {
	hub := notify.NewHub()

	user := userdata.NewStore(blobs, opts.Config, opts.Logger)
	if err := user.Load(); err != nil {
		return nil, err
	}
	user.SetNotifier(hub)

	journalStore := journal.NewStore(blobs, user, opts.Config, opts.Logger)
	if err := journalStore.Load(); err != nil {
		return nil, err
	}
	books := library.NewStore(blobs, opts.Logger)
	if err := books.Load(); err != nil {
		return nil, err
	}
	binderStore := binder.NewStore(blobs, user, books, opts.Config, opts.Logger)
	if err := binderStore.Load(); err != nil {
		return nil, err
	}
	binderStore.SetNotifier(hub)

	fragments := fragment.NewService(opts.Config, user, books, opts.Logger)
	fragments.SetNotifier(hub)
	mailSvc := mail.NewService(opts.Config, user, books, opts.Logger)
	mailSvc.SetNotifier(hub)
	shopSvc := shop.NewService(opts.Config, user, opts.Logger)
	citySvc := city.NewService(opts.Config, fragments, opts.Logger)

	engine := &game.Engine{
		Blobs:     blobs,
		User:      user,
		Journal:   journalStore,
		Books:     books,
		Binder:    binderStore,
		Fragments: fragments,
		Policy:    game.PolicyFromConfig(opts.Config),
		Clock:     opts.Clock,
		Logger:    opts.Logger,
	}
	engine.SetNotifier(hub)

	// Startup reconciliation: the day follows the wall clock, and saves
	// that lost their word total get it rebuilt from confirmed entries.
	engine.SyncDay()
	engine.BackfillWordCount()
	fragments.CheckMilestones(user.TotalWords())

	userHandler := userdata.NewHandler(user)
	userHandler.SetNotebookDeletedFunc(journalStore.DetachNotebook)
	journalHandler := journal.NewHandler(journalStore)
	journalHandler.SetConfirmFunc(engine.ConfirmEntry)
	libraryHandler := library.NewHandler(books)
	binderHandler := binder.NewHandler(binderStore)
	fragmentHandler := fragment.NewHandler(fragments)
	mailHandler := mail.NewHandler(mailSvc)
	shopHandler := shop.NewHandler(shopSvc)
	cityHandler := city.NewHandler(citySvc)
	gameHandler := game.NewHandler(engine)

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "ithaca",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/api/state", userHandler.State)
	mux.HandleFunc("/api/achievements", userHandler.Achievements)
	mux.HandleFunc("/api/intro/watched", userHandler.IntroWatched)
	mux.HandleFunc("/api/draft", userHandler.Draft)
	mux.HandleFunc("/api/scripts", userHandler.Scripts)
	mux.HandleFunc("/api/notebooks", userHandler.NotebooksRoot)
	mux.HandleFunc("/api/notebooks/", userHandler.NotebooksSub)

	mux.HandleFunc("/api/journal/entries", journalHandler.EntriesRoot)
	mux.HandleFunc("/api/journal/entries/", journalHandler.EntriesSub)
	mux.HandleFunc("/api/journal/trash", journalHandler.Trash)

	mux.HandleFunc("/api/room/drag", gameHandler.Drag)
	mux.HandleFunc("/api/room/layout", gameHandler.Layout)
	mux.HandleFunc("/api/day/sync", gameHandler.SyncDay)
	mux.HandleFunc("/api/reset", gameHandler.Reset)

	mux.HandleFunc("/api/library", libraryHandler.Root)
	mux.HandleFunc("/api/library/", libraryHandler.Sub)
	mux.HandleFunc("/api/binder/manuscript", binderHandler.Manuscript)
	mux.HandleFunc("/api/binder/append", binderHandler.Append)
	mux.HandleFunc("/api/binder/publish", binderHandler.Publish)
	mux.HandleFunc("/api/fragments", fragmentHandler.List)

	mux.HandleFunc("/api/mail/today", mailHandler.Today)
	mux.HandleFunc("/api/mail/archive", mailHandler.Archive)
	mux.HandleFunc("/api/mail/read", mailHandler.Read)
	mux.HandleFunc("/api/mail/reply", mailHandler.Reply)

	mux.HandleFunc("/api/shop", shopHandler.Catalog)
	mux.HandleFunc("/api/shop/buy", shopHandler.Buy)

	mux.HandleFunc("/api/city/locations", cityHandler.Locations)
	mux.HandleFunc("/api/city/visit", cityHandler.Visit)

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	mux.Handle("/ws/events", notify.WSHandler(hub, opts.Logger))

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
