package cmd

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/lilyscore/constants"
	"github.com/jsphweid/lilyscore/lilypond"
	"github.com/jsphweid/lilyscore/logger"
	"github.com/jsphweid/lilyscore/midi"
	"github.com/jsphweid/lilyscore/model"
	"github.com/jsphweid/lilyscore/scorefile"
	"github.com/jsphweid/lilyscore/store"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetListenAddr(), "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves rendering over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := store.FromEnv()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, serveAddr, docs)
	},
}

type RenderResponse struct {
	ID     string `json:"id"`
	Source string `json:"source"`
}

type DocumentsResponse struct {
	Documents []store.Document `json:"documents"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

const requestIDHeader = "X-Request-Id"

type server struct {
	docs store.Store
}

// NewRouter wires the HTTP API around docs.
func NewRouter(docs store.Store) http.Handler {
	s := &server{docs: docs}

	router := mux.NewRouter().StrictSlash(true)
	router.Use(withRequestID)
	router.HandleFunc("/render", s.handleRender).Methods(http.MethodPost)
	router.HandleFunc("/midi", s.handleMidi).Methods(http.MethodPost)
	router.HandleFunc("/documents/{id}", s.handleGetDocument).Methods(http.MethodGet)
	router.HandleFunc("/documents", s.handleGetDocuments).Methods(http.MethodGet)

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(router)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set(requestIDHeader, id)
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.L().Info("http.request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start).String(),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Error("http.encode_failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// readScore decodes a JSON score body. It writes the error response itself
// and reports whether the caller should continue.
func readScore(w http.ResponseWriter, r *http.Request) (model.Score, bool) {
	body := http.MaxBytesReader(w, r.Body, constants.MaxRequestBytes)
	s, err := scorefile.Decode(body, scorefile.JSON)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return s, false
	}
	return s, true
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	score, ok := readScore(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	lang := q.Get("language")
	if lang == "" {
		lang = lilypond.English.String()
	}
	opts, err := renderOptions(q.Get("mode") == lilypond.Absolute.String(), lang, constants.GetLilyPondVersion())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	source, err := lilypond.RenderWithOptions(score, opts)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	doc := store.NewDocument(score, source)
	if err := s.docs.Put(r.Context(), doc); err != nil {
		logger.L().Error("http.store_failed", "id", doc.ID, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("could not store document"))
		return
	}
	writeJSON(w, http.StatusCreated, RenderResponse{ID: doc.ID, Source: source})
}

func (s *server) handleMidi(w http.ResponseWriter, r *http.Request) {
	score, ok := readScore(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := midi.WriteScore(&buf, score, midi.DefaultExportOptions()); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.docs.Get(r.Context(), mux.Vars(r)["id"])
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, doc)
	}
}

func (s *server) handleGetDocuments(w http.ResponseWriter, r *http.Request) {
	ids := r.URL.Query()["id"]
	found, err := s.docs.GetMany(r.Context(), ids)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res := DocumentsResponse{Documents: make([]store.Document, 0, len(found))}
	seen := make(map[string]bool)
	for _, id := range ids {
		if d, ok := found[id]; ok && !seen[id] {
			seen[id] = true
			res.Documents = append(res.Documents, d)
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func serve(ctx context.Context, addr string, docs store.Store) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(docs),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.L().Info("serve.listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server failed")
	}
	return nil
}
