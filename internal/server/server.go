// Package server exposes the proposal review service over HTTP. It owns
// orchestration the core packages stay out of: staging and confirming
// conversation messages around a review call, per-conversation
// serialization, timeouts, and the title fallback.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/joelkehle/proposal-desk/internal/chatstore"
	"github.com/joelkehle/proposal-desk/internal/export"
	"github.com/joelkehle/proposal-desk/internal/review"
	"github.com/joelkehle/proposal-desk/internal/title"
)

type ReviewGenerator interface {
	Review(ctx context.Context, proposal string) (review.Outcome, error)
}

type TitleGenerator interface {
	Title(ctx context.Context, proposal, verdict string) (string, error)
}

type Config struct {
	// ReviewTimeout bounds one review request; expiry surfaces as an
	// inference failure per the error taxonomy.
	ReviewTimeout time.Duration
	// TitleTimeout bounds the cosmetic title call.
	TitleTimeout time.Duration
}

type Server struct {
	store   chatstore.API
	reviews ReviewGenerator
	titles  TitleGenerator
	pdf     export.PDFRenderer
	cfg     Config

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewServer(store chatstore.API, reviews ReviewGenerator, titles TitleGenerator, pdf export.PDFRenderer, cfg Config) http.Handler {
	return newServer(store, reviews, titles, pdf, cfg).routes()
}

func newServer(store chatstore.API, reviews ReviewGenerator, titles TitleGenerator, pdf export.PDFRenderer, cfg Config) *Server {
	if cfg.ReviewTimeout <= 0 {
		cfg.ReviewTimeout = 120 * time.Second
	}
	if cfg.TitleTimeout <= 0 {
		cfg.TitleTimeout = 20 * time.Second
	}
	return &Server{
		store:   store,
		reviews: reviews,
		titles:  titles,
		pdf:     pdf,
		cfg:     cfg,
		locks:   map[string]*sync.Mutex{},
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/health", s.handleHealth)
	mux.HandleFunc("/v1/conversations", s.handleConversations)
	mux.HandleFunc("/v1/conversations/", s.handleConversation)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{
		"ok":    false,
		"error": map[string]any{"code": code, "message": msg},
	})
}

func writeStoreError(w http.ResponseWriter, err error) {
	var se *chatstore.Error
	if errors.As(err, &se) {
		writeError(w, se.Status, se.Code, se.Message)
		return
	}
	writeError(w, 500, chatstore.CodeInternal, err.Error())
}

// writeReviewError maps the review error taxonomy onto HTTP. Schema
// violations are reported like inference failures: the user message was
// rolled back either way and resubmission is the only recovery.
func writeReviewError(w http.ResponseWriter, err error) {
	var ve *review.ValidationError
	if errors.As(err, &ve) {
		writeError(w, 400, "validation", ve.Error())
		return
	}
	if review.IsSchemaViolation(err) {
		writeError(w, 502, "schema_violation", err.Error())
		return
	}
	if review.IsInference(err) {
		writeError(w, 502, "inference_failed", err.Error())
		return
	}
	writeError(w, 500, "internal", err.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]any{"ok": true})
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
		writeJSON(w, 200, map[string]any{"conversations": s.store.ListConversations(userID)})
	case http.MethodPost:
		var body struct {
			UserID string `json:"user_id"`
			Title  string `json:"title"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, 400, "validation", "invalid json: "+err.Error())
			return
		}
		conv, err := s.store.CreateConversation(chatstore.CreateConversationInput{
			UserID: body.UserID,
			Title:  body.Title,
		})
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"conversation": conv})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/conversations/")
	rest = strings.TrimSuffix(rest, "/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, 400, "validation", "conversation id is required")
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		s.handleGet(w, id)
	case action == "" && r.Method == http.MethodDelete:
		s.handleDelete(w, id)
	case action == "review" && r.Method == http.MethodPost:
		s.handleReview(w, r, id)
	case action == "export" && r.Method == http.MethodGet:
		s.handleExport(w, id)
	case action == "export.pdf" && r.Method == http.MethodGet:
		s.handleExportPDF(w, r, id)
	case action == "":
		w.WriteHeader(http.StatusMethodNotAllowed)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleGet(w http.ResponseWriter, id string) {
	conv, msgs, err := s.store.GetConversation(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"conversation": conv, "messages": msgs})
}

func (s *Server) handleDelete(w http.ResponseWriter, id string) {
	if err := s.store.DeleteConversation(id); err != nil {
		writeStoreError(w, err)
		return
	}
	s.dropConversationLock(id)
	writeJSON(w, 200, map[string]any{"ok": true})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Proposal string `json:"proposal"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, 400, "validation", "invalid json: "+err.Error())
		return
	}
	proposal := strings.TrimSpace(body.Proposal)
	if proposal == "" {
		// Rejected before any message is staged or any model call made.
		writeError(w, 400, "validation", "proposal is required")
		return
	}

	// Review submissions are serialized per conversation; deletion may still
	// race the in-flight model call and is resolved at confirm time.
	lock := s.conversationLock(id)
	lock.Lock()
	defer lock.Unlock()

	userMsg, err := s.store.StageMessage(chatstore.StageMessageInput{
		ConversationID: id,
		Role:           chatstore.RoleUser,
		Content:        chatstore.Content{Text: proposal},
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.ReviewTimeout)
	outcome, reviewErr := s.reviews.Review(ctx, proposal)
	cancel()
	if reviewErr != nil {
		// Roll the tentative user message back so the user can resubmit.
		if err := s.store.RevertMessage(id, userMsg.MessageID); err != nil {
			log.Printf("server revert message failed conversation=%s message=%s err=%v", id, userMsg.MessageID, err)
		}
		writeReviewError(w, reviewErr)
		return
	}

	if err := s.store.ConfirmMessage(id, userMsg.MessageID); err != nil {
		// The conversation was deleted while the review was in flight; the
		// result is discarded, not appended to a resurrected conversation.
		writeStoreError(w, err)
		return
	}

	rev := outcome.Review
	assistantMsg, err := s.store.StageMessage(chatstore.StageMessageInput{
		ConversationID: id,
		Role:           chatstore.RoleAssistant,
		Content:        chatstore.Content{Review: &rev},
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if err := s.store.ConfirmMessage(id, assistantMsg.MessageID); err != nil {
		writeStoreError(w, err)
		return
	}

	conv, msgs, err := s.store.GetConversation(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if len(msgs) == 2 {
		s.renameAfterFirstExchange(r.Context(), id, proposal, rev.Verdict)
		conv, _, _ = s.store.GetConversation(id)
	}

	writeJSON(w, 200, map[string]any{
		"conversation": conv,
		"message":      assistantMsg,
		"review":       rev,
		"priorArt":     outcome.PriorArt,
	})
}

// renameAfterFirstExchange titles a conversation once, after its first
// completed exchange. Title generation never fails the request; the static
// fallback is used instead.
func (s *Server) renameAfterFirstExchange(ctx context.Context, id, proposal string, verdict review.Verdict) {
	name := title.Fallback
	if s.titles != nil {
		tctx, cancel := context.WithTimeout(ctx, s.cfg.TitleTimeout)
		defer cancel()
		if t, err := s.titles.Title(tctx, proposal, string(verdict)); err != nil {
			log.Printf("server title generation failed conversation=%s err=%v", id, err)
		} else {
			name = t
		}
	}
	if err := s.store.RenameConversation(id, name); err != nil {
		log.Printf("server rename failed conversation=%s err=%v", id, err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, id string) {
	conv, msgs, err := s.store.GetConversation(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(200)
	_, _ = io.WriteString(w, export.BuildTranscript(*conv, msgs))
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request, id string) {
	if s.pdf == nil {
		writeError(w, 503, "unavailable", "pdf renderer unavailable")
		return
	}
	conv, msgs, err := s.store.GetConversation(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	pdf, err := s.pdf.Render(r.Context(), export.BuildTranscript(*conv, msgs))
	if err != nil {
		log.Printf("server render transcript pdf failed conversation=%s err=%v", id, err)
		writeError(w, 500, "internal", "failed to render pdf")
		return
	}
	filename := fmt.Sprintf("review-%s.pdf", sanitizeFilename(id))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(200)
	_, _ = w.Write(pdf)
}

func (s *Server) conversationLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// dropConversationLock removes the lock entry for a deleted conversation so
// the map does not grow for the life of the process. An in-flight review
// still holds its own reference; its confirm resolves against the deleted
// conversation either way.
func (s *Server) dropConversationLock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, id)
}

func decodeBody(r *http.Request, dst any) error {
	blob, err := io.ReadAll(io.LimitReader(r.Body, 2<<20))
	if err != nil {
		return err
	}
	if len(blob) == 0 {
		blob = []byte("{}")
	}
	return json.Unmarshal(blob, dst)
}

func sanitizeFilename(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "conversation"
	}
	v = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, v)
	return v
}
