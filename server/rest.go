package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/umputun/curator/pkg/domain"
	"github.com/umputun/curator/pkg/repository"
	"github.com/umputun/curator/pkg/summary"
	"github.com/umputun/curator/pkg/textproc"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// getPreferencesHandler returns preferences of the user
func (s *Server) getPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	prefs, err := s.preferences.GetPreferences(r.Context(), userID)
	if err != nil {
		lgr.Printf("[ERROR] failed to get preferences of user %d: %v", userID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if prefs == nil {
		renderError(w, r, summary.ErrPreferencesMissing, http.StatusNotFound)
		return
	}
	renderJSON(w, r, http.StatusOK, toPreferencesView(*prefs))
}

// setPreferencesHandler replaces preferences of the user, fields missing in the request get defaults
func (s *Server) setPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		lgr.Printf("[ERROR] failed to get user %d: %v", userID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if user == nil {
		renderError(w, r, fmt.Errorf("user %d not found", userID), http.StatusNotFound)
		return
	}

	view := toPreferencesView(domain.DefaultPreferences(userID))
	if err := json.NewDecoder(r.Body).Decode(&view); err != nil {
		renderError(w, r, fmt.Errorf("invalid preferences: %w", err), http.StatusBadRequest)
		return
	}
	prefs, err := view.toDomain(userID)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.preferences.SetPreferences(ctx, &prefs); err != nil {
		lgr.Printf("[ERROR] failed to save preferences of user %d: %v", userID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	lgr.Printf("[INFO] preferences of user %d updated, frequency %s", userID, prefs.Frequency)
	renderJSON(w, r, http.StatusOK, toPreferencesView(prefs))
}

// createContentHandler stores an article pushed by the scraper as a processed content item
func (s *Server) createContentHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid content: %w", err), http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	site := domain.Website{URL: req.Website.URL, Name: req.Website.Name, Category: req.Website.Category, Active: true}
	if err := s.content.UpsertWebsite(ctx, &site); err != nil {
		lgr.Printf("[ERROR] failed to store website %s: %v", site.URL, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	cleaned := textproc.Clean(req.Content)
	item := domain.ContentItem{
		WebsiteID:      site.ID,
		Title:          strings.TrimSpace(req.Title),
		Content:        req.Content,
		CleanedContent: cleaned,
		URL:            req.URL,
		Author:         req.Author,
		Category:       req.Category,
		Language:       req.Language,
		PublishedAt:    req.PublishedAt,
		WordCount:      textproc.CountWords(cleaned),
		Processed:      true,
	}
	if item.Language == "" {
		item.Language = textproc.DetectLanguage(cleaned)
	}

	if err := s.content.CreateContentItem(ctx, &item); err != nil {
		lgr.Printf("[ERROR] failed to store content item %s: %v", item.URL, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	lgr.Printf("[DEBUG] stored content item %d from %s, %d words", item.ID, site.URL, item.WordCount)
	renderJSON(w, r, http.StatusCreated, map[string]any{
		"id": item.ID, "website_id": site.ID, "language": item.Language, "word_count": item.WordCount,
	})
}

// listSummariesHandler returns recent summaries of the user
func (s *Server) listSummariesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = min(n, maxListLimit)
		}
	}

	list, err := s.summaries.ListSummaries(r.Context(), userID, limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to list summaries of user %d: %v", userID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	res := make([]summaryView, len(list))
	for i, sm := range list {
		res[i] = toSummaryView(sm, false)
	}
	renderJSON(w, r, http.StatusOK, res)
}

// generateSummaryHandler generates a digest for the user right away.
// Type defaults to the one matching user delivery frequency.
func (s *Server) generateSummaryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	summaryType := domain.SummaryType(r.URL.Query().Get("type"))
	if summaryType == "" {
		prefs, err := s.preferences.GetPreferences(ctx, userID)
		if err != nil {
			lgr.Printf("[ERROR] failed to get preferences of user %d: %v", userID, err)
			renderError(w, r, err, http.StatusInternalServerError)
			return
		}
		if prefs == nil {
			renderError(w, r, summary.ErrPreferencesMissing, http.StatusNotFound)
			return
		}
		summaryType = prefs.Frequency.SummaryType()
	}
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))

	sm, err := s.generator.Generate(ctx, userID, summaryType, summary.WithForce(force))
	if err != nil {
		renderError(w, r, err, generationStatus(err))
		return
	}
	renderJSON(w, r, http.StatusCreated, toSummaryView(*sm, true))
}

// getSummaryHandler returns a single summary
func (s *Server) getSummaryHandler(w http.ResponseWriter, r *http.Request) {
	sm, ok := s.loadSummary(w, r)
	if !ok {
		return
	}
	renderJSON(w, r, http.StatusOK, toSummaryView(*sm, true))
}

// summaryPageHandler renders a summary as HTML page
func (s *Server) summaryPageHandler(w http.ResponseWriter, r *http.Request) {
	sm, ok := s.loadSummary(w, r)
	if !ok {
		return
	}
	data := summaryPage{
		Title:     sm.Title,
		CreatedAt: sm.CreatedAt.Format("January 02, 2006 15:04"),
		ReadTime:  sm.ReadTimeMinutes,
		Articles:  len(sm.ContentItemIDs),
		Body:      renderMarkdown(sm.Text),
	}
	var buf bytes.Buffer
	if err := s.pageTmpl.ExecuteTemplate(&buf, "summary.html", data); err != nil {
		lgr.Printf("[ERROR] failed to render summary %s: %v", sm.ID, err)
		http.Error(w, "failed to render summary", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// markReadHandler marks the summary as read
func (s *Server) markReadHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.summaries.MarkRead(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrSummaryNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		lgr.Printf("[ERROR] failed to mark summary %s read: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"id": id, "status": "read"})
}

// statsHandler returns digest analytics for the configured period
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	days := s.statsDays
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	stats, err := s.summaries.Stats(r.Context(), time.Now(), days)
	if err != nil {
		lgr.Printf("[ERROR] failed to get summary stats: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, stats)
}

// loadSummary gets summary by path ID, writes error response and returns false on failure
func (s *Server) loadSummary(w http.ResponseWriter, r *http.Request) (*domain.Summary, bool) {
	id := r.PathValue("id")
	sm, err := s.summaries.GetSummary(r.Context(), id)
	if errors.Is(err, repository.ErrSummaryNotFound) {
		renderError(w, r, err, http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		lgr.Printf("[ERROR] failed to get summary %s: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return nil, false
	}
	return sm, true
}

// generationStatus maps pipeline errors to HTTP status codes
func generationStatus(err error) int {
	switch {
	case errors.Is(err, summary.ErrPreferencesMissing), errors.Is(err, summary.ErrNoCandidates):
		return http.StatusNotFound
	case errors.Is(err, summary.ErrInProgress), errors.Is(err, summary.ErrRecentSummary):
		return http.StatusConflict
	case errors.Is(err, summary.ErrGeneration):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// pathID parses numeric id path parameter
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user ID %q", r.PathValue("id"))
	}
	return id, nil
}

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))
	// markdownPolicy sanitizes HTML rendered from generated digests
	markdownPolicy = bluemonday.UGCPolicy()
)

// renderMarkdown converts markdown text to sanitized HTML
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md)) //nolint:gosec // escaped
	}
	return template.HTML(markdownPolicy.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
