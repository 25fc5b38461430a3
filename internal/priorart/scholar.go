package priorart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultScholarBaseURL = "https://serpapi.com/search"
	DefaultMaxFindings    = 5
)

type ScholarConfig struct {
	APIKey      string
	BaseURL     string
	MaxFindings int
	HTTPClient  *http.Client
}

// ScholarSearcher queries a Google Scholar search API (SerpApi-compatible)
// for papers related to a proposal. It implements the same Searcher contract
// as the fixture, so the review generator never knows which backend it got.
type ScholarSearcher struct {
	cfg ScholarConfig
}

func NewScholarSearcher(cfg ScholarConfig) (*ScholarSearcher, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, errors.New("SCHOLAR_API_KEY not configured")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultScholarBaseURL
	}
	if cfg.MaxFindings <= 0 {
		cfg.MaxFindings = DefaultMaxFindings
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &ScholarSearcher{cfg: cfg}, nil
}

type scholarAPIResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic_results"`
	Error string `json:"error"`
}

func (s *ScholarSearcher) Search(ctx context.Context, query string) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, errors.New("empty prior-art query")
	}

	params := url.Values{}
	params.Set("engine", "google_scholar")
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", s.cfg.MaxFindings))
	params.Set("api_key", s.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(s.cfg.BaseURL, "/")+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, err
	}

	res, err := s.cfg.HTTPClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer res.Body.Close()
	blob, _ := io.ReadAll(io.LimitReader(res.Body, 2<<20))

	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		return Result{}, errors.New("scholar search authentication failed. Check SCHOLAR_API_KEY")
	}
	if res.StatusCode >= 400 {
		return Result{}, fmt.Errorf("scholar search status code: %d body=%s", res.StatusCode, string(blob))
	}

	var parsed scholarAPIResponse
	if err := json.Unmarshal(blob, &parsed); err != nil {
		return Result{}, err
	}
	if parsed.Error != "" {
		return Result{}, fmt.Errorf("scholar search error: %s", parsed.Error)
	}

	out := Result{Results: []Finding{}}
	for _, r := range parsed.OrganicResults {
		title := strings.TrimSpace(r.Title)
		link := strings.TrimSpace(r.Link)
		if title == "" || link == "" {
			continue
		}
		out.Results = append(out.Results, Finding{Title: title, Snippet: strings.TrimSpace(r.Snippet), Link: link})
		if len(out.Results) >= s.cfg.MaxFindings {
			break
		}
	}
	out.Summary = summarize(len(out.Results))
	return out, nil
}

func summarize(n int) string {
	switch {
	case n == 0:
		return NoPriorArtSummary
	case n == 1:
		return "One closely related publication was found; the proposal may still contain novel elements."
	default:
		return fmt.Sprintf("%d related publications were found, suggesting the area is competitive and the core idea is at least partially documented.", n)
	}
}

var _ Searcher = (*ScholarSearcher)(nil)
