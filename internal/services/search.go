package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/embeddings"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
	"github.com/yungbote/parampara-backend/internal/platform/observability"
)

const (
	DefaultSearchLimit = 10

	documentScore = 0.8
	folkSongScore = 0.7

	keywordSnippetRunes = 200
)

// RankingMode selects how semantic results are scored.
type RankingMode string

const (
	// RankingFixed scores by content type only: documents 0.8, folk songs 0.7.
	RankingFixed RankingMode = "fixed"
	// RankingSimilarity scores by cosine similarity to the query embedding and
	// falls back to the fixed score for items without a compatible embedding.
	RankingSimilarity RankingMode = "similarity"
)

func ParseRankingMode(s string) (RankingMode, error) {
	switch RankingMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", RankingFixed:
		return RankingFixed, nil
	case RankingSimilarity:
		return RankingSimilarity, nil
	}
	return "", fmt.Errorf("unknown SEARCH_RANKING %q (want fixed or similarity)", s)
}

type SearchInput struct {
	Query      string
	SearchType string
	Language   string
	Limit      int
}

type SearchHit struct {
	Type      string   `json:"type"`
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Language  string   `json:"language,omitempty"`
	Region    string   `json:"region,omitempty"`
	Performer string   `json:"performer,omitempty"`
	Score     *float64 `json:"score,omitempty"`
}

type SearchResponse struct {
	Query      string              `json:"query"`
	SearchType heritage.SearchType `json:"search_type"`
	Results    []SearchHit         `json:"results"`
	TotalFound int                 `json:"total_found"`
}

type SearchService interface {
	Search(ctx context.Context, in SearchInput) (*SearchResponse, error)
}

type searchService struct {
	log       *logger.Logger
	documents repos.DocumentRepo
	songs     repos.FolkSongRepo
	embedder  embeddings.Embedder
	ranking   RankingMode
}

func NewSearchService(baseLog *logger.Logger, documents repos.DocumentRepo, songs repos.FolkSongRepo, embedder embeddings.Embedder, ranking RankingMode) SearchService {
	if ranking == "" {
		ranking = RankingFixed
	}
	return &searchService{
		log:       baseLog.With("service", "SearchService", "ranking", string(ranking)),
		documents: documents,
		songs:     songs,
		embedder:  embedder,
		ranking:   ranking,
	}
}

func (s *searchService) Search(ctx context.Context, in SearchInput) (*SearchResponse, error) {
	if strings.TrimSpace(in.Query) == "" {
		return nil, apierr.Validation("query is required")
	}
	searchType := heritage.SearchType(defaultString(in.SearchType, string(heritage.SearchSemantic)))
	if !searchType.Valid() {
		return nil, apierr.Validation("search_type must be semantic or keyword (got %q)", in.SearchType)
	}
	limit, err := repos.ClampLimit(in.Limit)
	if err != nil {
		return nil, err
	}

	ctx, span := observability.StartSpan(ctx, "search", "search.type", string(searchType))
	defer span.End()

	var hits []SearchHit
	if searchType == heritage.SearchKeyword {
		hits, err = s.keyword(ctx, in.Query, in.Language, limit)
	} else {
		hits, err = s.semantic(ctx, in.Query, in.Language, limit)
	}
	if err != nil {
		return nil, err
	}
	return &SearchResponse{
		Query:      in.Query,
		SearchType: searchType,
		Results:    hits,
		TotalFound: len(hits),
	}, nil
}

func (s *searchService) semantic(ctx context.Context, query, language string, limit int) ([]SearchHit, error) {
	var queryVec []float64
	if s.embedder != nil {
		v, err := s.embedder.Embed(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("embed query: %w", err)
		}
		queryVec = v
	}

	var (
		docs  []*heritage.CulturalDocument
		songs []*heritage.FolkSong
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = s.documents.List(gctx, repos.DocumentFilter{Language: language}, limit)
		return err
	})
	g.Go(func() error {
		var err error
		songs, err = s.songs.List(gctx, repos.FolkSongFilter{Language: language}, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hits := make([]SearchHit, 0, len(docs)+len(songs))
	for _, d := range docs {
		score := s.score(queryVec, d.Embeddings, documentScore)
		hits = append(hits, SearchHit{
			Type:     "document",
			ID:       d.ID,
			Title:    d.Title,
			Content:  d.OriginalText,
			Language: d.Language,
			Region:   d.Region,
			Score:    &score,
		})
	}
	for _, sg := range songs {
		score := s.score(queryVec, sg.Embeddings, folkSongScore)
		hits = append(hits, SearchHit{
			Type:      "folk_song",
			ID:        sg.ID,
			Title:     sg.Title,
			Content:   sg.Transcription,
			Performer: sg.Performer,
			Region:    sg.Region,
			Score:     &score,
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return *hits[i].Score > *hits[j].Score })
	return hits, nil
}

func (s *searchService) score(query, item []float64, fixed float64) float64 {
	if s.ranking != RankingSimilarity {
		return fixed
	}
	sim, ok := embeddings.Cosine(query, item)
	if !ok {
		return fixed
	}
	return sim
}

func (s *searchService) keyword(ctx context.Context, query, language string, limit int) ([]SearchHit, error) {
	docs, err := s.documents.List(ctx, repos.DocumentFilter{Language: language, Keyword: query}, limit)
	if err != nil {
		return nil, err
	}
	hits := make([]SearchHit, 0, len(docs))
	for _, d := range docs {
		hits = append(hits, SearchHit{
			Type:     "document",
			ID:       d.ID,
			Title:    d.Title,
			Content:  snippet(d.OriginalText, keywordSnippetRunes),
			Language: d.Language,
			Region:   d.Region,
		})
	}
	return hits, nil
}

// snippet keeps the first n runes and always appends "...".
func snippet(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}
