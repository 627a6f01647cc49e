package service

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"dataweaver-be/internal/dto"
	"dataweaver-be/internal/entity"
	"dataweaver-be/internal/pkg/logger"
	"dataweaver-be/internal/pkg/serverutils"
	"dataweaver-be/internal/repository/memory"
	"dataweaver-be/pkg/market"
	"dataweaver-be/pkg/store"

	"github.com/google/uuid"
)

var ErrSessionNotFound = serverutils.NewHttpError(404, "session not found")

// ShoppingSearcher is the outbound boundary to the shopping search API.
type ShoppingSearcher interface {
	HasCredential() bool
	SearchShopping(ctx context.Context, query string, maxResults int) ([]market.RawItem, error)
}

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	GetSessionState(ctx context.Context, sessionId string) (*dto.SessionStateResponse, error)
}

type searchService struct {
	searcher      ShoppingSearcher
	sessionRepo   *memory.SessionRepository
	exportService IExportService
	sysLogger     logger.ILogger

	defaultMaxResults int
	defaultModel      string
	trendingSize      int

	// rng feeds randomized defaults in normalization and fallback rows.
	// Injected so tests can fix a seed.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSearchService(
	searcher ShoppingSearcher,
	sessionRepo *memory.SessionRepository,
	exportService IExportService,
	sysLogger logger.ILogger,
	defaultMaxResults int,
	defaultModel string,
	rng *rand.Rand,
) ISearchService {
	return &searchService{
		searcher:          searcher,
		sessionRepo:       sessionRepo,
		exportService:     exportService,
		sysLogger:         sysLogger,
		defaultMaxResults: defaultMaxResults,
		defaultModel:      defaultModel,
		trendingSize:      5,
		rng:               rng,
	}
}

// Search runs one shopping search and installs the resulting table in the
// caller's session, replacing whatever was there. The external API is tried
// exactly once; every failure path routes to the fallback generator. The one
// deliberate asymmetry: a successful response whose rows all fail the price
// filter yields an empty "no data" table, not fallback rows.
func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = s.defaultMaxResults
	}

	rows, provenance := s.fetchRows(ctx, req.Query, maxResults)
	rows = market.Enrich(rows)

	session := s.resolveSession(req.SessionId)
	session.ResetForSearch(req.Query, rows, provenance)
	s.sessionRepo.Save(session)

	res := &dto.SearchResponse{
		SessionId:  session.ID,
		Query:      req.Query,
		Provenance: provenance,
		Products:   rows,
		Insights:   market.Summarize(rows),
		Trending:   trendingDTOs(rows, s.trendingSize),
	}

	// The search page always saves a CSV snapshot. Failure here is logged,
	// never fatal; explicit exports go through the export endpoint.
	if len(rows) > 0 {
		path, err := s.exportService.WriteTable(req.Query, rows, FormatCSV)
		if err != nil {
			s.sysLogger.Warn("search", "auto csv export failed", map[string]interface{}{
				"query": req.Query,
				"error": err.Error(),
			})
		} else {
			res.CsvPath = path
		}
	}

	s.sysLogger.Info("search", "search completed", map[string]interface{}{
		"query":      req.Query,
		"provenance": provenance,
		"rows":       len(rows),
	})
	return res, nil
}

// fetchRows walks the gateway state machine: CredentialCheck ->
// {Fallback | Requesting} -> {Fallback | Normalizing} -> Done.
func (s *searchService) fetchRows(ctx context.Context, query string, maxResults int) ([]entity.ProductRecord, entity.Provenance) {
	if !s.searcher.HasCredential() {
		s.sysLogger.Info("search", "no shopping api credential, using sample data", nil)
		return s.fallback(query, maxResults), entity.ProvenanceSample
	}

	items, err := s.searcher.SearchShopping(ctx, query, maxResults)
	if err != nil {
		s.sysLogger.Warn("search", "shopping api unavailable, using sample data", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return s.fallback(query, maxResults), entity.ProvenanceSample
	}
	if len(items) == 0 {
		return s.fallback(query, maxResults), entity.ProvenanceSample
	}

	s.mu.Lock()
	rows := make([]entity.ProductRecord, 0, len(items))
	for _, item := range items {
		record := market.NormalizeItem(item, s.rng)
		if record.Price > 0 {
			rows = append(rows, record)
		}
	}
	s.mu.Unlock()

	if len(rows) == 0 {
		// Live results existed but none survived the plausibility filter.
		return rows, entity.ProvenanceNoData
	}

	// Live tables are presented cheapest first.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Price < rows[j].Price
	})
	return rows, entity.ProvenanceLive
}

func (s *searchService) fallback(query string, maxResults int) []entity.ProductRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return market.FallbackProducts(query, maxResults, s.rng)
}

func (s *searchService) resolveSession(sessionId string) *store.Session {
	if sessionId != "" {
		if session, found := s.sessionRepo.Get(sessionId); found {
			return session
		}
	}
	return &store.Session{
		ID:          uuid.NewString(),
		OllamaModel: s.defaultModel,
	}
}

func (s *searchService) GetSessionState(ctx context.Context, sessionId string) (*dto.SessionStateResponse, error) {
	session, found := s.sessionRepo.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}
	return &dto.SessionStateResponse{
		SessionId:     session.ID,
		Query:         session.Query,
		HasTable:      session.HasTable(),
		Provenance:    session.Provenance,
		ProductCount:  len(session.Table),
		OllamaModel:   session.OllamaModel,
		DataChatTurns: len(session.DataChatMessages),
		CloudTurns:    len(session.AssistantChatMessages),
	}, nil
}

func trendingDTOs(rows []entity.ProductRecord, n int) []dto.TrendingProductDTO {
	top := market.Trending(rows, n)
	out := make([]dto.TrendingProductDTO, len(top))
	for i, r := range top {
		out[i] = dto.TrendingProductDTO{
			ProductRecord: r,
			TrendingScore: market.TrendingScore(r),
		}
	}
	return out
}
