package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query   string   // User's search text
	Types   []string // Pin types to include (empty = all)
	Regions []string // Regions to include (empty = all)

	Limit  int
	Offset int
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:  50,
		Offset: 0,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string      `json:"query"`
	Total  uint64      `json:"total"`
	TookMs int64       `json:"took_ms"`
	Hits   []SearchHit `json:"hits"`
}

// SearchHit represents a single matching pin.
type SearchHit struct {
	ID     string  `json:"id"`
	Score  float64 `json:"score"`
	Name   string  `json:"name"`
	Region string  `json:"region,omitempty"`
}

// Search executes a search query against the pin index.
func (s *PinIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = DefaultSearchParams().Limit
	}

	searchQuery := buildSearchQuery(params, s.index.Mapping())
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)
	searchRequest.SortBy([]string{"-_score"})
	searchRequest.Fields = []string{"name", "region"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}
		if n, ok := hit.Fields["name"].(string); ok {
			searchHit.Name = n
		}
		if r, ok := hit.Fields["region"].(string); ok {
			searchHit.Region = r
		}
		result.Hits = append(result.Hits, searchHit)
	}

	return result, nil
}

// MatchingIDs runs the query and returns just the matching pin IDs, in score
// order. Used by the pin listing to intersect search results with filters.
func (s *PinIndex) MatchingIDs(ctx context.Context, text string, limit int) ([]string, error) {
	result, err := s.Search(ctx, SearchParams{Query: text, Limit: limit})
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(result.Hits))
	for i, hit := range result.Hits {
		ids[i] = hit.ID
	}
	return ids, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params SearchParams, m mapping.IndexMapping) query.Query {
	var queries []query.Query

	// Main text query across name, reading, and address. Name matches are
	// boosted hardest so "Poilâne" ranks the shop above pins whose street
	// happens to contain the word.
	if params.Query != "" {
		textQueries := []query.Query{}

		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		readingMatch := bleve.NewMatchQuery(params.Query)
		readingMatch.SetField("name_reading")
		readingMatch.SetBoost(2.0)
		textQueries = append(textQueries, readingMatch)

		addressMatch := bleve.NewMatchQuery(params.Query)
		addressMatch.SetField("address")
		addressMatch.SetBoost(1.0)
		textQueries = append(textQueries, addressMatch)

		// Fuzzy matching for typo tolerance on name. Unlike match queries,
		// fuzzy terms bypass the analyzer, so the query text is analyzed
		// here to line up with the stemmed index tokens.
		for _, term := range analyzeTerms(m, "name", params.Query) {
			fuzzyQuery := bleve.NewFuzzyQuery(term)
			fuzzyQuery.SetFuzziness(1)
			fuzzyQuery.SetField("name")
			fuzzyQuery.SetBoost(0.8)
			textQueries = append(textQueries, fuzzyQuery)
		}

		// Prefix query for autocomplete (minimum 2 chars)
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("name")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Type filter
	if len(params.Types) > 0 {
		typeQueries := make([]query.Query, len(params.Types))
		for i, t := range params.Types {
			tq := bleve.NewTermQuery(t)
			tq.SetField("type")
			typeQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(typeQueries...))
	}

	// Region filter
	if len(params.Regions) > 0 {
		regionQueries := make([]query.Query, len(params.Regions))
		for i, r := range params.Regions {
			rq := bleve.NewTermQuery(r)
			rq.SetField("region")
			regionQueries[i] = rq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(regionQueries...))
	}

	// Combine all queries with AND
	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// analyzeTerms runs text through the analyzer mapped to the field and
// returns the index-side tokens.
func analyzeTerms(m mapping.IndexMapping, field, text string) []string {
	analyzer := m.AnalyzerNamed(m.AnalyzerNameForPath(field))
	if analyzer == nil {
		return []string{strings.ToLower(text)}
	}
	tokens := analyzer.Analyze([]byte(text))
	terms := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		terms = append(terms, string(tok.Term))
	}
	return terms
}
