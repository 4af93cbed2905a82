package lsp

import "sync"

// Document is an open palette file and its latest analysis.
type Document struct {
	Content string
	Version int32
	Result  *AnalysisResult

	// LastParsed is the latest result whose content parsed as HCL. It lags
	// Result while the user is mid-edit.
	LastParsed *AnalysisResult
}

// DocumentStore holds open documents keyed by URI. Every write re-analyzes
// the content so readers always see a result that matches it.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]Document)}
}

// Open stores content for uri and returns its analysis.
func (s *DocumentStore) Open(uri string, version int32, content string) *AnalysisResult {
	return s.set(uri, version, content)
}

// Update replaces the content of uri. Stale versions are ignored and the
// current analysis is returned.
func (s *DocumentStore) Update(uri string, version int32, content string) *AnalysisResult {
	s.mu.RLock()
	cur, ok := s.docs[uri]
	s.mu.RUnlock()
	if ok && version < cur.Version {
		return cur.Result
	}
	return s.set(uri, version, content)
}

func (s *DocumentStore) set(uri string, version int32, content string) *AnalysisResult {
	doc := Document{Content: content, Version: version, Result: Analyze(uri, content)}
	doc.LastParsed = doc.Result

	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.docs[uri]
	if ok && version < cur.Version {
		return cur.Result
	}
	if doc.Result.SyntaxError && ok {
		doc.LastParsed = cur.LastParsed
	}
	s.docs[uri] = doc
	return doc.Result
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *DocumentStore) Get(uri string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}
