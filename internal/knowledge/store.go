package knowledge

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spacesedan/sentidesk/internal/models"
	"gopkg.in/yaml.v3"
)

var (
	ErrDuplicateID = errors.New("duplicate article id")
	ErrEmptyTitle  = errors.New("article title is empty")
)

// DefaultArticles is the built-in help center.
var DefaultArticles = []models.Article{
	{ID: 1, Title: "Reset Password", Content: "To reset your password, click 'Forgot Password' on the login page."},
	{ID: 2, Title: "Update Email", Content: "Go to account settings to update your email address."},
	{ID: 3, Title: "Cancel Subscription", Content: "Contact support to cancel your subscription."},
}

// Store is an immutable, ordered set of articles. It is safe for any number of
// concurrent readers.
type Store struct {
	articles []models.Article
	byID     map[int]int
}

func NewStore(articles []models.Article) (*Store, error) {
	s := &Store{
		articles: make([]models.Article, 0, len(articles)),
		byID:     make(map[int]int, len(articles)),
	}

	for _, a := range articles {
		if strings.TrimSpace(a.Title) == "" {
			return nil, fmt.Errorf("article %d: %w", a.ID, ErrEmptyTitle)
		}
		if _, exists := s.byID[a.ID]; exists {
			return nil, fmt.Errorf("article %d: %w", a.ID, ErrDuplicateID)
		}
		s.byID[a.ID] = len(s.articles)
		s.articles = append(s.articles, a)
	}

	return s, nil
}

// Default returns a store holding DefaultArticles.
func Default() *Store {
	s, err := NewStore(DefaultArticles)
	if err != nil {
		panic(fmt.Errorf("[Knowledge] default articles are invalid: %w", err))
	}
	return s
}

// Articles returns a copy so callers cannot mutate the store.
func (s *Store) Articles() []models.Article {
	return append([]models.Article(nil), s.articles...)
}

func (s *Store) Get(id int) (models.Article, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return models.Article{}, false
	}
	return s.articles[idx], true
}

func (s *Store) Len() int {
	return len(s.articles)
}

type yamlFile struct {
	Articles []models.Article `yaml:"articles"`
}

// LoadYAML reads a knowledge base file of the form:
//
//	articles:
//	  - id: 1
//	    title: Reset Password
//	    content: ...
func LoadYAML(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}

	var file yamlFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}

	return NewStore(file.Articles)
}
