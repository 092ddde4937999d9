package news

import "context"

type Article struct {
	Title string `json:"title"`
}

// UseCase lists news articles for the home screen.
type UseCase interface {
	Latest(ctx context.Context) []Article
}

type static struct{ articles []Article }

// NewStatic serves a fixed list until a real feed is wired in.
func NewStatic() UseCase {
	return &static{articles: []Article{
		{Title: "Hingem upgrade: backend replying (demo)"},
		{Title: "Enable OpenAI key to get full replies"},
		{Title: "Sports and predictions will be added soon"},
	}}
}

func (s *static) Latest(context.Context) []Article {
	out := make([]Article, len(s.articles))
	copy(out, s.articles)
	return out
}
