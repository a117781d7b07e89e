package driving

import "context"

// AskPipeline answers an end-user question through the staged
// moderation -> retrieval -> generation pipeline. The returned answer is
// always user-presentable: stage failures surface as fixed fallback
// messages, never as raw errors.
type AskPipeline interface {
	Ask(ctx context.Context, question string) string
}

// Moderator decides whether a question is safe to answer.
type Moderator interface {
	Check(ctx context.Context, question string) bool
}

// Retriever answers a question with a context string assembled from the
// nearest chunks in the index.
type Retriever interface {
	Retrieve(ctx context.Context, question string) (string, error)
}

// Indexer manages the corpus index lifecycle.
type Indexer interface {
	// Ensure makes the index ready, loading it from cache or building it
	// from the corpus. Concurrent calls collapse into one build.
	Ensure(ctx context.Context) error

	// Rebuild unconditionally rebuilds from the corpus and re-uploads the
	// cache pair.
	Rebuild(ctx context.Context) error
}
