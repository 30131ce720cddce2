package executors

import (
	"context"
	"fmt"

	"github.com/yesoreyeram/nodeflow/backend/pkg/engine"
	"github.com/yesoreyeram/nodeflow/backend/pkg/modelserver"
	"github.com/yesoreyeram/nodeflow/backend/pkg/vectorstore"
)

// VectorSearchExecutor embeds its "query" input via the modelserver client
// and searches the vectorstore class named by inputs["_data"]["class"] for
// the k nearest rows, grounding spec's "RAG indexing... vector store I/O"
// collaborator mention. Both clients are pulled from Extensions.
type VectorSearchExecutor struct{}

func (VectorSearchExecutor) Execute(ctx context.Context, _ string, inputs map[string]interface{}, _ *engine.ContextHandle, ext *engine.Extensions) (map[string]interface{}, error) {
	query, ok := stringField(inputs, "query")
	if !ok {
		return nil, fmt.Errorf("%w: vector-search requires a \"query\" input", ErrMissingInput)
	}
	class, ok := stringField(inputs, "class")
	if !ok {
		return nil, fmt.Errorf("%w: vector-search requires a \"class\" in _data", ErrMissingInput)
	}
	k := 5
	if n, ok := numberField(inputs, "k"); ok && n > 0 {
		k = int(n)
	}

	model, ok := engine.Get[*modelserver.Client](ext)
	if !ok || model == nil {
		return nil, ErrNoModelServer
	}
	store, ok := engine.Get[*vectorstore.Client](ext)
	if !ok || store == nil {
		return nil, ErrNoVectorStore
	}

	vector, err := model.Embeddings(ctx, "", query)
	if err != nil {
		return nil, fmt.Errorf("vector-search: embedding query: %w", err)
	}

	results, err := store.VectorSearch(ctx, class, vector, k, nil)
	if err != nil {
		return nil, fmt.Errorf("vector-search: %w", err)
	}

	rows := make([]interface{}, len(results))
	for i, r := range results {
		rows[i] = map[string]interface{}{
			"properties": r.Properties,
			"distance":   r.Distance,
		}
	}

	return map[string]interface{}{"results": rows, "count": len(rows)}, nil
}
