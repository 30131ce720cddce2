// Package vectorstore is a thin Weaviate client for the vector-search
// data-graph executor: table (class) creation, similarity search, and row
// counts. It never appears in pkg/engine, pkg/workflow, pkg/orchestration,
// pkg/registry, or pkg/validator — only the executors in pkg/executors and
// the HTTP server depend on it.
package vectorstore

import (
	"context"
	"fmt"
	"net/url"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

// Client wraps a Weaviate client.
type Client struct {
	raw *weaviate.Client
}

// Config configures a Client.
type Config struct {
	Scheme string // "http" or "https"
	Host   string // host:port, e.g. "localhost:8080"
	APIKey string // optional
}

// ConfigFromURL builds a Config from a base URL such as
// "http://localhost:8080", the form config.VectorStoreURL is stored in.
func ConfigFromURL(rawURL string) Config {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return Config{Scheme: "http", Host: rawURL}
	}
	return Config{Scheme: u.Scheme, Host: u.Host}
}

// New connects to a Weaviate instance.
func New(cfg Config) (*Client, error) {
	wcfg := weaviate.Config{
		Scheme: cfg.Scheme,
		Host:   cfg.Host,
	}
	if cfg.APIKey != "" {
		wcfg.AuthConfig = weaviate.ApiKey{Value: cfg.APIKey}
	}
	raw, err := weaviate.NewClient(wcfg)
	if err != nil {
		return nil, fmt.Errorf("vectorstore: client init failed: %w", err)
	}
	return &Client{raw: raw}, nil
}

// CreateTable creates a Weaviate class (table) named className with the
// given properties if it does not already exist. Vectors are supplied by
// the caller (Vectorizer "none"); the vector-search executor computes them
// with pkg/modelserver's Embeddings.
func (c *Client) CreateTable(ctx context.Context, className string, properties []string) error {
	_, err := c.raw.Schema().ClassGetter().WithClassName(className).Do(ctx)
	if err == nil {
		return nil
	}

	props := make([]*models.Property, 0, len(properties))
	for _, p := range properties {
		props = append(props, &models.Property{
			Name:     p,
			DataType: []string{"text"},
		})
	}

	class := &models.Class{
		Class:      className,
		Vectorizer: "none",
		Properties: props,
	}
	if err := c.raw.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		return fmt.Errorf("vectorstore: creating class %q: %w", className, err)
	}
	return nil
}

// SearchResult is one row returned by VectorSearch.
type SearchResult struct {
	Properties map[string]interface{}
	Distance   float32
}

// VectorSearch returns the k nearest rows in className to queryVector.
func (c *Client) VectorSearch(ctx context.Context, className string, queryVector []float32, k int, fields []string) ([]SearchResult, error) {
	nearVector := c.raw.GraphQL().NearVectorArgBuilder().WithVector(queryVector)

	gqlFields := make([]graphql.Field, 0, len(fields)+1)
	for _, f := range fields {
		gqlFields = append(gqlFields, graphql.Field{Name: f})
	}
	gqlFields = append(gqlFields, graphql.Field{
		Name:   "_additional",
		Fields: []graphql.Field{{Name: "distance"}},
	})

	resp, err := c.raw.GraphQL().Get().
		WithClassName(className).
		WithFields(gqlFields...).
		WithNearVector(nearVector).
		WithLimit(k).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("vectorstore: search in %q failed: %w", className, err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("vectorstore: search in %q returned GraphQL errors: %v", className, resp.Errors)
	}

	return parseGetResponse(resp, className)
}

func parseGetResponse(resp *models.GraphQLResponse, className string) ([]SearchResult, error) {
	getData, ok := resp.Data["Get"].(map[string]interface{})
	if !ok {
		return nil, nil
	}
	rows, ok := getData[className].([]interface{})
	if !ok {
		return nil, nil
	}

	results := make([]SearchResult, 0, len(rows))
	for _, row := range rows {
		obj, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		var distance float32
		if additional, ok := obj["_additional"].(map[string]interface{}); ok {
			if d, ok := additional["distance"].(float64); ok {
				distance = float32(d)
			}
		}
		delete(obj, "_additional")
		results = append(results, SearchResult{Properties: obj, Distance: distance})
	}
	return results, nil
}

// CountRows returns the number of objects stored in className.
func (c *Client) CountRows(ctx context.Context, className string) (int, error) {
	resp, err := c.raw.GraphQL().Aggregate().
		WithClassName(className).
		WithFields(graphql.Field{
			Name:   "meta",
			Fields: []graphql.Field{{Name: "count"}},
		}).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("vectorstore: count for %q failed: %w", className, err)
	}
	if len(resp.Errors) > 0 {
		return 0, fmt.Errorf("vectorstore: count for %q returned GraphQL errors: %v", className, resp.Errors)
	}

	aggregateData, ok := resp.Data["Aggregate"].(map[string]interface{})
	if !ok {
		return 0, nil
	}
	rows, ok := aggregateData[className].([]interface{})
	if !ok || len(rows) == 0 {
		return 0, nil
	}
	row, ok := rows[0].(map[string]interface{})
	if !ok {
		return 0, nil
	}
	meta, ok := row["meta"].(map[string]interface{})
	if !ok {
		return 0, nil
	}
	count, ok := meta["count"].(float64)
	if !ok {
		return 0, nil
	}
	return int(count), nil
}
