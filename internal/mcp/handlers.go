package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/docfind/internal/corpus"
	"github.com/ziadkadry99/docfind/internal/search"
)

// handleSearchDocs performs a keyword search over the knowledge base.
func (s *Server) handleSearchDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	filter := search.Filter{
		Category: request.GetString("category", ""),
	}
	if tag := request.GetString("tag", ""); tag != "" {
		filter.Tags = []string{tag}
	}

	docs, idx := s.holder.Current()
	results, err := search.New(docs, idx).Search(ctx, query, filter, limit)
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			return mcp.NewToolResultError("query has no searchable terms"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleGetDocument returns the full text of one document.
func (s *Server) handleGetDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	docs, _ := s.holder.Current()
	doc, err := docs.Get(id)
	if err != nil {
		if errors.Is(err, corpus.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"No document with id %q. Use search_docs to find valid ids.", id,
			)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title: %s\nCategory: %s\nPath: %s\n", doc.Title, doc.Category, doc.Path))
	if len(doc.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("Tags: %s\n", strings.Join(doc.Tags, ", ")))
	}
	sb.WriteString("\n")
	sb.WriteString(doc.Body)
	return mcp.NewToolResultText(sb.String()), nil
}

// handleListCategories lists categories with document counts.
func (s *Server) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, _ := s.holder.Current()
	categories := docs.Categories()
	if len(categories) == 0 {
		return mcp.NewToolResultText("The knowledge base is empty. Run `docfind index` first."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d categories:\n", len(categories)))
	for _, c := range categories {
		name := c.Name
		if name == "" {
			name = "(uncategorized)"
		}
		sb.WriteString(fmt.Sprintf("- %s: %d document(s)\n", name, c.Documents))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatSearchResults converts ranked hits into text for AI agent
// consumption.
func formatSearchResults(results []search.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n--- Result %d (score: %.4f) ---\n", i+1, r.Score))
		sb.WriteString(fmt.Sprintf("ID: %s\n", r.Document.ID))
		sb.WriteString(fmt.Sprintf("Title: %s\n", r.Document.Title))
		if r.Document.Category != "" {
			sb.WriteString(fmt.Sprintf("Category: %s\n", r.Document.Category))
		}
		sb.WriteString(fmt.Sprintf("Path: %s\n", r.Document.Path))
		if len(r.Document.Tags) > 0 {
			sb.WriteString(fmt.Sprintf("Tags: %s\n", strings.Join(r.Document.Tags, ", ")))
		}
	}

	return sb.String()
}
