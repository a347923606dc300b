package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/finchat-dev/finchat/internal/query"
	"github.com/finchat-dev/finchat/internal/vectordb"
)

// handleAsk runs one question through the full assistant pipeline.
func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}
	if strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("question must not be empty"), nil
	}

	userID := request.GetString("user_id", "")
	if userID == "" {
		userID = uuid.NewString()
	}

	answer := s.assistant.HandleQuery(ctx, question, userID)
	return mcp.NewToolResultText(answer.Text), nil
}

// handleSearchKnowledge retrieves the best-matching passages for a query.
func (s *Server) handleSearchKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 5)
	if limit <= 0 {
		limit = 5
	}

	if s.engine == nil {
		return mcp.NewToolResultText("No knowledge base is loaded. Run `finchat index` to build one."), nil
	}

	res := s.engine.Retrieve(ctx, query.New(text, ""), limit)
	if res.Empty() {
		return mcp.NewToolResultText("No passages matched. The knowledge base may not cover this topic yet."), nil
	}

	return mcp.NewToolResultText(vectordb.FormatMatches(res.Matches)), nil
}

// handleListIntents reports the routable intents in priority order.
func (s *Server) handleListIntents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	intents := s.assistant.Intents()
	if len(intents) == 0 {
		return mcp.NewToolResultText("No intents are configured."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d intent(s) in priority order:\n", len(intents)))
	for i, intent := range intents {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, intent))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
