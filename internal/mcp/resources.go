// ABOUTME: MCP resource implementations for habits.
// ABOUTME: Provides habits://today, habits://stats/week, habits://stats/month, and habits://categories.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/habits/internal/analytics"
	"github.com/harperreed/habits/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI      = "habits://today"
	weekStatsURI  = "habits://stats/week"
	monthStatsURI = "habits://stats/month"
	categoriesURI = "habits://categories"
)

func (s *Server) registerResources() {
	// habits://today - every habit's state plus today's reflection
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Habits",
		Description: "Completion state of every habit today, with mood and notes",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         weekStatsURI,
		Name:        "Weekly Stats",
		Description: "Daily completion rate, mood, and categories for the last 7 days",
		MIMEType:    "application/json",
	}, s.statsResource(weekStatsURI, analytics.Week))

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         monthStatsURI,
		Name:        "Monthly Stats",
		Description: "Daily completion rate, mood, and categories for the last 30 days",
		MIMEType:    "application/json",
	}, s.statsResource(monthStatsURI, analytics.Month))

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         categoriesURI,
		Name:        "Habit Categories",
		Description: "Habit count and total completions per category",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(todayURI, s.dayOutput(models.FormatDate(s.now())))
}

func (s *Server) statsResource(uri string, w analytics.Window) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return jsonResource(uri, s.summary(w))
	}
}

func (s *Server) handleCategoriesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	stats := analytics.CategoryBreakdown(s.tracker.Habits())

	palette := make(map[string]string, len(models.AllCategories))
	for _, c := range models.AllCategories {
		palette[string(c)] = c.Color()
	}

	result := map[string]interface{}{
		"categories": stats,
		"palette":    palette,
	}
	return jsonResource(categoriesURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
