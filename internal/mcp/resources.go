// ABOUTME: MCP resource implementations for liftlog.
// ABOUTME: Provides recent workouts, the exercise catalog, and the live session.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	recentWorkoutsURI = "liftlog://workouts/recent"
	catalogURI        = "liftlog://exercises"
	currentSessionURI = "liftlog://session/current"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentWorkoutsURI,
		Name:        "Recent Workouts",
		Description: "Last 10 saved workouts with per-workout totals",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         catalogURI,
		Name:        "Exercise Catalog",
		Description: "Every exercise definition and workout type",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         currentSessionURI,
		Name:        "Live Workout",
		Description: "The workout currently being tracked, with live timers",
		MIMEType:    "application/json",
	}, s.handleSessionResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.ListWorkouts(ctx, nil, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	summaries := make([]workoutSummary, 0, len(workouts))
	for _, w := range workouts {
		summaries = append(summaries, summarize(w))
	}
	return jsonResource(recentWorkoutsURI, map[string]any{
		"workouts": summaries,
		"count":    len(summaries),
	})
}

func (s *Server) handleCatalogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	defs, err := s.catalog.ListExerciseDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	types, err := s.repo.ListWorkoutTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout types: %w", err)
	}
	return jsonResource(catalogURI, map[string]any{
		"exercises":     defs,
		"workout_types": types,
	})
}

func (s *Server) handleSessionResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	st := statusFrom(s.session.View(), "")
	s.mu.Unlock()
	return jsonResource(currentSessionURI, st)
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
