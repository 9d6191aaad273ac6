package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerEventsResource(srv, svc)
	registerTasksResource(srv, svc)
	registerEventTemplate(srv, svc)
	registerVenuesResource(srv, svc)
}

func registerEventsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"agenda://events",
		"Events",
		mcp.WithResourceDescription("All calendar events passing the label filter."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		events, err := svc.ListEvents(ctx, nil)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"events": events,
			"count":  len(events),
		})
	})
}

func registerTasksResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"agenda://tasks",
		"Tasks",
		mcp.WithResourceDescription("All tasks passing the label filter."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tasks, err := svc.ListTasks(ctx, nil)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func registerEventTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"agenda://events/{id}",
		"Event Details",
		mcp.WithTemplateDescription("Detailed information about a single event."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, _ := request.Params.Arguments["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("event id is required")
		}
		dto, err := svc.EventByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"event": dto,
		})
	})
}

func registerVenuesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"agenda://venues",
		"Venues",
		mcp.WithResourceDescription("The bookable venue directory."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		venues := svc.App.Venues.Venues()
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"venues": venues,
			"count":  len(venues),
		})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
