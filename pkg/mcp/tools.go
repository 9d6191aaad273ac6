package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/label"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddEventTool(srv, svc)
	registerListEventsTool(srv, svc)
	registerGetEventTool(srv, svc)
	registerMoveEventTool(srv, svc)
	registerDeleteEventTool(srv, svc)
	registerAddTaskTool(srv, svc)
	registerListTasksTool(srv, svc)
	registerDeleteTaskTool(srv, svc)
	registerToggleLabelTool(srv, svc)
	registerListVenuesTool(srv, svc)
}

func registerAddEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_event",
		mcp.WithDescription("Create a new calendar event."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title."),
		),
		mcp.WithString("day",
			mcp.Required(),
			mcp.Description("RFC3339 timestamp for the bucket day."),
		),
		mcp.WithString("start",
			mcp.Description("Optional RFC3339 start time; defaults to the bucket day instant."),
		),
		mcp.WithString("end",
			mcp.Description("Optional RFC3339 end time; defaults to one hour after the start."),
		),
		mcp.WithString("label",
			mcp.Description("Label name from the palette."),
			mcp.Enum(label.Palette...),
		),
		mcp.WithString("description",
			mcp.Description("Optional description."),
		),
		mcp.WithString("location",
			mcp.Description("Optional free-form location."),
		),
		mcp.WithString("venue",
			mcp.Description("Optional venue id from the directory."),
		),
		mcp.WithNumber("reminder_minutes",
			mcp.Description("Minutes before the start to fire a reminder."),
			mcp.Min(0),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dayRaw, err := request.RequireString("day")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := item.ParseTime(dayRaw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid day value: %v", err)), nil
		}

		opts := AddEventOptions{
			Title:       title,
			Description: request.GetString("description", ""),
			Location:    request.GetString("location", ""),
			Label:       request.GetString("label", label.Palette[0]),
			Day:         day,
			Venue:       request.GetString("venue", ""),
			Reminder:    request.GetInt("reminder_minutes", 0),
		}
		if raw := strings.TrimSpace(request.GetString("start", "")); raw != "" {
			when, err := item.ParseTime(raw)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid start value: %v", err)), nil
			}
			opts.Start = &when
		}
		if raw := strings.TrimSpace(request.GetString("end", "")); raw != "" {
			when, err := item.ParseTime(raw)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid end value: %v", err)), nil
			}
			opts.End = &when
		}

		dto, err := svc.AddEvent(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListEventsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_events",
		mcp.WithDescription("List events whose label filter is on, optionally for a single day."),
		mcp.WithString("on",
			mcp.Description("Optional RFC3339 timestamp selecting one day."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		on, errResult := optionalDay(request)
		if errResult != nil {
			return errResult, nil
		}
		events, err := svc.ListEvents(ctx, on)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"events": events,
			"count":  len(events),
		})
	})
}

func registerGetEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_event",
		mcp.WithDescription("Fetch a single event by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.EventByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMoveEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_event",
		mcp.WithDescription("Move an event to a different day, keeping its clock times."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier to move."),
		),
		mcp.WithString("day",
			mcp.Required(),
			mcp.Description("RFC3339 timestamp for the target day."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dayRaw, err := request.RequireString("day")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := item.ParseTime(dayRaw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid day value: %v", err)), nil
		}

		dto, err := svc.MoveEvent(ctx, id, day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_event",
		mcp.WithDescription("Delete an event permanently."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteEvent(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Create a new due-dated task."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title."),
		),
		mcp.WithString("due",
			mcp.Required(),
			mcp.Description("RFC3339 timestamp for the due day."),
		),
		mcp.WithString("label",
			mcp.Description("Label name from the palette."),
			mcp.Enum(label.Palette...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dueRaw, err := request.RequireString("due")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		due, err := item.ParseTime(dueRaw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid due value: %v", err)), nil
		}

		dto, err := svc.AddTask(ctx, title, request.GetString("label", label.Palette[0]), due)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks whose label filter is on, optionally for a single due day."),
		mcp.WithString("on",
			mcp.Description("Optional RFC3339 timestamp selecting one due day."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		on, errResult := optionalDay(request)
		if errResult != nil {
			return errResult, nil
		}
		tasks, err := svc.ListTasks(ctx, on)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task permanently."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteTask(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerToggleLabelTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_label",
		mcp.WithDescription("Show or hide a label's items in event or task listings."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Collection kind the label belongs to."),
			mcp.Enum("event", "task"),
		),
		mcp.WithString("label",
			mcp.Required(),
			mcp.Description("Label name to toggle."),
		),
		mcp.WithBoolean("checked",
			mcp.Required(),
			mcp.Description("True to show the label's items, false to hide them."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kindRaw, err := request.RequireString("kind")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		name, err := request.RequireString("label")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		checked, err := request.RequireBool("checked")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		kind := item.KindEvent
		if kindRaw == string(item.KindTask) {
			kind = item.KindTask
		}
		if err := svc.ToggleLabel(ctx, kind, name, checked); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		labels, err := svc.Labels(ctx, kind)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"kind":   kindRaw,
			"labels": labels,
		})
	})
}

func registerListVenuesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_venues",
		mcp.WithDescription("List venues with their bookings and availability for a day."),
		mcp.WithString("on",
			mcp.Description("Optional RFC3339 timestamp selecting the day; defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		day := time.Now()
		if on, errResult := optionalDay(request); errResult != nil {
			return errResult, nil
		} else if on != nil {
			day = *on
		}

		statuses, err := svc.Venues(ctx, day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		payload := make([]map[string]any, 0, len(statuses))
		for _, st := range statuses {
			payload = append(payload, map[string]any{
				"venue":     st.Venue,
				"available": st.Available,
				"bookings":  toEventDTOs(st.Bookings),
			})
		}
		return toJSONResult(map[string]any{
			"venues": payload,
			"count":  len(payload),
		})
	})
}

func optionalDay(request mcp.CallToolRequest) (*time.Time, *mcp.CallToolResult) {
	raw := strings.TrimSpace(request.GetString("on", ""))
	if raw == "" {
		return nil, nil
	}
	when, err := item.ParseTime(raw)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("invalid on value: %v", err))
	}
	return &when, nil
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
