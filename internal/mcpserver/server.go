// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes planner tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/weeks/internal/calendar"
	"github.com/starford/weeks/internal/models"
	"github.com/starford/weeks/internal/planner"
)

const guideURI = "weeks://guide"

// Server wraps the MCP server with planner tools.
type Server struct {
	mcp *server.MCPServer
	svc *planner.Service
}

// New creates a new MCP server with all planner tools registered.
func New(svc *planner.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Weeks",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_week",
		mcp.WithDescription("Get the week containing a day, with its items and dates in the configured calendars."),
		mcp.WithNumber("day", mcp.Description("Days since 1970-01-01; omit for the current week")),
	), s.getWeek)

	s.mcp.AddTool(mcp.NewTool("get_year",
		mcp.WithDescription("Get the objectives of a year of the main calendar."),
		mcp.WithNumber("year", mcp.Description("Year in the main calendar; omit for the current year")),
	), s.getYear)

	s.mcp.AddTool(mcp.NewTool("add_item",
		mcp.WithDescription("Add a goal or note. With a year it becomes an objective of that year "+
			"(optionally of one season or month); otherwise it is appended to the week containing day."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Item text")),
		mcp.WithString("kind", mcp.Description("Item kind"), mcp.Enum("goal", "note")),
		mcp.WithNumber("day", mcp.Description("Any day of the target week; omit for the current week")),
		mcp.WithNumber("year", mcp.Description("Year of the main calendar for an objective")),
		mcp.WithNumber("season", mcp.Description("Season 1-4 of the objective")),
		mcp.WithNumber("month", mcp.Description("Month 1-12 of the objective")),
	), s.addItem)

	s.mcp.AddTool(mcp.NewTool("move_item",
		mcp.WithDescription("Move an item one position up or down in its week or year."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Item id")),
		mcp.WithString("direction", mcp.Required(), mcp.Enum("up", "down")),
	), s.moveItem)

	s.mcp.AddTool(mcp.NewTool("toggle_item",
		mcp.WithDescription("Flip an item between done and undone."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Item id")),
	), s.toggleItem)

	s.mcp.AddTool(mcp.NewTool("calendar_info",
		mcp.WithDescription("Month and season names of a calendar in a language."),
		mcp.WithString("calendar", mcp.Required(), mcp.Enum(calendar.VariantNames()...)),
		mcp.WithString("language", mcp.Enum(calendar.LanguageCodes()...)),
	), s.calendarInfo)

	s.mcp.AddTool(mcp.NewTool("get_planner_guide",
		mcp.WithDescription("Returns how weeks, objectives and calendars work in this planner. "+
			"Call this before adding or moving items."),
	), s.getPlannerGuide)

	s.mcp.AddResource(
		mcp.NewResource(guideURI, "Planner Guide",
			mcp.WithResourceDescription("How weeks, objectives and calendars work in this planner."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readGuideResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getWeek(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day := calendar.Day(req.GetInt("day", int(s.svc.Today())))
	view, err := s.svc.Week(ctx, day)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(view)
}

func (s *Server) getYear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var (
		view *planner.YearView
		err  error
	)
	if year := req.GetInt("year", 0); year != 0 {
		view, err = s.svc.Year(ctx, year)
	} else {
		view, err = s.svc.CurrentYear(ctx)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(view)
}

func (s *Server) addItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Text   string `json:"text"`
		Kind   string `json:"kind"`
		Day    *int   `json:"day"`
		Year   *int   `json:"year"`
		Season *int   `json:"season"`
		Month  *int   `json:"month"`
	}
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	kind := models.KindGoal
	switch args.Kind {
	case "", "goal":
	case "note":
		kind = models.KindNote
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q", args.Kind)), nil
	}

	var (
		it  *models.Item
		err error
	)
	if args.Year != nil {
		p := planner.Period{Year: *args.Year, Season: args.Season, Month: args.Month}
		it, err = s.svc.AddObjective(ctx, p, kind, args.Text)
	} else {
		day := s.svc.Today()
		if args.Day != nil {
			day = calendar.Day(*args.Day)
		}
		it, err = s.svc.AddWeekItem(ctx, day, kind, args.Text)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(planner.ItemView(it, s.svc.Settings()))
}

func (s *Server) moveItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dir, err := req.RequireString("direction")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	it, err := s.svc.MoveItem(ctx, int64(id), planner.Direction(dir))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(planner.ItemView(it, s.svc.Settings()))
}

func (s *Server) toggleItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	it, err := s.svc.ToggleItem(ctx, int64(id))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(planner.ItemView(it, s.svc.Settings()))
}

func (s *Server) calendarInfo(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("calendar")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, err := calendar.ParseVariant(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lang := s.svc.Settings().PairFor(v).Language
	if code := req.GetString("language", ""); code != "" {
		if lang, err = calendar.ParseLanguage(code); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	md, err := s.svc.CalendarInfo(v, lang)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(md)
}

func (s *Server) getPlannerGuide(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(PlannerGuide), nil
}

func (s *Server) readGuideResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      guideURI,
			MIMEType: "text/markdown",
			Text:     PlannerGuide,
		},
	}, nil
}
