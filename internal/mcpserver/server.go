// Package mcpserver provides an MCP (Model Context Protocol) server
// that drives one LifeOS session for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/lifeos/internal/pages"
	"github.com/starford/lifeos/internal/session"
	"github.com/starford/lifeos/internal/shell"
)

// Resource URIs.
const (
	RoutesURI = "lifeos://routes"
	GuideURI  = "lifeos://guide"
)

// Server wraps the MCP server with LifeOS tools bound to a single session.
type Server struct {
	mcp     *server.MCPServer
	session *session.Session
}

// New opens a session on the dashboard and registers all LifeOS tools.
func New(sessions *session.Manager) (*Server, error) {
	sess, err := sessions.Create(pages.PathDashboard)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	s := &Server{session: sess}

	s.mcp = server.NewMCPServer(
		"LifeOS",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("navigate",
		mcp.WithDescription("Switch the mounted page. Read lifeos://routes for the valid paths. "+
			"Leaving a page cancels its pending replies and transitions."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Route path, e.g. /brain")),
	), s.navigate)

	s.mcp.AddTool(mcp.NewTool("get_view",
		mcp.WithDescription("Render the session: theme, navigation, voice panel and the mounted page."),
	), s.getView)

	s.mcp.AddTool(mcp.NewTool("toggle_theme",
		mcp.WithDescription("Flip between the dark and light theme."),
	), s.toggleTheme)

	s.mcp.AddTool(mcp.NewTool("send_message",
		mcp.WithDescription("Send a ChatHub message. Opens /chat first. "+
			"The assistant reply is appended after a short delay; call get_view to read it."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Message text")),
	), s.sendMessage)

	s.mcp.AddTool(mcp.NewTool("filter_notes",
		mcp.WithDescription("Filter Smart Brain notes by category and/or search text. Opens /brain first."),
		mcp.WithString("category", mcp.Description("Category id: all, work, personal or ideas")),
		mcp.WithString("query", mcp.Description("Case-insensitive text matched against title and body")),
	), s.filterNotes)

	s.mcp.AddTool(mcp.NewTool("toggle_task",
		mcp.WithDescription("Flip a planner task between done and not done. Opens /planner first."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Task id")),
	), s.toggleTask)

	s.mcp.AddTool(mcp.NewTool("unlock_vault",
		mcp.WithDescription("Start unlocking the Privacy Vault. Opens /vault first. "+
			"The vault reports unlocking until the transition completes."),
		mcp.WithString("method", mcp.Description("biometric, password or pin")),
	), s.unlockVault)

	s.mcp.AddTool(mcp.NewTool("lock_vault",
		mcp.WithDescription("Lock the Privacy Vault immediately. Opens /vault first."),
	), s.lockVault)

	s.mcp.AddResource(
		mcp.NewResource(RoutesURI, "Navigation",
			mcp.WithResourceDescription("The pages reachable through navigate, in menu order."),
			mcp.WithMIMEType("application/json"),
		),
		s.readRoutes,
	)
	s.mcp.AddResource(
		mcp.NewResource(GuideURI, "Usage Guide",
			mcp.WithResourceDescription("What each page does and which tools act on it."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readGuide,
	)

	return s, nil
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Session returns the session the tools act on.
func (s *Server) Session() *session.Session {
	return s.session
}

func viewResult(view session.View, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// onPage navigates to path and then applies fn to its page.
func onPage[P pages.Page](ctx context.Context, s *Server, path string, fn func(P)) (*mcp.CallToolResult, error) {
	if _, err := s.session.Navigate(ctx, path); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return viewResult(session.WithPage(ctx, s.session, fn))
}

func (s *Server) navigate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return viewResult(s.session.Navigate(ctx, path))
}

func (s *Server) getView(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return viewResult(s.session.View(ctx))
}

func (s *Server) toggleTheme(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return viewResult(s.session.Shell(ctx, func(sh *shell.Shell) { sh.ToggleTheme() }))
}

func (s *Server) sendMessage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return onPage(ctx, s, pages.PathChat, func(c *pages.Chat) { c.SendMessage(text) })
}

func (s *Server) filterNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// A key that is present applies even when empty, so "" clears the query.
	args := req.GetArguments()
	category, hasCategory := args["category"].(string)
	query, hasQuery := args["query"].(string)
	return onPage(ctx, s, pages.PathBrain, func(b *pages.Brain) {
		if hasCategory {
			b.SelectCategory(category)
		}
		if hasQuery {
			b.SetQuery(query)
		}
	})
}

func (s *Server) toggleTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("id must be a positive task id"), nil
	}
	return onPage(ctx, s, pages.PathPlanner, func(p *pages.Planner) { p.ToggleTask(id) })
}

func (s *Server) unlockVault(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	method := req.GetString("method", "")
	return onPage(ctx, s, pages.PathVault, func(v *pages.Vault) {
		if method != "" {
			v.SelectMethod(method)
		}
		v.Unlock()
	})
}

func (s *Server) lockVault(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return onPage(ctx, s, pages.PathVault, func(v *pages.Vault) { v.Lock() })
}

func (s *Server) readRoutes(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	out, err := json.MarshalIndent(pages.Routes(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      RoutesURI,
			MIMEType: "application/json",
			Text:     string(out),
		},
	}, nil
}

func (s *Server) readGuide(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GuideURI,
			MIMEType: "text/markdown",
			Text:     UsageGuide,
		},
	}, nil
}
