package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-inventory-server/internal/config"
	"github.com/jrsteele09/go-inventory-server/sheets"
	"github.com/jrsteele09/go-inventory-server/token"
	"github.com/jrsteele09/go-inventory-server/users"
)

// InventoryBackend is the spreadsheet-backed inventory store. The server
// only sees the row↔object mapping, never the delegated-access plumbing.
type InventoryBackend interface {
	ListItems(ctx context.Context) ([]sheets.Item, error)
	AppendItem(ctx context.Context, item sheets.Item) error
}

// Notifier delivers stock notifications to the chat-bot webhook
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Reporter produces the AI stock report from current inventory
type Reporter interface {
	Generate(ctx context.Context, items []sheets.Item) (string, error)
}

type Server struct {
	env       string // Environment (e.g., "development", "production")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	sessions  *token.SessionService
	userRepo  users.UserRepo
	inventory InventoryBackend
	notifier  Notifier
	reporter  Reporter
}

func New(cfg config.Config, userRepo users.UserRepo, inventory InventoryBackend, notifier Notifier, reporter Reporter) (*Server, error) {
	secret := cfg.GetSessionSecret()
	if secret == "" {
		return nil, fmt.Errorf("[Server New] session secret is not configured")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		sessions:  token.NewSessionService(secret, cfg.GetSessionExpiry()),
		userRepo:  userRepo,
		inventory: inventory,
		notifier:  notifier,
		reporter:  reporter,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
