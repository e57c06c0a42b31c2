// Package server exposes a loaded runnable over HTTP with fiber.
//
// Every request is one invocation: the body is the input, headers, query
// and route params are visible through the req capability, and headers set
// with resp_set_header are copied to the response.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/reglet-dev/runnable-sdk/hostfuncs"
)

// Invoker runs one invocation of a module.
type Invoker interface {
	Invoke(ctx context.Context, input []byte, req *hostfuncs.Request) (hostfuncs.Outcome, error)
}

// Server routes HTTP requests to an Invoker.
type Server struct {
	app    *fiber.App
	inv    Invoker
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server answering every method on path. Path may contain
// fiber route params such as "/hello/:name".
func New(inv Invoker, path string, opts ...Option) *Server {
	s := &Server{
		inv:    inv,
		logger: slog.Default(),
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
			AppName:               "runnable-host",
		}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.app.All(path, s.handle)
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("serving runnable", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting for in-flight requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handle(c *fiber.Ctx) error {
	req := requestFrom(c)

	out, err := s.inv.Invoke(c.UserContext(), req.Body, req)
	if err != nil {
		s.logger.Error("invocation failed", "request_id", req.ID, "error", err)
		return c.Status(http.StatusInternalServerError).SendString(err.Error())
	}

	for k, v := range req.RespHeaders {
		c.Set(k, v)
	}
	c.Set("X-Request-Id", req.ID)

	if out.Err != nil {
		s.logger.Debug("module returned error", "request_id", req.ID, "code", out.Err.Code)
		return c.Status(StatusFor(out.Err.Code)).SendString(out.Err.Message)
	}
	return c.Status(http.StatusOK).Send(out.Output)
}

// StatusFor maps a RunErr code to an HTTP status. Codes outside 100..599
// become 500.
func StatusFor(code int32) int {
	if code < 100 || code > 599 {
		return http.StatusInternalServerError
	}
	return int(code)
}

func requestFrom(c *fiber.Ctx) *hostfuncs.Request {
	// fiber reuses its buffers once the handler returns
	body := append([]byte(nil), c.Body()...)
	req := hostfuncs.NewRequest(c.Method(), c.OriginalURL(), body)

	headers := http.Header{}
	for k, vals := range c.GetReqHeaders() {
		for _, v := range vals {
			headers.Add(k, v)
		}
	}
	req.SetHeaders(headers)

	for k, v := range c.AllParams() {
		req.Params[k] = v
	}
	return req
}
