package http

import (
	"runtime/debug"
	"time"

	"cv-builder/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Options tune the fiber app built by NewApp.
type Options struct {
	Production  bool
	BodyLimitMB int
}

// NewApp builds the fiber application with middleware and every route registered.
func NewApp(h *Handler, opts Options) *fiber.App {
	cfg := fiber.Config{
		AppName:               "cv-builder",
		ErrorHandler:          ErrorHandler(opts.Production),
		DisableStartupMessage: true,
	}
	if opts.BodyLimitMB > 0 {
		cfg.BodyLimit = opts.BodyLimitMB * 1024 * 1024
	}
	app := fiber.New(cfg)

	app.Use(accessLog)
	app.Use(recoverPanics())
	app.Use(requestid.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	cv := app.Group("/cv")
	cv.Get("/", h.ListCVs)
	cv.Post("/", h.CreateCV)
	cv.Get("/:id", h.GetCV)
	cv.Put("/:id", h.UpdateCV)
	cv.Delete("/:id", h.DeleteCV)
	cv.Post("/:id/duplicate", h.DuplicateCV)
	cv.Get("/:id/pdf", h.ExportCV)

	app.Post("/pdf/generate", h.GeneratePDF)
	app.Post("/preview", h.Preview)
	app.Post("/preview/html", h.PreviewHTML)

	s := app.Group("/sessions")
	s.Post("/", h.OpenSession)
	s.Get("/:sid", h.GetSession)
	s.Delete("/:sid", h.DiscardSession)
	s.Post("/:sid/ops", h.ApplyOp)
	s.Post("/:sid/save", h.SaveSession)
	s.Post("/:sid/export", h.ExportSession)

	app.Use(notFound)
	return app
}

// accessLog writes one event per request once the response status is final.
func accessLog(c *fiber.Ctx) error {
	start := time.Now()
	chainErr := c.Next()
	if chainErr != nil {
		if err := c.App().ErrorHandler(c, chainErr); err != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	ev := logger.Info()
	if status >= fiber.StatusInternalServerError {
		ev = logger.Warn()
	}
	ev.Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Msg("request")
	return nil
}

func recoverPanics() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace:  true,
		StackTraceHandler: logPanic,
	})
}

func logPanic(c *fiber.Ctx, e interface{}) {
	stack := string(debug.Stack())
	c.Locals(panicStackKey, stack)
	logger.Error().
		Interface("panic", e).
		Str("path", c.Path()).
		Str("stack", stack).
		Msg("recovered from panic")
}
