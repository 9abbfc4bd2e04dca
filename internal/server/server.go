package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/mynx-softwares/billgen/internal/ledger"
	"github.com/mynx-softwares/billgen/internal/statement"
)

// New builds the echo server with all routes registered. The boundary is
// deliberately thin: it validates the patient identifier, calls the
// generator, and maps errors to HTTP statuses.
func New(gen *statement.Generator, store *ledger.Store, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	h := NewHandler(gen, store)
	h.RegisterRoutes(e)
	return e
}

// requestLogger logs one line per request via zerolog.
func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			logger.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Msg("request")
			return nil
		}
	}
}

// indexHTML is the minimal lookup form served at the root.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Patient Bill Generator</title>
</head>
<body>
  <h1>Patient Bill Generator</h1>
  <form action="/patient-pdf" method="get">
    <label for="patient_id">Patient ID</label>
    <input type="text" id="patient_id" name="patient_id" maxlength="20" required>
    <button type="submit">Generate &amp; Download Bill</button>
  </form>
</body>
</html>
`

func serveIndex(c echo.Context) error {
	return c.HTML(http.StatusOK, indexHTML)
}
