package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/podparse/app/convert"
	"github.com/lysyi3m/podparse/app/podcast"
)

// NewHandler creates the HTTP handlers. maxBodySize caps accepted feed documents.
func NewHandler(maxBodySize int64, version string) *Handler {
	return &Handler{
		maxBodySize: maxBodySize,
		version:     version,
	}
}

// ParseFeed converts the feed document in the request body.
func (h *Handler) ParseFeed(c *gin.Context) {
	includeEpisodes, err := strconv.ParseBool(c.DefaultQuery("episodes", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "episodes must be a boolean"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodySize)
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "feed document is too large"})
			return
		}
		slog.Error("Failed to read request body", "error", err)
		c.JSON(http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return
	}

	start := time.Now()
	p, err := podcast.ParseBytes(data,
		podcast.WithEpisodes(includeEpisodes),
		podcast.WithLogger(slog.Default()))
	if err != nil {
		err = convert.Diagnose(data, err)
		kind := podcast.Kind(err)
		slog.Debug("Feed rejected", "kind", kind, "size", len(data), "error", err)
		c.JSON(statusFor(kind), errorResponse{Error: err.Error(), Kind: kind})
		return
	}

	slog.Debug("Feed parsed",
		"title", p.Meta.String("title"),
		"episodes", len(p.Episodes),
		"size", len(data),
		"duration", time.Since(start))

	c.Header("X-Feed-Episodes", strconv.Itoa(len(p.Episodes)))
	c.JSON(http.StatusOK, p)
}

// statusFor maps an engine error kind onto an HTTP status.
func statusFor(kind string) int {
	switch kind {
	case "MissingElement":
		return http.StatusUnprocessableEntity
	case "ParseFailure", "UndefinedEntity":
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// GetHealth reports liveness and the running version.
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
