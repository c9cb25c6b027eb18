// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/paper-tracker/internal/metadata"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

// MetadataResolver is satisfied by *metadata.Resolver.
type MetadataResolver interface {
	Resolve(ctx context.Context, sourceURL string, ov types.Overrides, bustCache bool) metadata.Resolution
}

// IngestRequest is the body of POST /papers/ingest.
type IngestRequest struct {
	SourceURL   string  `json:"sourceUrl" binding:"required,url"`
	Title       *string `json:"title"`
	Authors     *string `json:"authors"`
	Abstract    *string `json:"abstract"`
	CanonicalID *string `json:"canonicalId"`
	BustCache   bool    `json:"bustCache"`
}

// IngestResponse is the resolved record. Every string field is present;
// publishedAt is omitted when the source did not provide one.
type IngestResponse struct {
	SourceURL   string   `json:"sourceUrl"`
	Title       string   `json:"title"`
	Authors     string   `json:"authors"`
	Abstract    string   `json:"abstract"`
	CanonicalID string   `json:"canonicalId"`
	Tags        []string `json:"tags"`
	PublishedAt *string  `json:"publishedAt,omitempty"`
	Origin      string   `json:"origin"`
}

// Handler serves the ingest endpoint.
type Handler struct {
	Resolver MetadataResolver
	Log      logrus.FieldLogger
}

// RegisterRoutes adds the handler's routes to router.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/papers/ingest", h.Ingest)
}

// Ingest resolves the metadata for the posted source URL. Resolution
// failures degrade to the posted overrides; only an invalid request is
// rejected.
func (h *Handler) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	refresh, err := queryBool("refresh", c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh must be a boolean"})
		return
	}

	ov := types.Overrides{
		Title:       req.Title,
		Authors:     req.Authors,
		Abstract:    req.Abstract,
		CanonicalID: req.CanonicalID,
	}
	res := h.Resolver.Resolve(c.Request.Context(), req.SourceURL, ov, req.BustCache || refresh)
	if h.Log != nil {
		h.Log.WithFields(logrus.Fields{
			"source_url": req.SourceURL,
			"origin":     string(res.Origin),
		}).Info("ingested")
	}

	c.JSON(http.StatusOK, toResponse(req.SourceURL, res))
}

func toResponse(sourceURL string, res metadata.Resolution) IngestResponse {
	md := res.Metadata
	tags := md.Tags
	if tags == nil {
		tags = []string{}
	}
	return IngestResponse{
		SourceURL:   sourceURL,
		Title:       types.Deref(md.Title),
		Authors:     types.Deref(md.Authors),
		Abstract:    types.Deref(md.Abstract),
		CanonicalID: types.Deref(md.CanonicalID),
		Tags:        tags,
		PublishedAt: md.PublishedAt,
		Origin:      string(res.Origin),
	}
}

func queryBool(key string, c *gin.Context) (bool, error) {
	v := c.Query(key)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
