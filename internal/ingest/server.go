// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest exposes metadata resolution over HTTP.
package ingest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// New builds the router: a health check on / and the ingest handler.
func New(appName string, resolver MetadataResolver, log logrus.FieldLogger) http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Page not found"})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "service": appName})
	})

	handler := Handler{Resolver: resolver, Log: log}
	handler.RegisterRoutes(router)

	return router
}
