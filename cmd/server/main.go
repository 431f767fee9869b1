// Package main is the entry point for the dirhub server.
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/init-helpful/dirhub/index"
	"github.com/init-helpful/dirhub/internal/config"
	"github.com/init-helpful/dirhub/internal/handler"
	"github.com/init-helpful/dirhub/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	idx, err := index.New(cfg.Path, cfg.Filter)
	if err != nil {
		log.Fatalf("Failed to build index: %v", err)
	}

	log.Printf("dirhub - directory index server")
	log.Printf("Config file: %s", cfg.GetConfigFilePath())
	log.Printf("Indexed root: %s (%d directories, %d files)",
		idx.Root(), len(idx.Directories()), len(idx.Files()))
	log.Printf("Server starting at: http://localhost:%d", cfg.Port)

	svc := handler.NewService(idx)
	treeHandler := handler.NewTreeHandler(svc)
	fileHandler := handler.NewFileHandler(svc)
	mutateHandler := handler.NewMutateHandler(svc)
	wsHandler := handler.NewWSHandler()

	// Setup file watcher if enabled
	if cfg.Watch {
		filter := index.NewFilter(idx.Root(), cfg.Filter)
		w, err := watcher.New(filter.Include)
		if err != nil {
			log.Printf("Warning: failed to create file watcher: %v", err)
		} else {
			w.OnChange(func(event watcher.Event) {
				if err := svc.Refresh(); err != nil {
					log.Printf("Warning: refresh after %s failed: %v", event.Path, err)
					return
				}
				wsHandler.OnFileChange(event)
				wsHandler.NotifyRefreshed()
			})
			dirs := make([]string, 0, len(idx.Directories()))
			for _, d := range idx.Directories() {
				dirs = append(dirs, d.Path)
			}
			if err := w.Start(idx.Root(), dirs); err != nil {
				log.Printf("Warning: failed to start file watcher: %v", err)
			}
			defer func() { _ = w.Stop() }()
			log.Printf("File watcher enabled")
		}
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// API routes
	api := r.Group("/api")
	{
		api.GET("/tree", treeHandler.GetTree)
		api.GET("/tree/text", treeHandler.GetTreeText)
		api.GET("/files", treeHandler.GetFiles)
		api.GET("/directories", treeHandler.GetDirectories)
		api.GET("/search", treeHandler.Search)
		api.GET("/extensions", treeHandler.GetExtensions)
		api.GET("/snapshot", treeHandler.GetSnapshot)
		api.POST("/refresh", treeHandler.Refresh)

		api.GET("/raw/*path", fileHandler.GetRaw)
		api.GET("/preview/*path", fileHandler.GetPreview)

		api.POST("/files", mutateHandler.CreateFile)
		api.PUT("/files/rename", mutateHandler.RenameFile)
		api.DELETE("/files", mutateHandler.DeleteFiles)
		api.POST("/files/move", mutateHandler.MoveFiles)
		api.POST("/directories", mutateHandler.CreateDirectory)
		api.DELETE("/directories", mutateHandler.DeleteDirectories)
		api.POST("/directories/move", mutateHandler.MoveDirectories)

		api.GET("/ws", wsHandler.HandleWS)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
