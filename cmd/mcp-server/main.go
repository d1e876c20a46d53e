package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Mustasheep/nawi-agent/pkg/archdetect"
	"github.com/Mustasheep/nawi-agent/pkg/codeanalyzer"
	"github.com/Mustasheep/nawi-agent/pkg/depmapper"
	"github.com/Mustasheep/nawi-agent/pkg/qualitycheck"
	"github.com/Mustasheep/nawi-agent/pkg/usage"
	"github.com/mark3labs/mcp-go/server"
)

var (
	port         = flag.Int("port", 8080, "Port to listen on")
	baseURL      = flag.String("baseurl", "", "Base URL for the server (e.g., http://localhost:8080)")
	serverName   = flag.String("name", "Nawi Analysis Server", "Server name")
	serverVer    = flag.String("version", "1.0.0", "Server version")
	instructions = flag.String("instructions", "Static analysis tools for automated documentation generation.", "Server instructions")
	dataDir      = flag.String("data-dir", filepath.Join(".", "data"), "Directory to store data files")
)

func main() {
	flag.Parse()

	if err := os.MkdirAll(*dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	mcpServer := server.NewMCPServer(
		*serverName,
		*serverVer,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithInstructions(*instructions),
	)

	if err := usage.Init(*dataDir); err != nil {
		log.Fatalf("Failed to initialize usage manager: %v", err)
	}

	codeanalyzer.RegisterCodeAnalyzer(mcpServer)
	archdetect.RegisterArchDetect(mcpServer)
	depmapper.RegisterDepMapper(mcpServer)
	qualitycheck.RegisterQualityCheck(mcpServer)

	if err := usage.RegisterUsage(mcpServer, *dataDir); err != nil {
		log.Fatalf("Failed to register usage tool: %v", err)
	}

	baseURLValue := *baseURL
	if baseURLValue == "" {
		baseURLValue = fmt.Sprintf("http://localhost:%d", *port)
	}

	sseServer := server.NewSSEServer(
		mcpServer,
		server.WithBaseURL(baseURLValue),
		server.WithSSEEndpoint("/"),
		server.WithMessageEndpoint("/messages"),
	)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: sseServer,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[Server] Starting MCP server on port %d...", *port)
		log.Printf("[Server] Base URL: %s", baseURLValue)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] Failed to start server: %v", err)
		}
	}()

	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	log.Println("[Server] Shutting down server...")

	if manager := usage.GetManager(); manager != nil {
		usageText := usage.FormatUsage(manager.Session(), manager.Persistent())
		log.Printf("[Server] Final usage statistics:\n%s", usageText)
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("[Server] Server shutdown failed: %v", err)
	}
	log.Println("[Server] Server stopped")
}
