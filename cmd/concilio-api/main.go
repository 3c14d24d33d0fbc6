package main

import (
	"context"
	"log"
	"net/http"

	"github.com/concilio-labs/concilio/internal/adapters/engine"
	httpadapter "github.com/concilio-labs/concilio/internal/adapters/http"
	firestorestore "github.com/concilio-labs/concilio/internal/adapters/storage/firestore"
	memstore "github.com/concilio-labs/concilio/internal/adapters/storage/memory"
	sqlitestore "github.com/concilio-labs/concilio/internal/adapters/storage/sqlite"
	"github.com/concilio-labs/concilio/internal/app/orchestrator"
	"github.com/concilio-labs/concilio/internal/app/tools"
	"github.com/concilio-labs/concilio/internal/config"
	"github.com/concilio-labs/concilio/internal/domain"
	"github.com/concilio-labs/concilio/internal/registry"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Reasoning engine: scripted mock or Gemini by ENV (useful for dev)
	var (
		eng domain.Engine
		err error
	)
	if cfg.UseMockEngine {
		log.Println("[ENGINE] Using MOCK reasoning engine")
		eng = engine.NewMock()
	} else {
		log.Println("[ENGINE] Using Gemini reasoning engine")
		eng, err = engine.NewGenaiEngine(ctx)
		if err != nil {
			log.Fatalf("error initializing Gemini engine: %v", err)
		}
	}

	// Storage: memory, SQLite or Firestore
	var factStore domain.FactStore
	var threadStore domain.ThreadStore

	switch cfg.StorageBackend {
	case "firestore":
		if cfg.GCPProjectID == "" {
			log.Fatal("CONCILIO_GCP_PROJECT is required for Firestore storage backend")
		}

		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}

		// 1 store, implements 2 interfaces
		factStore = fsStore
		threadStore = fsStore

	case "sqlite":
		log.Printf("[STORE] Using SQLite storage (path=%s)", cfg.SQLitePath)
		sqlStore, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("error initializing SQLite store: %v", err)
		}
		defer sqlStore.Close()

		factStore = sqlStore
		threadStore = sqlStore

	default:
		log.Println("[STORE] Using in-memory storage (stories are lost on restart)")
		factStore = memstore.NewFactStore()
		threadStore = memstore.NewThreadStore()
	}

	orch := orchestrator.New(registry.New(), threadStore, eng, tools.NewToolbox(factStore))

	handler := httpadapter.NewServer(orch)

	port := ":" + cfg.Port
	log.Println("Concilio API listening on port:", port)
	if err := http.ListenAndServe(port, handler); err != nil {
		log.Fatal(err)
	}
}
