// Command concilio is the interactive surface: pick a persona, talk to it,
// switch, exit. Persona selection is governed by the modes state machine;
// everything memory-related stays in the core packages.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/concilio-labs/concilio/internal/adapters/engine"
	memstore "github.com/concilio-labs/concilio/internal/adapters/storage/memory"
	sqlitestore "github.com/concilio-labs/concilio/internal/adapters/storage/sqlite"
	"github.com/concilio-labs/concilio/internal/app/modes"
	"github.com/concilio-labs/concilio/internal/app/orchestrator"
	"github.com/concilio-labs/concilio/internal/app/tools"
	"github.com/concilio-labs/concilio/internal/domain"
	"github.com/concilio-labs/concilio/internal/registry"
)

var (
	flagUser    string
	flagSession string
	flagStorage string
	flagSQLite  string
	flagMock    bool
)

func main() {
	root := &cobra.Command{
		Use:   "concilio",
		Short: "Counseling session with three personas: advocate, opposing role-play, arbiter",
		RunE:  run,
	}

	root.Flags().StringVar(&flagUser, "user", "", "user id (required)")
	root.Flags().StringVar(&flagSession, "session", "", "session id (generated when omitted)")
	root.Flags().StringVar(&flagStorage, "storage", "memory", "storage backend: memory or sqlite")
	root.Flags().StringVar(&flagSQLite, "sqlite-path", "concilio.db", "database path for the sqlite backend")
	root.Flags().BoolVar(&flagMock, "mock", true, "use the scripted engine instead of Gemini")
	_ = root.MarkFlagRequired("user")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The core hard-fails on a missing session id; the interactive boundary
	// is the one place a fresh id may be minted.
	sessionID := flagSession
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	orch, cleanup, err := buildOrchestrator(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Printf("Concilio — session %s\n", sessionID)
	fmt.Println("Commands: /switch to change persona, /exit to quit.")

	machine := modes.NewMachine()
	scanner := bufio.NewScanner(os.Stdin)

	for machine.State() != modes.StateExited {
		select {
		case <-ctx.Done():
			machine.Exit()
			continue
		default:
		}

		switch machine.State() {
		case modes.StateSelecting:
			persona, ok := promptPersona(orch, scanner)
			if !ok {
				machine.Exit()
				continue
			}
			if err := machine.Select(persona); err != nil {
				fmt.Println(err)
			}

		case modes.StateChatting:
			persona, _ := machine.Persona()
			fmt.Printf("[%s] > ", persona)
			if !scanner.Scan() {
				machine.Exit()
				continue
			}

			line := strings.TrimSpace(scanner.Text())
			switch {
			case line == "":
				continue
			case line == "/exit":
				machine.Exit()
			case line == "/switch":
				if err := machine.Switch(); err != nil {
					fmt.Println(err)
				}
			default:
				reply, err := orch.Invoke(ctx, persona,
					domain.UserID(flagUser), domain.SessionID(sessionID), line)
				if err != nil {
					fmt.Println("error:", err)
					continue
				}
				fmt.Println(reply)
			}
		}
	}

	fmt.Println("Goodbye.")
	return nil
}

func promptPersona(orch *orchestrator.Orchestrator, scanner *bufio.Scanner) (domain.Persona, bool) {
	infos := orch.Personas()

	fmt.Println("\nChoose a persona:")
	for i, info := range infos {
		fmt.Printf("  %d. %s — %s\n", i+1, info.ID, info.Description)
	}
	fmt.Print("> ")

	if !scanner.Scan() {
		return "", false
	}
	choice := strings.TrimSpace(scanner.Text())
	if choice == "/exit" || choice == "" {
		return "", false
	}

	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(infos) {
		return infos[n-1].ID, true
	}

	persona, err := domain.ParsePersona(choice)
	if err != nil {
		fmt.Println(err)
		return promptPersona(orch, scanner)
	}
	return persona, true
}

func buildOrchestrator(ctx context.Context) (*orchestrator.Orchestrator, func(), error) {
	var eng domain.Engine
	var err error
	if flagMock {
		eng = engine.NewMock()
	} else {
		eng, err = engine.NewGenaiEngine(ctx)
		if err != nil {
			return nil, nil, err
		}
	}

	cleanup := func() {}
	var factStore domain.FactStore
	var threadStore domain.ThreadStore

	switch flagStorage {
	case "sqlite":
		store, err := sqlitestore.Open(flagSQLite)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { store.Close() }
		factStore = store
		threadStore = store
	case "memory":
		factStore = memstore.NewFactStore()
		threadStore = memstore.NewThreadStore()
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", flagStorage)
	}

	orch := orchestrator.New(registry.New(), threadStore, eng, tools.NewToolbox(factStore))
	return orch, cleanup, nil
}
