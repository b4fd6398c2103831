// Command dbinspect prints a summary of the persisted user-state snapshot.
package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"

	"github.com/painmapapp/painmap-server/internal/domain"
)

const stateKey = "painmap:state:v1"

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, "PainMap", "data", "db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	var state domain.UserState
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(stateKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &state)
		})
	})
	if err != nil {
		log.Fatalf("Failed to read state snapshot: %v", err)
	}
	state.Normalize()

	fmt.Println("=== State Snapshot ===")
	fmt.Printf("Path:            %s\n", dbPath)
	fmt.Printf("Tried:           %d\n", len(state.Tried))
	fmt.Printf("Want to go:      %d\n", len(state.WantToGo))
	fmt.Printf("Memos:           %d\n", len(state.Memos))
	fmt.Printf("Custom bakeries: %d\n", len(state.Custom))
	fmt.Printf("Excluded:        %d\n", len(state.Excluded))
	fmt.Println()

	for _, m := range state.Memos {
		fmt.Printf("Memo %s: rating=%d photos=%d note=%q\n", m.ID, m.Rating, len(m.Photos), truncate(m.Note, 60))
	}
	for _, c := range state.Custom {
		fmt.Printf("Custom %s: %s (%s) at %.5f,%.5f\n", c.ID, c.Name, c.Type, c.Lat, c.Lng)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
