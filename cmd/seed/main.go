package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arnavshah/campfinder-api/pkg/config"
	"github.com/arnavshah/campfinder-api/pkg/database"
	"github.com/arnavshah/campfinder-api/pkg/models"
	"github.com/google/uuid"
)

func main() {
	// Load .env from project root
	config.LoadDotEnv()

	file := flag.String("file", "", "path to a JSON array of camps")
	flag.Parse()
	if *file == "" {
		fmt.Println("Usage: go run ./cmd/seed -file camps.json")
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	camps, err := readCatalog(f)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Open(os.Getenv("DATABASE_URL"), os.Getenv("DATA_PATH"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := database.NewStore(db).ImportCamps(context.Background(), camps); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d camps\n", len(camps))
}

// readCatalog decodes camps and gives every row without an id a fresh one
func readCatalog(r io.Reader) ([]models.Camp, error) {
	var camps []models.Camp
	if err := json.NewDecoder(r).Decode(&camps); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	for i := range camps {
		c := &camps[i]
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("camp %d: name is required", i)
		}
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		for j := range c.Sessions {
			if c.Sessions[j].ID == "" {
				c.Sessions[j].ID = uuid.NewString()
			}
		}
		for j := range c.Interests {
			if c.Interests[j].ID == "" {
				c.Interests[j].ID = uuid.NewString()
			}
		}
	}
	return camps, nil
}
