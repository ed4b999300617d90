package database

import (
	"context"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jClient wraps the Neo4j driver with a defined connect/disconnect
// lifecycle. The driver is created once at startup and passed to the ledger
// repository; nothing reaches for a global.
type Neo4jClient struct {
	Driver neo4j.DriverWithContext
}

// NewNeo4jClient connects to Neo4j with basic auth and verifies connectivity.
func NewNeo4jClient(ctx context.Context, uri, username, password string) (*Neo4jClient, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, err
	}
	return &Neo4jClient{Driver: driver}, nil
}

// Disconnect closes the Neo4j driver.
func (c *Neo4jClient) Disconnect() {
	if err := c.Driver.Close(context.Background()); err != nil {
		log.Printf("Failed to close Neo4j driver: %v", err)
	}
}
