/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the TimeWise worklog server. Handles configuration,
  dependency injection, and graceful shutdown.

COMMANDS:
  serve   Run the HTTP API and the capacity audit scheduler (default)
  audit   Run one capacity sweep against the database and exit

STARTUP SEQUENCE (serve):
  1. Load configuration (.env, environment, flags)
  2. Initialize logger, SQLite store and settings file
  3. Pick the day locker (redis when REDIS_ADDRESS is set)
  4. Wire worklog.Service, API handler and router
  5. Start scheduler and server with graceful shutdown

FLAGS (override the environment):
  --port   HTTP server port (PORT, default: 8080)
  --db     SQLite database path (DB_PATH, default: timewise.db)
           Use ":memory:" for in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the scheduler, close redis and the database
  4. Exit

EXAMPLES:
  # Run with file database
  ./server serve --db="./data/timewise.db"

  # Shared locks across replicas
  REDIS_ADDRESS=localhost:6379 ./server serve

  # One-off capacity sweep
  ./server audit

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagPort int
	flagDB   string
)

var rootCmd = &cobra.Command{
	Use:   "timewise",
	Short: "TimeWise worklog server",
	Long: `timewise serves the timesheet entry API: rolling edit windows,
leave days and the 24h daily capacity guard, backed by SQLite.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagPort, "port", 0, "HTTP server port (overrides PORT)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (overrides DB_PATH)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(auditCmd)
}
