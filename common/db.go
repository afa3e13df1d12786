package common

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func ConnectDb() *gorm.DB {
	dbFile := os.Getenv("sqlite_db")
	log.Println("attemptConnectDb: sqlite_db from env (raw):", dbFile)
	if dbFile == "" {
		log.Println("sqlite_db not set")
		return nil
	}

	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Println("Error opening sqlite db: " + err.Error())
		return nil
	}
	log.Println("opened sqlite db at:", dbFile)
	return db
}

// PublishDir returns the directory published bundles are written under.
func PublishDir() string {
	dir := os.Getenv("PUBLISH_DIR")
	if dir == "" {
		return "./published_sites"
	}
	return dir
}

// SubdomainBase returns the base domain published sites are served from,
// e.g. "pagefab.app" turns the slug "demo" into "demo.pagefab.app".
func SubdomainBase() string {
	base := os.Getenv("SUBDOMAIN_BASE")
	if base == "" {
		return "localhost"
	}
	return base
}
