package main

import (
	"fmt"
	"io"
	"os"

	"villas/src/models"

	"ariga.io/atlas-provider-gorm/gormschema"
)

// Prints the Postgres DDL for the villa models. Used as an atlas external schema source.
func main() {
	stmts, err := gormschema.New("postgres").Load(
		&models.Villa{},
		&models.Booking{},
		&models.PaymentTransaction{},
		&models.ContactSubmission{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load gorm schema: %v\n", err)
		os.Exit(1)
	}
	io.WriteString(os.Stdout, stmts)
}
