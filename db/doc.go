// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open maps a database type to its driver name:

	conn, err := db.Open("sqlite", "file:ideas.db")
	conn, err := db.Open("postgres", os.Getenv("DATABASE_URL"))

The driver package must be imported by the binary.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The SQL is portable across sqlite and postgres: no serial columns, no NOW(),
timestamps stored as RFC 3339 text.

# Tables

  - idea: idea records, ids assigned as max+1
  - idea_vote: at most one vote per (idea, user)
  - report: user reports, idea title copied at report time
  - developer_request: pending requests for developer access
  - account: account type per user (user, developer, admin)

# Relationships

	idea 1──* idea_vote
	idea 1──* report

Deleting an idea deletes its votes and reports in the same transaction.
*/
package db
