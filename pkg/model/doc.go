// Package model defines the database models for RecallKit.
//
// These are GORM models mapped onto the schema created by the migrations in
// db/migrations.
//
// # Tables
//
//   - progress: one JSON document per study profile
package model
