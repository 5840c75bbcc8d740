// Command recallkit converts Markdown notes into flashcards and serves the
// RecallKit study API.
//
// # Quick Start
//
//	# Convert notes offline
//	recallkit convert -t python notes/*.md
//
//	# Start the server (filesystem progress store)
//	recallkit server -p 8502
//
//	# Or keep progress in PostgreSQL
//	export RECALLKIT_DATABASE_URL=postgres://localhost/recallkit?sslmode=disable
//	recallkit db migrate
//	recallkit server --no-migrate
//
//	# Rebuild a topic whenever its notes change
//	recallkit watch ./notes -t python
//
// # Environment Variables
//
//   - RECALLKIT_CONFIG_PATH: directory holding recallkit.yml (default /etc/recallkit)
//   - RECALLKIT_DATA_DIR: progress directory (default /app/data/progress)
//   - RECALLKIT_BUILD_DIR: flashcard set directory (default static/web/build)
//   - RECALLKIT_API_TOKEN: bearer token for mutating requests (auth off when empty)
//   - RECALLKIT_API_BASE: API base URL handed to the study page
//   - RECALLKIT_DATABASE_URL: PostgreSQL connection string for progress
//   - AUDIT_DATABASE_URL: PostgreSQL connection string for audit messages
//   - PORT, BIND_ADDRESS: server listen address
package main
