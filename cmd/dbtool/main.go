// dbtool manages the database behind the demo API.
//
// Usage:
//
//	# Apply migrations and verify the schema
//	dbtool migrate up
//
//	# Roll every migration back
//	dbtool migrate down
//
//	# Insert sample data, clearing previous samples first
//	dbtool seed --clear
//
//	# Print table statistics
//	dbtool stats
//
//	# Write .env and .env.prod templates
//	dbtool init-env
package main

func main() {
	Execute()
}
