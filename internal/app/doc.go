// Package app wires the campaign analytics server together and manages its
// lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from environment and an optional YAML file
//	2. Initialize logging and OpenTelemetry
//	3. Resolve the demo CSV paths and load the demo dataset
//	4. Create the loader and the services
//	5. Build the chi router and the HTTP server
//
// # Usage
//
//	app, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := app.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Run blocks until SIGINT or SIGTERM, then shuts the server down and flushes
// telemetry. Initialization errors are returned; the package never calls
// os.Exit.
package app
