// Package app wires the report server: configuration, logging, telemetry,
// services, router and the HTTP server lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration (defaults, YAML, .env, CREW_* environment)
//	2. Initialize logging and OpenTelemetry
//	3. Create the loader, report service and health service
//	4. Set up middleware and handlers on a chi router
//	5. Configure the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication("config.yaml")
//	if err != nil {
//	    return err
//	}
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	return application.Run(ctx)
//
// Run returns once ctx is cancelled and in-flight requests have drained
// within Server.ShutdownTimeout. The package never calls os.Exit.
package app
