// Package app runs anyhttp route tables as a complete service: environment parsing, structured
// logging, OpenTelemetry tracing, AWS SDK clients, the framework selected at startup and graceful
// shutdown.
//
//	app.New(
//	    app.WithFx(auth.Provide, users.Module),
//	    app.WithRoutes(example.NewRoutes),
//	).Run()
//
// # Environment
//
//	| Variable               | Default      | Description                                      |
//	|------------------------|--------------|--------------------------------------------------|
//	| PORT                   | 3000         | Port the HTTP server listens on                  |
//	| FRAMEWORK              | echo         | echo, gin or chi                                 |
//	| ROUTE_PREFIX           | -            | Comma separated prefix segments for every route  |
//	| SERVICE_NAME           | anyhttp      | Service name for logging and tracing             |
//	| LOG_LEVEL              | info         | debug, info, warn or error                       |
//	| OTEL_EXPORTER          | none         | none, stdout or xrayudp                          |
//	| REQUEST_ID_HEADER      | x-request-id | Correlation id header                            |
//	| REDACT_INTERNAL_ERRORS | false        | Hide messages of unexpected errors from clients  |
//	| JWT_SECRET             | secret       | Signing key for bearer tokens                    |
//	| JWT_SECRET_ID          | -            | Secrets Manager id to read the key from instead  |
//	| JWT_SECRET_JSON_PATH   | -            | gjson path into that secret                      |
//	| JWT_SECRET_PARAMETER   | -            | SSM parameter to read the key from instead       |
//	| USERS_STORE            | memory       | memory or dynamodb                               |
//	| USERS_TABLE            | -            | DynamoDB table, required for dynamodb            |
//	| USERS_EVENTS_QUEUE_URL | -            | SQS queue for user change events                 |
//	| DOCS_PATH              | /doc         | OpenAPI document route                           |
//	| REFERENCE_PATH         | /reference   | API reference page route                         |
//	| REFERENCE_UI           | scalar       | scalar or swagger                                |
//
// # Routes
//
// Route tables are contributed with [ProvideRoutes] into one fx group. At startup they are merged,
// bound under ROUTE_PREFIX, named into the shared [anyhttp.Reverser] and registered together with
// the docs routes. A framework that registers fewer native routes than bindings fails the start.
package app
