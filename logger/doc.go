// Package logger provides structured logging built on zerolog.
//
// Fields are passed as map[string]interface{} so call sites stay readable:
//
//	log := logger.New(&logger.Config{Level: "debug", Format: "json"}, "dataprovider")
//	log.WithComponent("rest").Info("request done", logger.Fields("status", 200))
//
// Console output uses short colored level tags; JSON output is one object
// per line.
package logger
