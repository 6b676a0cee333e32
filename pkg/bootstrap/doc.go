// Package bootstrap provides common initialization utilities for applications
// embedding the reservation client:
//   - Logger setup with file rotation
//   - Redis connection management (redis-backed session storage)
//   - OpenTelemetry tracing initialization
//
// Example usage:
//
//	func main() {
//	    cfg := &Config{}
//	    if err := config.Load(cfg, config.LoadOptions{AllowNoConfig: true}); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    if err := bootstrap.InitLogger(cfg.Log); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    shutdown, err := bootstrap.InitTracing(ctx, cfg.Tracing)
//	    if err != nil {
//	        log.Warn(err)
//	    }
//	    defer shutdown(ctx)
//	}
package bootstrap
