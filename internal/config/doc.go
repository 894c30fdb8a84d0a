// Package config loads boom.json, the configuration of the boom CLI.
//
// # Configuration File Structure
//
//	{
//	  "provider": "memory",
//	  "path": "/",
//	  "base": "/app",
//	  "record": true,
//	  "server": {
//	    "host": "localhost",
//	    "port": 7400
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "boom"
//	  },
//	  "tracing": {
//	    "enabled": false
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
