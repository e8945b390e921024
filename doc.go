/*
Package transmission is a client for the Transmission daemon's RPC interface.

Highlights:
  - Transparent session id handshake: a 409 answer is replayed with the
    daemon-issued X-Transmission-Session-Id, shared by every call on a Client
  - One method per remote procedure, each returning a Result that separates
    daemon-reported failures from transport errors
  - Structured errors (ClientError, ErrorCode) with network classification
  - Optional zerolog logging, Prometheus metrics and client-side throttling

Quick start:

	import (
	    "context"
	    "log"

	    transmission "github.com/jfxdev/go-transmission"
	)

	func main() {
	    client, err := transmission.New(transmission.Config{
	        URL:      "http://localhost:9091/transmission/rpc",
	        Username: "admin",
	        Password: "password",
	    })
	    if err != nil {
	        log.Fatal(err)
	    }

	    result, err := client.GetTorrents(context.Background(), transmission.IDs{})
	    if err != nil {
	        log.Fatal(err)
	    }
	    if !result.OK() {
	        log.Fatalf("daemon said: %s", result.Failure())
	    }
	    log.Printf("%d torrents", len(result.Arguments.Torrents))
	}
*/
package transmission
