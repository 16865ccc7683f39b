// Package journy provides a Go client for the journy.io API.
//
// The client tracks events, upserts users and accounts, links devices to
// users and fetches tracking snippets. Every operation returns a Result:
// network and API failures are reported as a Result with Success set to
// false and an ErrorKind, never as a Go error. The error return is reserved
// for arguments rejected before a request is sent.
//
// Basic usage:
//
//	client, err := journy.New("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.AddEvent(ctx, journy.EventForUser("signed_in", journy.UserByID("user-1")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Success {
//	    log.Printf("tracking failed: %s", result.Error)
//	}
//
// Use a Tracker to queue calls in the background without waiting for the
// API to answer.
package journy
