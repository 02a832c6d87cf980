// Package registrarsdk holds the wire types of the registrar API, the request
// validation shared by the server and its clients, and a small Go client.
//
// The client keeps the session cookie in a cookie jar, so a single Client
// behaves like one browser:
//
//	c := registrarsdk.NewClient("http://localhost:8080")
//	if _, err := c.Login(ctx, "admin", password); err != nil {
//		return err
//	}
//	stats, err := c.GetStatistics(ctx)
package registrarsdk
