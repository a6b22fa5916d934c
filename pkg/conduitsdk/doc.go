/*
Package conduitsdk provides the wire types and a small client for the conduit
user service.

# Overview

The same request and response types are used by the server handlers and by
Client, so both sides agree on the JSON shape:

	client := conduitsdk.NewClient("http://localhost:8080")

	// Register and log in
	user, err := client.Register(ctx, "jake", "jake@jake.jake", "jakejake")
	user, err = client.Login(ctx, "jake@jake.jake", "jakejake")

	// Authenticated calls take the token returned above
	me, err := client.CurrentUser(ctx, user.Token)

	bio := "I work at statefarm"
	me, err = client.UpdateUser(ctx, user.Token, conduitsdk.UpdateUser{Bio: &bio})

	// Profiles are public; pass "" for an anonymous lookup
	profile, err := client.Profile(ctx, "", "jake")

# Errors

Every non-2xx response is returned as an *APIError carrying the HTTP status
and the conduit error map:

	var apiErr *conduitsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity {
		fmt.Println(apiErr.Errors["email or password"]) // "is invalid"
	}
*/
package conduitsdk
