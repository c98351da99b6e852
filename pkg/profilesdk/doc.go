/*
Package profilesdk is a Go client for the read-only JSON surface of the
profiles service.

	client := profilesdk.NewSDKClient("http://localhost:5000")

	health, err := client.GetReadiness(ctx)

	users, err := client.ListUsers(ctx)
	for _, u := range users.Users {
		fmt.Println(u.ID, u.FirstName, u.LastName)
	}

	user, err := client.GetUser(ctx, 42)
	if errors.Is(err, profilesdk.ErrNotFound) {
		// no such user
	}

Errors returned for non-2xx responses are *APIError values carrying the HTTP
status and the server's error code. They match the package sentinels with
errors.Is.

The server side uses the same types (and APIError.WriteError) so the wire
format is defined in exactly one place.
*/
package profilesdk
