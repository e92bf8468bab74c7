// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package discord wraps the Discord OAuth and bot endpoints this server
calls.

# OAuth Login

	url := client.AuthURL(state)                       // redirect target
	token, err := client.ExchangeCode(ctx, code)        // code -> access token
	user, err := client.FetchUser(ctx, token)           // identity
	avatar := discord.AvatarURL(user)                   // CDN URL, gif when animated

# Community Access

After a solve, the bot brings the user into the community:

	err := client.EnsureMember(ctx, guildID, userID, accessToken)
	err = client.AnnounceSolve(ctx, channelID, userID, puzzle)

EnsureMember joins the guild only when the user is not already a member
and grants the verified role to fresh joins. AnnounceSolve posts a
congratulation unless the user is already in the channel's thread.

# Testing

BaseURL and the http.Client are plain fields, so tests point the client
at an httptest.Server and never touch the network.
*/
package discord
