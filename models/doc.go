// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Puzzle: id, flavor text, and exactly two Parts
  - Part: the six text fields of one scoring unit
  - Solution: expected answers, compared but never rendered
  - Obfuscation: internal id <-> URL key <-> content key
  - ProgressVector: [10][2]bool solved state
  - ProgressRecord: durable progress row for an identified user
  - Champion: a user whose vector is fully true

# Request Types

  - SubmitAnswerRequest: part, answer
  - UpdatePuzzleRequest: parts, flavor
  - UpdateSettingsRequest: guild, channels, permitted, release

# Response Types

  - IndexResponse: release, login state, progress
  - ChallengeResponse: puzzle content with progress-selected forms
  - SubmitAnswerResponse: correct, message
  - UpdatePuzzleResponse / UpdateSettingsResponse: "updated" or "no_change"
  - AdminSettingsResponse: guild, channels, permitted, release
  - AccessResponse: flavor
  - ChampionsResponse: champions
  - ErrorResponse: error, message

# Constants

The deployment shape and the permanent admin:

	PuzzleCount       = 10
	PartCount         = 2
	PrivilegedAdminID = "609283782897303554"
*/
package models
