// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// VerifiedRoleID is granted to members once they reach the community
// channel for a solved puzzle.
const VerifiedRoleID = "1343857328700657695"

const defaultBaseURL = "https://discord.com/api/v9"

// User is the subset of the Discord user object we consume.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Client wraps the Discord OAuth and bot endpoints this server calls.
// BaseURL and the http.Client are injectable so tests never touch the
// network.
type Client struct {
	HTTP         *http.Client
	BaseURL      string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	BotToken     string
}

func New(clientID, clientSecret, redirectURI, botToken string) *Client {
	return &Client{
		HTTP:         &http.Client{Timeout: 10 * time.Second},
		BaseURL:      defaultBaseURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		BotToken:     botToken,
	}
}

// AuthURL builds the OAuth authorization redirect target.
func (c *Client) AuthURL(state string) string {
	params := url.Values{
		"client_id":     {c.ClientID},
		"redirect_uri":  {c.RedirectURI},
		"response_type": {"code"},
		"scope":         {"identify guilds.members.read guilds.join"},
		"state":         {state},
	}
	return "https://discord.com/api/oauth2/authorize?" + params.Encode()
}

// ExchangeCode trades an authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {c.RedirectURI},
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange: status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("token exchange: no token received")
	}
	return body.AccessToken, nil
}

// FetchUser loads the authenticated user's identity.
func (c *Client) FetchUser(ctx context.Context, accessToken string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/users/@me", nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("fetch user: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("fetch user: status %d", resp.StatusCode)
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return User{}, fmt.Errorf("fetch user: %w", err)
	}
	if u.ID == "" {
		return User{}, fmt.Errorf("fetch user: empty response")
	}
	return u, nil
}

// AvatarURL resolves the CDN URL for a user's avatar, or empty when
// the user has none. Animated avatars hash with an a_ prefix and serve
// as gif.
func AvatarURL(u User) string {
	if u.Avatar == "" {
		return ""
	}
	ext := "png"
	if strings.HasPrefix(u.Avatar, "a_") {
		ext = "gif"
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.%s", u.ID, u.Avatar, ext)
}

// EnsureMember joins the user to the guild if they are not already a
// member, then grants the verified role to fresh joins.
func (c *Client) EnsureMember(ctx context.Context, guildID, userID, accessToken string) error {
	status, _, err := c.bot(ctx, http.MethodGet,
		fmt.Sprintf("/guilds/%s/members/%s", guildID, userID), nil)
	if err != nil {
		return err
	}
	if status != http.StatusNotFound {
		return nil // already a member
	}

	payload := map[string]string{"access_token": accessToken}
	status, _, err = c.bot(ctx, http.MethodPut,
		fmt.Sprintf("/guilds/%s/members/%s", guildID, userID), payload)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("guild join: status %d", status)
	}
	return c.GrantRole(ctx, guildID, userID, VerifiedRoleID)
}

// GrantRole assigns a role to a guild member.
func (c *Client) GrantRole(ctx context.Context, guildID, userID, roleID string) error {
	status, _, err := c.bot(ctx, http.MethodPut,
		fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID), nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("grant role: status %d", status)
	}
	return nil
}

// AnnounceSolve posts a congratulation to the puzzle's channel unless
// the user is already in its thread.
func (c *Client) AnnounceSolve(ctx context.Context, channelID, userID string, puzzle int) error {
	status, _, err := c.bot(ctx, http.MethodGet,
		fmt.Sprintf("/channels/%s/thread-members/%s", channelID, userID), nil)
	if err != nil {
		return err
	}
	if status == http.StatusOK {
		return nil
	}

	content := fmt.Sprintf("<@%s> solved week %d! If you'd like, please share how you arrived at the correct answer!", userID, puzzle)
	status, _, err = c.bot(ctx, http.MethodPost,
		fmt.Sprintf("/channels/%s/messages", channelID),
		map[string]string{"content": content})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("announce solve: status %d", status)
	}
	return nil
}

// bot issues one bot-authenticated API call and returns the status and
// body.
func (c *Client) bot(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bot "+c.BotToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("discord api %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("discord api %s %s: %w", method, path, err)
	}
	return resp.StatusCode, data, nil
}
