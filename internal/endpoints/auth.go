package endpoints

import "context"

// ChallengeRequest starts the display-code auth flow (§6.1).
type ChallengeRequest struct {
	AppName string `json:"app_name" validate:"required"`
}

type challengeResponse struct {
	ChallengeID string `json:"challenge_id"`
}

// CreateChallenge requests a new challenge id for app_name. The caller
// must then prompt the user for the code shown by the host application
// and call CreateAPIKey.
func CreateChallenge(ctx context.Context, d Doer, appName string) (string, error) {
	req := ChallengeRequest{AppName: appName}
	if err := preflight("auth.create_challenge", req); err != nil {
		return "", err
	}
	var resp challengeResponse
	if err := d.PostUnauthenticated(ctx, "auth.create_challenge", "/v1/auth/challenges", req, &resp); err != nil {
		return "", err
	}
	return resp.ChallengeID, nil
}

// APIKeyRequest exchanges a challenge id and its displayed code for an
// API key.
type APIKeyRequest struct {
	ChallengeID string `json:"challenge_id" validate:"required"`
	Code        string `json:"code" validate:"required"`
}

type apiKeyResponse struct {
	APIKey string `json:"api_key"`
}

// CreateAPIKey completes the challenge flow. The returned key must be
// installed with Client.SetAPIKey before any authenticated call.
func CreateAPIKey(ctx context.Context, d Doer, challengeID, code string) (string, error) {
	req := APIKeyRequest{ChallengeID: challengeID, Code: code}
	if err := preflight("auth.create_api_key", req); err != nil {
		return "", err
	}
	var resp apiKeyResponse
	if err := d.PostUnauthenticated(ctx, "auth.create_api_key", "/v1/auth/api_keys", req, &resp); err != nil {
		return "", err
	}
	return resp.APIKey, nil
}
