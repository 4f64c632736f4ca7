package social

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/selivandex/btc-predictor/pkg/models"
)

const twitterAPIURL = "https://api.twitter.com/2/tweets/search/recent"

// TwitterProvider fetches posts from X (Twitter) via the recent search
// API. Requires a bearer token.
type TwitterProvider struct {
	bearerToken string
	client      *http.Client
	baseURL     string
}

// NewTwitterProvider creates new Twitter provider
func NewTwitterProvider(bearerToken string, timeout time.Duration) *TwitterProvider {
	return &TwitterProvider{
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: timeout},
		baseURL:     twitterAPIURL,
	}
}

func (t *TwitterProvider) Name() string {
	return "twitter"
}

// Search returns recent tweets matching the query
func (t *TwitterProvider) Search(ctx context.Context, query string, limit int) ([]models.SocialPost, error) {
	params := url.Values{}
	params.Add("query", query+" -is:retweet lang:en")
	params.Add("max_results", fmt.Sprintf("%d", clampLimit(limit)))
	params.Add("tweet.fields", "created_at,author_id,public_metrics")
	params.Add("expansions", "author_id")
	params.Add("user.fields", "username")

	reqURL := fmt.Sprintf("%s?%s", t.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.bearerToken)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []struct {
			ID            string    `json:"id"`
			Text          string    `json:"text"`
			AuthorID      string    `json:"author_id"`
			CreatedAt     time.Time `json:"created_at"`
			PublicMetrics struct {
				LikeCount    int `json:"like_count"`
				RetweetCount int `json:"retweet_count"`
			} `json:"public_metrics"`
		} `json:"data"`
		Includes struct {
			Users []struct {
				ID       string `json:"id"`
				Username string `json:"username"`
			} `json:"users"`
		} `json:"includes"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	userMap := make(map[string]string)
	for _, user := range result.Includes.Users {
		userMap[user.ID] = user.Username
	}

	posts := make([]models.SocialPost, 0, len(result.Data))
	for _, tweet := range result.Data {
		username := userMap[tweet.AuthorID]
		posts = append(posts, models.SocialPost{
			ID:       tweet.ID,
			Content:  tweet.Text,
			Author:   "@" + username,
			Date:     tweet.CreatedAt,
			Likes:    tweet.PublicMetrics.LikeCount,
			Retweets: tweet.PublicMetrics.RetweetCount,
			URL:      fmt.Sprintf("https://x.com/%s/status/%s", username, tweet.ID),
			Platform: "X",
		})
	}

	return posts, nil
}

// Twitter caps max_results at 100 and floors it at 10
func clampLimit(limit int) int {
	if limit < 10 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}
