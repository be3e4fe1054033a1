// Package google provides shared infrastructure for Google API connectors.
//
// This package contains common utilities used by the youtube connector:
//   - Service factories for creating API-key authenticated clients
//   - Error handling for common Google API errors (401, 403, 404, 429)
//
// # Usage
//
//	svc, err := google.NewYouTubeService(ctx, apiKey, httpClient)
//
// Tests point the service at a fake server with google.WithEndpoint.
package google
