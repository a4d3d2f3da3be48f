package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/snapgrid/snapgrid_backend/models"
)

// RouteService proxies routing requests to the external routing API. The API
// key is held server-side and never reaches clients.
type RouteService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRouteService creates a route service instance from the environment
func NewRouteService() *RouteService {
	baseURL := os.Getenv("ROUTING_API_URL")
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org/v2/directions"
	}

	apiKey := os.Getenv("ROUTING_API_KEY")
	if apiKey == "" {
		log.Printf("WARNING: ROUTING_API_KEY is not set; route proxy requests will fail")
	}

	return &RouteService{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// GetRoute forwards the request upstream and returns the raw response body,
// which the handler passes through to the client unchanged.
func (s *RouteService) GetRoute(ctx context.Context, req models.RouteRequest) (json.RawMessage, error) {
	mode := req.Mode
	if mode == "" {
		mode = "driving"
	}

	payload := map[string]interface{}{
		"coordinates": [][]float64{
			{req.Origin.Longitude, req.Origin.Latitude},
			{req.Destination.Longitude, req.Destination.Latitude},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", s.baseURL, mode)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("routing API returned %d: %s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("routing API returned status %d", resp.StatusCode)
	}

	return json.RawMessage(respBody), nil
}
