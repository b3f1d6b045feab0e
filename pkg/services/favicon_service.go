package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"newtab-go/pkg/favicon"
)

// FaviconService backs the favicon proxy
type FaviconService struct {
	client   *favicon.Client
	discover bool
}

// NewFaviconService creates a favicon service. With discover set, hosts the
// favicon service cannot serve are looked up through the site's own
// <link rel="icon"> declaration.
func NewFaviconService(client *favicon.Client, discover bool) *FaviconService {
	return &FaviconService{
		client:   client,
		discover: discover,
	}
}

// Icon returns the favicon for host
func (s *FaviconService) Icon(ctx context.Context, host string) (*favicon.Image, error) {
	img, err := s.client.Fetch(ctx, host)
	if err == nil {
		return img, nil
	}
	if !s.discover || !retryWithDiscovery(err) {
		return nil, err
	}

	log.Printf("favicon service failed for %s, trying discovery: %v", host, err)
	iconURL, derr := s.client.Discover(ctx, host)
	if derr != nil {
		return nil, fmt.Errorf("favicon discovery failed: %w", derr)
	}
	return s.client.FetchURL(ctx, host, iconURL)
}

func retryWithDiscovery(err error) bool {
	var fe *favicon.FetchError
	if !errors.As(err, &fe) {
		return false
	}
	switch fe.Type {
	case favicon.ErrorTypeInvalidHost, favicon.ErrorTypeCancelled:
		return false
	}
	return true
}
