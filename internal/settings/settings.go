// Package settings exposes the handful of storefront toggles the commerce
// backend owns, such as whether guest checkout is enabled.
package settings

import (
	"context"

	"github.com/CristalT/elico-storefront/pkg/commerce"
)

type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Service struct {
	client *commerce.Client
}

func NewService(client *commerce.Client) *Service {
	return &Service{client: client}
}

func (s *Service) GetAll(ctx context.Context) ([]Setting, error) {
	var out []Setting
	if err := s.client.Get(ctx, "/settings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
