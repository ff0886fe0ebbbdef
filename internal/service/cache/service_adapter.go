package cache

import (
	"context"
	"errors"
	"time"

	pkgcache "SomnoScan/pkg/cache"
)

// ServiceBytes adapts a pkg/cache Service to the BytesCache API the raster
// usecase depends on. Values round-trip as strings so both the memory and
// Redis backends store them verbatim.
type ServiceBytes struct {
	svc pkgcache.Service
}

func NewServiceBytes(svc pkgcache.Service) *ServiceBytes {
	return &ServiceBytes{svc: svc}
}

func (s *ServiceBytes) GetBytes(key string) ([]byte, bool, error) {
	var v string
	err := s.svc.Get(context.Background(), key, &v)
	if err != nil {
		if errors.Is(err, pkgcache.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(v), true, nil
}

func (s *ServiceBytes) SetBytes(key string, value []byte, ttl time.Duration) error {
	return s.svc.Set(context.Background(), key, string(value), ttl)
}

var _ BytesCache = (*ServiceBytes)(nil)
