package providers

import (
	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
)

// Normalizer turns one provider's verified webhook payload into the canonical
// NotificationEvent. Signature verification happens upstream; a normalizer
// only decodes and maps. Payloads that are well formed but carry no
// subscription state yield billing.ErrUnsupportedNotification.
type Normalizer interface {
	Provider() vo.Provider
	Normalize(payload []byte) (*billing.NotificationEvent, error)
}

// Registry resolves the normalizer for a provider.
type Registry struct {
	normalizers map[vo.Provider]Normalizer
}

func NewRegistry(normalizers ...Normalizer) *Registry {
	m := make(map[vo.Provider]Normalizer, len(normalizers))
	for _, n := range normalizers {
		m[n.Provider()] = n
	}
	return &Registry{normalizers: m}
}

func (r *Registry) Get(provider vo.Provider) (Normalizer, bool) {
	n, ok := r.normalizers[provider]
	return n, ok
}
