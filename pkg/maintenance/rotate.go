package maintenance

import (
	"context"
	"fmt"

	"github.com/aihub/hubadmin/pkg/persistence"
)

// Provider config keys whose values are stored encrypted.
var encryptedProviderKeys = []string{"client_secret", "bind_password", "private_key"}

// RotateProviderSecrets re-encrypts the sensitive provider config values
// under a new master key. Providers without encrypted values are left
// untouched.
func RotateProviderSecrets(ctx context.Context, store persistence.Persistence, current, next *SecretBox) (int, error) {
	providers, err := store.Providers().List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list providers: %w", err)
	}

	rotated := 0

	for _, provider := range providers {
		changed := false

		for _, key := range encryptedProviderKeys {
			value, ok := provider.Config[key].(string)
			if !ok || value == "" {
				continue
			}

			rekeyed, err := current.Rekey(value, next)
			if err != nil {
				return rotated, fmt.Errorf("failed to rotate %s for provider %s: %w", key, provider.ID, err)
			}

			provider.Config[key] = rekeyed
			changed = true
		}

		if !changed {
			continue
		}

		if err := store.Providers().Save(ctx, provider); err != nil {
			return rotated, fmt.Errorf("failed to save provider %s: %w", provider.ID, err)
		}

		rotated++
	}

	return rotated, nil
}
