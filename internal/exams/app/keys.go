package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opencourse/transcripts/internal/exams/store"
	"github.com/opencourse/transcripts/pkg/cryptox"
	"github.com/opencourse/transcripts/pkg/jwtx"
)

// keyManagers bundles the signing key setup. Persistent is nil in
// ephemeral mode; KeyManager is always usable.
type keyManagers struct {
	KeyManager *jwtx.KeyManager
	Persistent *jwtx.PersistentKeyManager
}

// initKeys builds the Ed25519 signing key manager in the configured
// storage mode.
//
// Storage modes:
//   - "ephemeral": keys are generated on startup and held in memory only.
//     Every outstanding token dies when the service restarts.
//   - "persistent": keys are stored encrypted in the database. Tokens
//     survive restarts and rotation retires old keys with a grace period.
func initKeys(ctx context.Context, cfg Config, db store.Store, logger *slog.Logger) (keyManagers, error) {
	// Configure master key path if provided (for persistent mode)
	if cfg.MasterKeyPath != "" {
		cryptox.SetMasterKeyPath(cfg.MasterKeyPath)
		logger.Info("master key path configured", "path", cfg.MasterKeyPath)
	}

	opts := jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		NumKeys: cfg.NumKeys,
	}

	switch cfg.KeyStorageMode {
	case "persistent":
		logger.Info("initializing persistent key manager",
			"num_keys", cfg.NumKeys,
			"grace_period", cfg.KeyGracePeriod,
		)

		pm, err := jwtx.NewPersistentKeyManager(ctx, store.NewKeyStoreAdapter(db), opts)
		if err != nil {
			return keyManagers{}, fmt.Errorf("failed to initialize persistent key manager: %w", err)
		}

		logger.Info("persistent signing keys loaded",
			"num_keys", pm.NumSigners(),
			"issuer", cfg.Issuer,
		)

		return keyManagers{KeyManager: pm.KeyManager, Persistent: pm}, nil

	case "ephemeral":
		fallthrough
	default:
		km, err := jwtx.NewKeyManager(opts)
		if err != nil {
			return keyManagers{}, fmt.Errorf("failed to initialize ephemeral key manager: %w", err)
		}

		logger.Info("generated ephemeral signing keys",
			"num_keys", km.NumSigners(),
			"issuer", cfg.Issuer,
		)
		logger.Warn("all previously issued tokens are now invalid")

		return keyManagers{KeyManager: km}, nil
	}
}
