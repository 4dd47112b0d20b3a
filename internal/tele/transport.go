package tele

import (
	"context"

	"github.com/Arnispl/VendingMachine/log2"
	tele_config "github.com/Arnispl/VendingMachine/tele/config"
)

// Tele transport contract:
// - Init fails only with invalid config, ignores network errors
// - Send* deliver within timeout or fail; false means try again later
// - application may start without network available
type Transporter interface {
	Init(ctx context.Context, log *log2.Log, teleConfig tele_config.Config, willPayload []byte) error
	SendState(payload []byte) bool
	SendTelemetry(payload []byte) bool
	Close()
}
