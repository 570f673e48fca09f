package postgres

import (
	"fmt"
	"strings"

	"github.com/itjpay/billing-dashboard/config"
)

// DSN builds a lib/pq keyword/value connection string.
func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, quote(cfg.Password), cfg.Name,
	)
}

// quote protects values containing spaces or quotes.
func quote(v string) string {
	if v == "" {
		return "''"
	}
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
