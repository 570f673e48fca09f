package checkout

import (
	"context"

	"github.com/itjpay/billing-dashboard/internal/logging"
)

// Mailer delivers verification codes.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string) error
}

// LogMailer writes codes to the log; used when no mail provider is set up.
type LogMailer struct{}

func (LogMailer) SendOTP(ctx context.Context, to, code string) error {
	log := logging.New(ctx)
	log.Infof("checkout.mail", "verification code sent to %s", to)
	log.Debugf("checkout.mail", "code for %s is %s", to, code)
	return nil
}
