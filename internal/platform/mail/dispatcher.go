package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"market_backend/internal/shared/ratelimiter"
)

const queueBuffer = 64

// job is one queued delivery.
type job struct {
	to           string
	subject      string
	templateName string
	data         any
}

// Dispatcher queues notifications and delivers them from a background
// worker. Enqueueing never blocks the caller and delivery failures are
// logged, not returned: notifications are fire-and-forget from the
// enclosing request's perspective.
type Dispatcher struct {
	sender  Sender
	jobs    chan job
	limiter ratelimiter.RateLimiterInterface
	baseURL string
	log     zerolog.Logger
}

// NewDispatcher はDispatcherの新しいインスタンスを生成します。
// limiterがnilの場合は送信を抑制しません。
func NewDispatcher(sender Sender, limiter ratelimiter.RateLimiterInterface, baseURL string, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		jobs:    make(chan job, queueBuffer),
		limiter: limiter,
		baseURL: baseURL,
		log:     log,
	}
}

// Start launches the delivery worker. The worker stops when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Dispatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-d.jobs:
			if !ok {
				return
			}
			if d.limiter != nil {
				d.limiter.WaitIfNeeded()
			}
			if err := d.sender.Send(j.to, j.subject, j.templateName, j.data); err != nil {
				d.log.Error().Err(err).Str("to", j.to).Str("template", j.templateName).Msg("mail delivery failed")
				continue
			}
			d.log.Info().Str("to", j.to).Str("template", j.templateName).Msg("mail delivered")
		}
	}
}

// enqueue adds a job without blocking; when the queue is full the job is
// dropped with a log entry (delivery is best-effort).
func (d *Dispatcher) enqueue(j job) {
	select {
	case d.jobs <- j:
	default:
		d.log.Warn().Str("to", j.to).Str("template", j.templateName).Msg("mail queue full, dropping notification")
	}
}

// SendPasswordResetRequest queues the reset-request notification carrying
// the token link and confirmation code.
func (d *Dispatcher) SendPasswordResetRequest(email, token string, code int) {
	d.enqueue(job{
		to:           email,
		subject:      SubjectResetRequest,
		templateName: TemplateResetRequest,
		data: ResetRequestData{
			ResetURL: fmt.Sprintf("%s/api/v1/password/find/%s", d.baseURL, token),
			Code:     code,
		},
	})
}

// SendPasswordResetSuccess queues the password-changed notification.
func (d *Dispatcher) SendPasswordResetSuccess(email string) {
	d.enqueue(job{
		to:           email,
		subject:      SubjectResetSuccess,
		templateName: TemplateResetSuccess,
	})
}
