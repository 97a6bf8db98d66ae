package service

import "context"

type EmailService interface {
	SendPasswordRecovery(ctx context.Context, to, link string) error
}
