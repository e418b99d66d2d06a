package email

import "context"

// Sender define la interfaz para el envio de correos de bienvenida.
type Sender interface {
	SendWelcome(ctx context.Context, toEmail, username string) error
}
