package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	appjob "github.com/tu-usuario/taller-api/internal/application/job"
	"github.com/tu-usuario/taller-api/internal/domain/entity"
	"github.com/tu-usuario/taller-api/pkg/config"
)

var _ appjob.Notifier = (*GomailNotifier)(nil)

// GomailNotifier envía por SMTP la notificación de trabajo terminado a los
// buzones del taller. Si no hay SMTP configurado se comporta como no-op.
type GomailNotifier struct {
	cfg config.SMTPConfig
}

// NewGomailNotifier construye el notificador.
func NewGomailNotifier(cfg config.SMTPConfig) *GomailNotifier {
	return &GomailNotifier{cfg: cfg}
}

// NotifyJobCompleted envía el aviso de cierre. El caso de uso registra y
// descarta el error: la entrega nunca hace fallar la operación principal.
func (n *GomailNotifier) NotifyJobCompleted(j *entity.Job) error {
	if n.cfg.Host == "" || len(n.cfg.NotifyTo) == 0 {
		return nil
	}

	body := fmt.Sprintf(
		`<p>El trabajo <b>%s</b> quedó terminado.</p>
		<p>Cliente: %s<br>Equipo: %s %s<br>Falla: %s</p>
		<p>Precio cotizado: $%s</p>`,
		j.ReceiptNumber, j.CustomerName, j.DeviceType, j.DeviceModel,
		j.Symptom, j.PriceQuoted.StringFixed(2),
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.cfg.From)
	msg.SetHeader("To", n.cfg.NotifyTo...)
	msg.SetHeader("Subject", "Trabajo terminado: "+j.ReceiptNumber)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: enviar notificación: %w", err)
	}
	return nil
}
