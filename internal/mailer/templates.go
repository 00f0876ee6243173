package mailer

import (
	"fmt"

	"github.com/osteele/liquid"
)

const passwordResetSubject = "Redefinição de senha - {{ app }}"

const passwordResetHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Olá, {{ name | default: "tutor" }}!</h2>
  <p>Recebemos um pedido para redefinir a senha da sua conta no {{ app }}.</p>
  <p><a href="{{ link }}" style="background:#ff7a00;color:#fff;padding:10px 16px;text-decoration:none;border-radius:4px;">Redefinir senha</a></p>
  <p>O link expira em {{ expires_in }}. Se você não fez esse pedido, ignore este e-mail.</p>
</body>
</html>`

const passwordResetText = `Olá, {{ name | default: "tutor" }}!

Para redefinir a senha da sua conta no {{ app }}, acesse:
{{ link }}

O link expira em {{ expires_in }}. Se você não fez esse pedido, ignore este e-mail.`

var engine = liquid.NewEngine()

type PasswordResetData struct {
	Name      string
	Link      string
	ExpiresIn string
}

// PasswordReset renders the reset email for one recipient.
func PasswordReset(to string, data PasswordResetData) (Message, error) {
	bindings := map[string]any{
		"app":        "Patinhas",
		"name":       data.Name,
		"link":       data.Link,
		"expires_in": data.ExpiresIn,
	}
	msg := Message{To: to}
	var err error
	if msg.Subject, err = render(passwordResetSubject, bindings); err != nil {
		return Message{}, err
	}
	if msg.HTML, err = render(passwordResetHTML, bindings); err != nil {
		return Message{}, err
	}
	if msg.Text, err = render(passwordResetText, bindings); err != nil {
		return Message{}, err
	}
	return msg, nil
}

func render(tpl string, bindings map[string]any) (string, error) {
	out, err := engine.ParseAndRenderString(tpl, bindings)
	if err != nil {
		return "", fmt.Errorf("render mail template: %w", err)
	}
	return out, nil
}
