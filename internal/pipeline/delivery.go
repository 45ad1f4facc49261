package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/mrmateussiilva/petstory/internal/clients/mailer"
	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/sirupsen/logrus"
)

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Archiver keeps a copy of the delivered documents outside the order directory.
type Archiver interface {
	Store(ctx context.Context, orderPath, name, contentType string, data []byte) (string, error)
}

var mailBody = template.Must(template.New("mail").Parse(`<html>
  <body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>O Kit Digital de {{.}} está pronto!</h2>
    <p>Olá!</p>
    <p>O livro de colorir personalizado de {{.}} foi gerado com sucesso.</p>
    <p>O PDF do kit e a página de homenagem estão anexados neste e-mail.</p>
    <hr>
    <p style="color: #666; font-size: 12px;">PetStory - Transformando memórias em arte</p>
  </body>
</html>`))

// Package lists the documents of one order, by file name inside the order
// directory. TributeFile is empty when the tribute page was not produced.
type Package struct {
	Recipient   string
	PetName     string
	Dir         string
	KitFile     string
	TributeFile string
}

type DeliveryStage struct {
	Mailer   Mailer
	Archiver Archiver
	BaseDir  string
}

func NewDeliveryStage(m Mailer, archiver Archiver, baseDir string) *DeliveryStage {
	return &DeliveryStage{Mailer: m, Archiver: archiver, BaseDir: baseDir}
}

// Deliver mails the kit and the tribute page. Any failure is a
// *models.DeliveryError; archiving problems are only logged.
func (d *DeliveryStage) Deliver(ctx context.Context, pkg Package) error {
	fail := func(err error) error {
		return &models.DeliveryError{Recipient: pkg.Recipient, Err: err}
	}

	attachments := make([]mailer.Attachment, 0, 2)
	kit, err := os.ReadFile(filepath.Join(pkg.Dir, pkg.KitFile))
	if err != nil {
		return fail(fmt.Errorf("reading kit: %w", err))
	}
	attachments = append(attachments, mailer.Attachment{Name: pkg.KitFile, ContentType: "application/pdf", Data: kit})

	if pkg.TributeFile != "" {
		page, err := os.ReadFile(filepath.Join(pkg.Dir, pkg.TributeFile))
		if err != nil {
			return fail(fmt.Errorf("reading tribute page: %w", err))
		}
		attachments = append(attachments, mailer.Attachment{Name: pkg.TributeFile, ContentType: "text/html", Data: page})
	}

	var body bytes.Buffer
	if err := mailBody.Execute(&body, pkg.PetName); err != nil {
		return fail(fmt.Errorf("rendering mail body: %w", err))
	}

	d.archive(ctx, pkg, attachments)

	msg := mailer.Message{
		To:          pkg.Recipient,
		Subject:     fmt.Sprintf("O Kit Digital de %s está pronto!", pkg.PetName),
		HTMLBody:    body.String(),
		Attachments: attachments,
	}
	if err := d.Mailer.Send(ctx, msg); err != nil {
		return fail(err)
	}
	return nil
}

func (d *DeliveryStage) archive(ctx context.Context, pkg Package, attachments []mailer.Attachment) {
	if d.Archiver == nil {
		return
	}
	orderPath, err := filepath.Rel(d.BaseDir, pkg.Dir)
	if err != nil {
		orderPath = filepath.Base(pkg.Dir)
	}
	orderPath = filepath.ToSlash(orderPath)
	for _, a := range attachments {
		url, err := d.Archiver.Store(ctx, orderPath, a.Name, a.ContentType, a.Data)
		if err != nil {
			logrus.WithField("order_dir", orderPath).Warnf("failed to archive %s: %v", a.Name, err)
			continue
		}
		logrus.WithField("order_dir", orderPath).Infof("archived %s at %s", a.Name, url)
	}
}
