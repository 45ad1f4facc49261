package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrmateussiilva/petstory/internal/clients/mailer"
	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/mrmateussiilva/petstory/internal/pipeline"
	pipelinemocks "github.com/mrmateussiilva/petstory/internal/pipeline/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingArchiver struct {
	stored []string
	err    error
}

func (a *recordingArchiver) Store(_ context.Context, orderPath, name, _ string, _ []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.stored = append(a.stored, orderPath+"/"+name)
	return "s3://bucket/" + orderPath + "/" + name, nil
}

func writeDocs(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kit_rex.pdf"), []byte("%PDF-1.3"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "homenagem_rex.html"), []byte("<html></html>"), 0o644))
}

func TestDeliver_ArchivesAndMails(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "tutor-example-com", "rex_20250301_143005")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeDocs(t, dir)

	m := pipelinemocks.NewMockMailer(t)
	archiver := &recordingArchiver{}
	stage := pipeline.NewDeliveryStage(m, archiver, base)

	m.EXPECT().Send(mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.To == "tutor@example.com" && len(msg.Attachments) == 2 &&
			msg.Attachments[0].ContentType == "application/pdf" &&
			msg.Attachments[1].ContentType == "text/html"
	})).Return(nil).Once()

	err := stage.Deliver(context.Background(), pipeline.Package{
		Recipient:   "tutor@example.com",
		PetName:     "Rex",
		Dir:         dir,
		KitFile:     "kit_rex.pdf",
		TributeFile: "homenagem_rex.html",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"tutor-example-com/rex_20250301_143005/kit_rex.pdf",
		"tutor-example-com/rex_20250301_143005/homenagem_rex.html",
	}, archiver.stored)
}

func TestDeliver_ArchiveFailureDoesNotBlockMail(t *testing.T) {
	dir := t.TempDir()
	writeDocs(t, dir)

	m := pipelinemocks.NewMockMailer(t)
	stage := pipeline.NewDeliveryStage(m, &recordingArchiver{err: errors.New("access denied")}, dir)

	m.EXPECT().Send(mock.Anything, mock.Anything).Return(nil).Once()

	err := stage.Deliver(context.Background(), pipeline.Package{Recipient: "a@b.com", PetName: "Rex", Dir: dir, KitFile: "kit_rex.pdf"})

	assert.NoError(t, err)
}

func TestDeliver_MissingKitIsDeliveryError(t *testing.T) {
	m := pipelinemocks.NewMockMailer(t)
	stage := pipeline.NewDeliveryStage(m, nil, "")

	err := stage.Deliver(context.Background(), pipeline.Package{Recipient: "a@b.com", Dir: t.TempDir(), KitFile: "kit_rex.pdf"})

	var delivery *models.DeliveryError
	require.True(t, errors.As(err, &delivery))
	assert.Equal(t, "a@b.com", delivery.Recipient)
}

func TestDeliver_SendFailure(t *testing.T) {
	dir := t.TempDir()
	writeDocs(t, dir)
	m := pipelinemocks.NewMockMailer(t)
	stage := pipeline.NewDeliveryStage(m, nil, dir)
	sendErr := errors.New("connection refused")

	m.EXPECT().Send(mock.Anything, mock.Anything).Return(sendErr).Once()

	err := stage.Deliver(context.Background(), pipeline.Package{Recipient: "a@b.com", PetName: "Rex", Dir: dir, KitFile: "kit_rex.pdf", TributeFile: "homenagem_rex.html"})

	assert.ErrorIs(t, err, sendErr)
}
