package pipeline

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mrmateussiilva/petstory/internal/kit"
	"github.com/mrmateussiilva/petstory/internal/metrics"
	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/mrmateussiilva/petstory/internal/repository/memory"
	"github.com/mrmateussiilva/petstory/internal/service"
	"github.com/mrmateussiilva/petstory/internal/tribute"
	"github.com/sirupsen/logrus"
)

type KitBuilder interface {
	Build(in kit.Input) (*kit.Document, error)
}

type TributeRenderer interface {
	Generate(meta tribute.Meta, artifacts []models.Artifact) (*tribute.Document, error)
}

type Publisher interface {
	Publish(ctx context.Context, topic string, message interface{}) error
}

// RunStore keeps the order runs that can be queried while and after they run.
type RunStore interface {
	Create(ctx context.Context, run *models.OrderRun) error
	GetByID(ctx context.Context, id string) (*models.OrderRun, error)
	Update(ctx context.Context, run *models.OrderRun, id string) error
	DeleteWhere(ctx context.Context, match func(*models.OrderRun) bool) int
}

type Orchestrator struct {
	Art       *ArtStage
	Kit       KitBuilder
	Tribute   TributeRenderer
	Delivery  *DeliveryStage
	Runs      RunStore
	Publisher Publisher
	WorkDir   string
	Clock     func() time.Time

	wg sync.WaitGroup
}

func NewOrchestrator(art *ArtStage, kitBuilder KitBuilder, tributeRenderer TributeRenderer, delivery *DeliveryStage, publisher Publisher, workDir string) *Orchestrator {
	return &Orchestrator{
		Art:       art,
		Kit:       kitBuilder,
		Tribute:   tributeRenderer,
		Delivery:  delivery,
		Runs:      memory.New(func(r *models.OrderRun) string { return r.ID }),
		Publisher: publisher,
		WorkDir:   workDir,
		Clock:     time.Now,
	}
}

// Submit creates the order directory, registers the run and processes it in
// the background. It returns as soon as the run is registered; the admitted
// event is published from the background goroutine.
func (o *Orchestrator) Submit(order *service.AdmittedOrder) (*models.OrderRun, error) {
	now := o.Clock()
	dir, err := CreateOrderDir(o.WorkDir, order.Key(), now)
	if err != nil {
		return nil, err
	}

	run := &models.OrderRun{
		ID:         uuid.NewString(),
		Key:        order.Key(),
		State:      models.StateAdmitted,
		WorkDir:    dir,
		Photos:     len(order.Request().Photos),
		AdmittedAt: now,
		UpdatedAt:  now,
	}
	if err := o.Runs.Create(context.Background(), run); err != nil {
		return nil, fmt.Errorf("failed to register order: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id": run.ID,
		"email":    run.Key.Email,
		"pet":      run.Key.PetName,
		"dir":      dir,
	}).Info("order admitted")

	accepted := *run
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logrus.WithField("order_id", run.ID).Errorf("order pipeline panicked: %v", r)
				o.fail(context.Background(), run, models.ReasonInternalError, fmt.Errorf("panic: %v", r))
			}
		}()
		o.publish(context.Background(), models.OrderAdmittedTopic, accepted)
		o.Process(context.Background(), run, order)
	}()

	return &accepted, nil
}

// Wait blocks until every submitted order has finished.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Process runs the order through generation, assembly, the tribute page and
// delivery. It always leaves the run in COMPLETED or FAILED.
func (o *Orchestrator) Process(ctx context.Context, run *models.OrderRun, order *service.AdmittedOrder) {
	req := order.Request()
	log := logrus.WithField("order_id", run.ID)

	o.savePhotos(run, req.Photos)

	o.transition(ctx, run, models.StateGenerating)
	started := time.Now()
	artifacts, err := o.Art.Generate(ctx, req.Photos)
	metrics.StageDuration.WithLabelValues("generation").Observe(time.Since(started).Seconds())
	for _, a := range artifacts {
		if a.Succeeded() {
			run.Generated++
		} else {
			run.Failed++
		}
	}
	if errors.Is(err, models.ErrNoArtifactsGenerated) {
		o.fail(ctx, run, models.ReasonNoArtifactsGenerated, err)
		return
	}
	o.saveArtifacts(run, artifacts)

	o.transition(ctx, run, models.StateAssembling)
	started = time.Now()
	doc, err := o.Kit.Build(kit.Input{
		PetName:       req.PetName,
		PetDate:       req.PetDate,
		Story:         req.Story,
		OriginalPhoto: req.Photos[0].Data,
		Artifacts:     artifacts,
	})
	metrics.StageDuration.WithLabelValues("assembly").Observe(time.Since(started).Seconds())
	if err != nil {
		o.fail(ctx, run, models.ReasonAssemblyError, err)
		return
	}
	kitFile := fmt.Sprintf("kit_%s.pdf", PetSlug(req.PetName))
	if err := os.WriteFile(filepath.Join(run.WorkDir, kitFile), doc.PDF, 0o644); err != nil {
		o.fail(ctx, run, models.ReasonAssemblyError, &models.AssemblyError{Reason: "saving pdf", Err: err})
		return
	}

	tributeFile := o.renderTribute(run, req, artifacts)

	o.transition(ctx, run, models.StateDelivering)
	started = time.Now()
	err = o.Delivery.Deliver(ctx, Package{
		Recipient:   req.Email,
		PetName:     req.PetName,
		Dir:         run.WorkDir,
		KitFile:     kitFile,
		TributeFile: tributeFile,
	})
	metrics.StageDuration.WithLabelValues("delivery").Observe(time.Since(started).Seconds())
	if err != nil {
		log.Errorf("delivery failed, order completed degraded: %v", err)
		run.Degraded = true
		run.DeliveryError = err.Error()
	}

	o.finish(ctx, run, models.StateCompleted)
}

// Get returns a snapshot of the run.
func (o *Orchestrator) Get(ctx context.Context, id string) (*models.OrderRun, error) {
	run, err := o.Runs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}
	return run, nil
}

// PurgeFinished drops finished runs that ended before olderThan. Order
// directories are left on disk.
func (o *Orchestrator) PurgeFinished(olderThan time.Time) int {
	return o.Runs.DeleteWhere(context.Background(), func(r *models.OrderRun) bool {
		return r.State.IsTerminal() && r.FinishedAt != nil && r.FinishedAt.Before(olderThan)
	})
}

func (o *Orchestrator) renderTribute(run *models.OrderRun, req models.OrderRequest, artifacts []models.Artifact) string {
	log := logrus.WithField("order_id", run.ID)
	page, err := o.Tribute.Generate(tribute.Meta{PetName: req.PetName, PetDate: req.PetDate, Story: req.Story}, artifacts)
	if err != nil {
		log.Warnf("tribute page not generated: %v", err)
		run.TributeError = err.Error()
		return ""
	}
	name := fmt.Sprintf("homenagem_%s.html", PetSlug(req.PetName))
	if err := os.WriteFile(filepath.Join(run.WorkDir, name), page.HTML, 0o644); err != nil {
		log.Warnf("tribute page not saved: %v", err)
		run.TributeError = err.Error()
		return ""
	}
	return name
}

func (o *Orchestrator) savePhotos(run *models.OrderRun, photos []models.Photo) {
	for i, p := range photos {
		name := "foto_" + strconv.Itoa(i+1) + photoExt(p)
		if err := os.WriteFile(filepath.Join(run.WorkDir, name), p.Data, 0o644); err != nil {
			logrus.WithField("order_id", run.ID).Warnf("failed to save %s: %v", name, err)
		}
	}
}

func (o *Orchestrator) saveArtifacts(run *models.OrderRun, artifacts []models.Artifact) {
	for _, a := range artifacts {
		if !a.Succeeded() {
			continue
		}
		name := fmt.Sprintf("art_%d.png", a.Index+1)
		if err := os.WriteFile(filepath.Join(run.WorkDir, name), a.Image, 0o644); err != nil {
			logrus.WithField("order_id", run.ID).Warnf("failed to save %s: %v", name, err)
		}
	}
}

func photoExt(p models.Photo) string {
	mediaType, _, _ := mime.ParseMediaType(p.ContentType)
	switch mediaType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	if ext := filepath.Ext(p.Filename); ext != "" {
		return ext
	}
	return ".img"
}

func (o *Orchestrator) transition(ctx context.Context, run *models.OrderRun, state models.OrderState) {
	run.State = state
	o.save(ctx, run)
	logrus.WithField("order_id", run.ID).Infof("order %s", state)
}

func (o *Orchestrator) fail(ctx context.Context, run *models.OrderRun, reason string, err error) {
	logrus.WithField("order_id", run.ID).Errorf("order failed (%s): %v", reason, err)
	run.Reason = reason
	o.finish(ctx, run, models.StateFailed)
}

func (o *Orchestrator) finish(ctx context.Context, run *models.OrderRun, state models.OrderState) {
	now := o.Clock()
	run.State = state
	run.FinishedAt = &now
	o.save(ctx, run)

	metrics.OrdersTotal.WithLabelValues(string(state), strconv.FormatBool(run.Degraded)).Inc()
	topic := models.OrderCompletedTopic
	if state == models.StateFailed {
		topic = models.OrderFailedTopic
	}
	o.publish(ctx, topic, *run)

	logrus.WithFields(logrus.Fields{
		"order_id":  run.ID,
		"state":     state,
		"degraded":  run.Degraded,
		"generated": run.Generated,
		"failed":    run.Failed,
	}).Info("order finished")
}

func (o *Orchestrator) save(ctx context.Context, run *models.OrderRun) {
	run.UpdatedAt = o.Clock()
	if err := o.Runs.Update(ctx, run, run.ID); err != nil {
		logrus.WithField("order_id", run.ID).Warnf("failed to update order run: %v", err)
	}
}

func (o *Orchestrator) publish(ctx context.Context, topic string, run models.OrderRun) {
	if o.Publisher == nil {
		return
	}
	if err := o.Publisher.Publish(ctx, topic, models.NewOrderEvent(run)); err != nil {
		logrus.WithField("order_id", run.ID).Warnf("failed to publish %s: %v", topic, err)
	}
}
